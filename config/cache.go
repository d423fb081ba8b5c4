package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// RecordCache holds recent query results for the browse view. Every write
// through the record handlers flushes it, so entries never outlive a
// mutation by more than the TTL.
var RecordCache *cache.Cache

const (
	recordCacheDuration   = 5 * time.Minute
	recordCleanupInterval = 10 * time.Minute
)

func InitCache() {
	RecordCache = cache.New(recordCacheDuration, recordCleanupInterval)
}

func ClearRecordCache() {
	if RecordCache != nil {
		RecordCache.Flush()
	}
}

// GetCacheKey joins the parts into a key that is injective over the input:
// each part is quoted, so values containing the separator cannot collide
// with a neighboring part.
func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%q", fmt.Sprintf("%v", param))
	}
	return key
}
