package config

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
	MongoDB     *mongo.Database
	MongoClient *mongo.Client
)

const retryDelay = 5 * time.Second

// LoadEnv loads environment variables from a .env file when one exists.
func LoadEnv() error {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("CONSTITUENCY_ENV"),
	}

	var loadedFile string
	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			loadedFile = path
			break
		}
	}

	if loadedFile == "" {
		if uri := os.Getenv("MONGO_URI"); uri != "" {
			return nil
		}
		return fmt.Errorf("no .env file found and MONGO_URI not set in environment")
	}

	file, err := os.Open(loadedFile)
	if err != nil {
		return fmt.Errorf("error opening .env file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		os.Setenv(key, value)
	}

	return scanner.Err()
}

// ConnectWithRetry attempts to connect to MongoDB with retries. A missing
// MONGO_URI or a connection failure leaves MongoDB nil; callers treat that
// as the store being unavailable rather than a fatal startup error.
func ConnectWithRetry(maxRetries int) error {
	mongoURI := GetMongoURI()
	if mongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable is required but not set")
	}

	var err error
	for i := 0; i < maxRetries; i++ {
		err = connectMongo(mongoURI)
		if err == nil {
			return nil
		}
		log.Printf("Failed to connect to MongoDB (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("failed to connect after %d attempts: %v", maxRetries, err)
}

// connectMongo initializes the MongoDB connection
func connectMongo(uri string) error {
	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(20).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(30 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority())).
		SetReadConcern(readconcern.Majority()).
		SetReadPreference(readpref.Primary())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	MongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	if err = MongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("error pinging MongoDB: %v", err)
	}

	MongoDB = MongoClient.Database(GetMongoDBName())

	if err := createIndexes(ctx); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func createIndexes(ctx context.Context) error {
	collection := MongoDB.Collection(GetMongoCollection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "block", Value: 1},
				{Key: "panchayat", Value: 1},
			},
			Options: options.Index().SetName("block_panchayat_idx"),
		},
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating record indexes: %v", err)
	}
	return nil
}

// CloseDB disconnects the Mongo client during shutdown.
func CloseDB() {
	if MongoClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v", err)
	}
}
