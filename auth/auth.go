// Package auth implements the shared-secret gate in front of the data view
// and the session tokens it hands out. There is no per-user identity: any
// accepted secret grants the same session-scoped access.
package auth

import (
	"crypto/subtle"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// defaultSecrets is the built-in accepted list. VIEW_PASSWORDS overrides it
// for deployments that rotate the shared secret.
var defaultSecrets = []string{
	"mohiuddinnagar137",
	"admin@137",
}

// Gate decides whether a presented secret grants view access. It is an
// interface so the flat-list gate can later be swapped for real per-user
// authentication without touching the handlers.
type Gate interface {
	Authenticate(secret string) bool
}

// StaticGate accepts any secret from a fixed list.
type StaticGate struct {
	secrets []string
}

// NewStaticGate builds the gate from the VIEW_PASSWORDS env var
// (comma-separated) when set, otherwise from the built-in list.
func NewStaticGate() *StaticGate {
	if raw := os.Getenv("VIEW_PASSWORDS"); raw != "" {
		var secrets []string
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				secrets = append(secrets, s)
			}
		}
		if len(secrets) > 0 {
			return &StaticGate{secrets: secrets}
		}
	}
	return &StaticGate{secrets: defaultSecrets}
}

// NewStaticGateWith builds a gate over an explicit secret list.
func NewStaticGateWith(secrets ...string) *StaticGate {
	return &StaticGate{secrets: secrets}
}

func (g *StaticGate) Authenticate(secret string) bool {
	ok := false
	for _, s := range g.secrets {
		if subtle.ConstantTimeCompare([]byte(s), []byte(secret)) == 1 {
			ok = true
		}
	}
	return ok
}

// SessionManager issues opaque tokens after a successful gate check and
// answers whether a token is still live. Tokens expire after the configured
// TTL; there is no refresh.
type SessionManager struct {
	ttl      time.Duration
	sessions *gocache.Cache
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: gocache.New(ttl, 2*ttl),
	}
}

// Issue creates a session token and returns it with its expiry time.
func (m *SessionManager) Issue() (string, time.Time) {
	token := uuid.NewString()
	expires := time.Now().Add(m.ttl)
	m.sessions.Set(token, expires, gocache.DefaultExpiration)
	return token, expires
}

// Valid reports whether the token belongs to a live session.
func (m *SessionManager) Valid(token string) bool {
	if token == "" {
		return false
	}
	_, ok := m.sessions.Get(token)
	return ok
}

// Revoke ends the session immediately.
func (m *SessionManager) Revoke(token string) {
	m.sessions.Delete(token)
}
