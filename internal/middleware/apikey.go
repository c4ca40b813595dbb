package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"cemetery/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// APIKeyHeader carries the key on external requests
	APIKeyHeader = "X-API-Key"

	// ContextKeyAPIKeyName is the gin context key holding the caller's key name
	ContextKeyAPIKeyName = "apiKeyName"

	// PermissionAll grants every permission
	PermissionAll = "*"
)

// APIKey is one credential accepted on the external endpoints
type APIKey struct {
	Name        string
	Key         string
	Permissions []string
}

// Has reports whether the key grants permission
func (k *APIKey) Has(permission string) bool {
	for _, p := range k.Permissions {
		if p == permission || p == PermissionAll {
			return true
		}
	}
	return false
}

// ParseAPIKeys parses "name:key:perm1|perm2;name2:key2:perm3". Blank entries
// are skipped.
func ParseAPIKeys(raw string) ([]APIKey, error) {
	var keys []APIKey
	names := map[string]bool{}

	for i, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("API key entry %d: expected name:key:permissions", i+1)
		}
		name, key := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if name == "" || key == "" {
			return nil, fmt.Errorf("API key entry %d: name and key must not be empty", i+1)
		}
		if names[name] {
			return nil, fmt.Errorf("API key entry %d: duplicate name %q", i+1, name)
		}
		names[name] = true

		var perms []string
		for _, p := range strings.Split(parts[2], "|") {
			if p = strings.TrimSpace(p); p != "" {
				perms = append(perms, p)
			}
		}

		keys = append(keys, APIKey{Name: name, Key: key, Permissions: perms})
	}

	return keys, nil
}

// KeyStore looks up presented API keys
type KeyStore struct {
	keys []APIKey
}

// NewKeyStore creates a store over keys
func NewKeyStore(keys []APIKey) *KeyStore {
	return &KeyStore{keys: keys}
}

// Len returns the number of configured keys
func (s *KeyStore) Len() int {
	return len(s.keys)
}

// Lookup finds the key matching presented. Every configured key is compared
// so the time taken does not depend on which one matched.
func (s *KeyStore) Lookup(presented string) (*APIKey, bool) {
	var found *APIKey
	for i := range s.keys {
		if subtle.ConstantTimeCompare([]byte(s.keys[i].Key), []byte(presented)) == 1 {
			found = &s.keys[i]
		}
	}
	return found, found != nil
}

// RequireAPIKey rejects requests without a valid key (401) or whose key lacks
// permission (403)
func RequireAPIKey(store *KeyStore, permission string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := presentedKey(c.Request)
		if presented == "" {
			metrics.APIKeyRejections.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		key, ok := store.Lookup(presented)
		if !ok {
			metrics.APIKeyRejections.WithLabelValues("invalid").Inc()
			logger.Warn("rejected unknown API key", zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		if !key.Has(permission) {
			metrics.APIKeyRejections.WithLabelValues("forbidden").Inc()
			logger.Warn("API key lacks permission",
				zap.String("key", key.Name),
				zap.String("permission", permission),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set(ContextKeyAPIKeyName, key.Name)
		c.Next()
	}
}

func presentedKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
