package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// responseCache keeps raw completion text per prompt so the same résumé
// scored against the same job description is not paid for twice.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	content  string
	storedAt time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *responseCache) get(model, prompt string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(model, prompt)]
	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return "", false
	}
	return entry.content, true
}

// set stores content and drops anything that has expired.
func (c *responseCache) set(model, prompt, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
	c.entries[cacheKey(model, prompt)] = cacheEntry{content: content, storedAt: now}
}

func cacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}
