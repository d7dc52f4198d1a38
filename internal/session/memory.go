// Package session holds the process-local session cache.
package session

import (
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-profile-keeper/models"
)

// memoryCache is a thread-safe in-memory [Cache] with a per-user token index.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]models.Profile
	byUser  map[string]map[string]struct{}
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() Cache {
	return &memoryCache{
		entries: make(map[string]models.Profile),
		byUser:  make(map[string]map[string]struct{}),
	}
}

func (c *memoryCache) Put(token string, profile models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a token re-put for another user must not stay indexed under the old one
	if old, ok := c.entries[token]; ok && old.Username != profile.Username {
		c.unindex(old.Username, token)
	}

	c.entries[token] = profile
	tokens, ok := c.byUser[profile.Username]
	if !ok {
		tokens = make(map[string]struct{})
		c.byUser[profile.Username] = tokens
	}
	tokens[token] = struct{}{}
}

func (c *memoryCache) Get(token string) (models.Profile, bool) {
	c.mu.RLock()
	profile, ok := c.entries[token]
	c.mu.RUnlock()
	return profile, ok
}

func (c *memoryCache) Remove(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(token)
}

func (c *memoryCache) Mutate(token string, fn func(*models.Profile)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	profile, ok := c.entries[token]
	if !ok {
		return false
	}
	c.apply(token, profile, fn)
	return true
}

func (c *memoryCache) MutateUser(username string, fn func(*models.Profile)) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := c.byUser[username]
	for token := range tokens {
		c.apply(token, c.entries[token], fn)
	}
	return len(tokens)
}

func (c *memoryCache) RemoveUser(username string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := slices.Collect(maps.Keys(c.byUser[username]))
	for _, token := range tokens {
		c.remove(token)
	}
	return tokens
}

func (c *memoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.entries))
	for token, profile := range c.entries {
		out[token] = profile.Username
	}
	return out
}

// apply runs fn on a copy and writes it back; fn cannot rename the entry.
// Callers hold the write lock.
func (c *memoryCache) apply(token string, profile models.Profile, fn func(*models.Profile)) {
	username := profile.Username
	fn(&profile)
	profile.Username = username
	c.entries[token] = profile
}

// remove deletes token from both maps. Callers hold the write lock.
func (c *memoryCache) remove(token string) {
	profile, ok := c.entries[token]
	if !ok {
		return
	}
	delete(c.entries, token)
	c.unindex(profile.Username, token)
}

func (c *memoryCache) unindex(username, token string) {
	tokens := c.byUser[username]
	delete(tokens, token)
	if len(tokens) == 0 {
		delete(c.byUser, username)
	}
}
