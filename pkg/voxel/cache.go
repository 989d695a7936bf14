package voxel

import (
	"sync"

	"github.com/google/uuid"
)

// SessionKey identifies a visualization session.
type SessionKey string

// NewSessionKey returns a random session key.
func NewSessionKey() SessionKey {
	return SessionKey(uuid.NewString())
}

// Cache holds at most one Session per key. Sessions are created lazily.
// The cache itself is safe for concurrent use; individual sessions are not.
type Cache struct {
	mu       sync.Mutex
	sessions map[SessionKey]*Session
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{sessions: make(map[SessionKey]*Session)}
}

// GetOrCreate returns the session for key, creating an empty one if needed.
func (c *Cache) GetOrCreate(key SessionKey) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[key]
	if !ok {
		s = NewSession(key)
		c.sessions[key] = s
	}
	return s
}

// Get returns the session for key without creating it.
func (c *Cache) Get(key SessionKey) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[key]
	return s, ok
}

// Set stores model as the snapshot of the session for key.
func (c *Cache) Set(key SessionKey, model ModelData) *Session {
	s := c.GetOrCreate(key)
	s.SetModel(model)
	return s
}

// Delete drops the session for key.
func (c *Cache) Delete(key SessionKey) {
	c.mu.Lock()
	delete(c.sessions, key)
	c.mu.Unlock()
}

// Len returns the number of sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
