package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// sessionIdleTimeout is how long an unused browser session is kept.
const sessionIdleTimeout = 2 * time.Hour

// sessionEntry is one browser's session. mu serialises that browser's requests.
type sessionEntry struct {
	mu       sync.Mutex
	session  driving.Session
	lastSeen time.Time
}

// sessionRegistry maps cookie values to sessions.
type sessionRegistry struct {
	mu        sync.Mutex
	entries   map[string]*sessionEntry
	assistant driving.AssistantService
	now       func() time.Time
}

func newSessionRegistry(assistant driving.AssistantService) *sessionRegistry {
	return &sessionRegistry{
		entries:   make(map[string]*sessionEntry),
		assistant: assistant,
		now:       time.Now,
	}
}

// get returns the entry for key, creating one under a new key when key is
// unknown. The returned key is the one to store in the cookie.
func (r *sessionRegistry) get(key string) (string, *sessionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if entry, ok := r.entries[key]; ok {
		entry.lastSeen = now
		return key, entry
	}

	r.prune(now)

	key = uuid.NewString()
	entry := &sessionEntry{
		session:  r.assistant.NewSession(),
		lastSeen: now,
	}
	r.entries[key] = entry
	logger.Debug("web: new session %s (%d active)", key, len(r.entries))
	return key, entry
}

// prune drops sessions idle for longer than sessionIdleTimeout. Caller holds mu.
func (r *sessionRegistry) prune(now time.Time) {
	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > sessionIdleTimeout {
			delete(r.entries, key)
		}
	}
}

// len returns the number of live sessions.
func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
