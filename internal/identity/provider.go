// Package identity resolves the stable per-device user identifier and mints
// per-view session identifiers.
package identity

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// userIDKey is the storage key the user id lives under.
const userIDKey = "user_id"

// Provider hands out the client-side identifiers a chat session needs.
// A nil store means identifiers live only in memory.
type Provider struct {
	store Store

	mu     sync.Mutex
	cached string
}

// NewProvider creates a provider backed by store. Pass nil to run without
// persistence.
func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// ResolveUserID returns the persisted user id, generating and persisting a
// fresh one on first use. Storage failures degrade to a process-local id so
// the chat view can still open; they never abort resolution.
func (p *Provider) ResolveUserID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}

	if p.store != nil {
		value, ok, err := p.store.Get(userIDKey)
		if err != nil {
			log.Printf("[identity] read user id: %v", err)
		} else if ok && value != "" {
			p.cached = value
			return value
		}
	}

	id := uuid.NewString()
	if p.store != nil {
		if err := p.store.Set(userIDKey, id); err != nil {
			log.Printf("[identity] persist user id: %v", err)
		}
	}
	p.cached = id
	return id
}

// NewSessionID mints an identifier for one chat-view lifetime. Session ids
// are never persisted and never reused.
func (p *Provider) NewSessionID() string {
	return uuid.NewString()
}
