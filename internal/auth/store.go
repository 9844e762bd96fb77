// Package auth owns the bearer-token lifecycle: one persisted token,
// explicit save/clear, and change callbacks so every interested view
// re-evaluates authentication without polling.
package auth

import (
	"context"
	"sync"
)

// TokenStore persists the bearer token plus the display-only last
// logged-in phone number. Implementations signal external changes
// (another process logging out) through Subscribe callbacks.
type TokenStore interface {
	// Token returns the persisted token, or empty when none is stored.
	Token(ctx context.Context) (string, error)
	// LastPhone returns the phone number of the last successful login.
	LastPhone(ctx context.Context) (string, error)
	// Save persists token and phone together.
	Save(ctx context.Context, token, phone string) error
	// Clear removes the token. Idempotent; the last phone survives.
	Clear(ctx context.Context) error
	// Subscribe registers fn to run after every observed token change.
	Subscribe(fn func())
	// Close releases watchers and subscriptions.
	Close() error
}

// notifier fan-outs change signals to subscribers.
type notifier struct {
	mu   sync.Mutex
	subs []func()
}

func (n *notifier) subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
