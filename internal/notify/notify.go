// Package notify keeps short-lived user-facing messages.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DisplayDuration is how long a notification stays active.
const DisplayDuration = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Notifier struct {
	mu    sync.Mutex
	now   func() time.Time
	items []Notification
}

type Option func(*Notifier)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func New(opts ...Option) *Notifier {
	n := &Notifier{now: time.Now}
	for _, o := range opts {
		o(n)
	}
	return n
}

func (n *Notifier) Success(msg string) Notification {
	return n.push(KindSuccess, msg)
}

func (n *Notifier) Error(msg string) Notification {
	return n.push(KindError, msg)
}

// Active returns the unexpired notifications, oldest first, and forgets the
// expired ones.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prune(n.now())
	return append([]Notification{}, n.items...)
}

func (n *Notifier) push(kind Kind, msg string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	n.prune(now)
	item := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		CreatedAt: now,
		ExpiresAt: now.Add(DisplayDuration),
	}
	n.items = append(n.items, item)
	return item
}

func (n *Notifier) prune(now time.Time) {
	n.items = slices.DeleteFunc(n.items, func(it Notification) bool {
		return !now.Before(it.ExpiresAt)
	})
}
