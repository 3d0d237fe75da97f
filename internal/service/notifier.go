package service

import (
	"sync"
	"time"
)

// Notification is a short-lived, dismissible operator message. Never a
// blocking dialog.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const notifierCapacity = 50

// MemoryNotifier keeps the most recent notifications for the UI to drain.
type MemoryNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (n *MemoryNotifier) Notify(level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{Level: level, Message: message, At: time.Now()})
	if len(n.items) > notifierCapacity {
		n.items = n.items[len(n.items)-notifierCapacity:]
	}
}

// Drain returns the buffered notifications and clears them.
func (n *MemoryNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
