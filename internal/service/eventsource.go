package service

import (
	"context"
	"sync"
	"time"

	"floorsync/internal/domain"
)

// DefaultPollInterval is the full-refresh backstop; push delivery only makes
// convergence faster, never a requirement.
const DefaultPollInterval = 10 * time.Second

// EventSource folds the three refresh triggers (poll tick, push notification,
// scope change) into one coalesced "re-derive state" signal. At most one
// signal is pending at a time: triggers that fire before the consumer drains
// the previous one collapse into it.
type EventSource struct {
	feed     ChangeFeed
	kinds    []string
	interval time.Duration
	signals  chan struct{}

	mu        sync.Mutex
	branchID  string
	cancelSub func()
}

func NewEventSource(feed ChangeFeed, kinds []string, interval time.Duration) *EventSource {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &EventSource{
		feed:     feed,
		kinds:    kinds,
		interval: interval,
		signals:  make(chan struct{}, 1),
	}
}

// Signals is the coalesced notification stream.
func (es *EventSource) Signals() <-chan struct{} {
	return es.signals
}

// Kick requests a refresh. Non-blocking; collapses into a pending signal.
func (es *EventSource) Kick() {
	select {
	case es.signals <- struct{}{}:
	default:
	}
}

// SetScope tears down the previous subscription before establishing the new
// one, so a stale feed can never deliver into the new scope, then kicks once
// for the scope change itself.
func (es *EventSource) SetScope(branchID string) {
	es.mu.Lock()
	if es.cancelSub != nil {
		es.cancelSub()
		es.cancelSub = nil
	}
	es.branchID = branchID
	if es.feed != nil {
		es.cancelSub = es.feed.Subscribe(es.kinds, branchID, func(domain.ChangeEvent) {
			es.Kick()
		})
	}
	es.mu.Unlock()
	es.Kick()
}

// Run drives the poll ticker until ctx is done, then tears the feed down.
func (es *EventSource) Run(ctx context.Context) {
	ticker := time.NewTicker(es.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			es.mu.Lock()
			if es.cancelSub != nil {
				es.cancelSub()
				es.cancelSub = nil
			}
			es.mu.Unlock()
			return
		case <-ticker.C:
			es.Kick()
		}
	}
}
