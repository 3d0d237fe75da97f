package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"floorsync/internal/domain"
)

// Sessions owns the till-session lifecycle for one scope:
// {no-session} --Open--> {open} --Close--> {no-session}.
// The remote service enforces at-most-one open session per branch; this
// component additionally refuses the locally-visible illegal calls instead of
// silently superseding state.
type Sessions struct {
	gateway   SessionGateway
	source    *EventSource
	publisher FeedPublisher

	mu       sync.RWMutex
	branchID string
	active   *domain.CashSession
	hooks    []func(*domain.CashSession)
}

func NewSessions(gateway SessionGateway, source *EventSource, publisher FeedPublisher) *Sessions {
	return &Sessions{gateway: gateway, source: source, publisher: publisher}
}

func (s *Sessions) SetScope(ctx context.Context, branchID string) {
	s.mu.Lock()
	s.branchID = branchID
	s.mu.Unlock()
	if s.source != nil {
		s.source.SetScope(branchID)
	}
}

// Run consumes session-scoped refresh signals until ctx is done.
func (s *Sessions) Run(ctx context.Context) {
	if s.source == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.source.Signals():
			s.Refresh(ctx)
		}
	}
}

// Refresh re-fetches the active session. Fetch failures keep the previous
// state; a response for a stale scope is discarded.
func (s *Sessions) Refresh(ctx context.Context) {
	s.mu.RLock()
	branchID := s.branchID
	s.mu.RUnlock()

	active, err := s.gateway.FetchActiveSession(ctx, branchID)
	if err != nil {
		log.Printf("Warning: session refresh failed, keeping previous state: %v", err)
		return
	}

	s.mu.Lock()
	if s.branchID != branchID {
		s.mu.Unlock()
		return
	}
	s.active = active
	hooks := append([]func(*domain.CashSession){}, s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(copySession(active))
	}
}

// Active returns the currently open session, or nil. Snapshot copy, never a
// pointer into internal state.
func (s *Sessions) Active() *domain.CashSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.active)
}

// Open starts a new session. Fails with ErrSessionAlreadyOpen while one is
// open; on success the full record is materialized by a refresh since the
// open call itself only yields an id.
func (s *Sessions) Open(ctx context.Context, openingAmount float64, comment, staffID string) (string, error) {
	if openingAmount < 0 {
		return "", fmt.Errorf("opening amount must not be negative")
	}
	if s.Active() != nil {
		return "", domain.ErrSessionAlreadyOpen
	}

	s.mu.RLock()
	branchID := s.branchID
	s.mu.RUnlock()

	id, err := s.gateway.OpenSession(ctx, branchID, openingAmount, comment, staffID)
	if err != nil {
		return "", err
	}

	s.publish(ctx, branchID, id)
	s.Refresh(ctx)
	return id, nil
}

// Close settles the drawer count against the expected amount and closes the
// session. Fails with ErrNoOpenSession when nothing is open.
func (s *Sessions) Close(ctx context.Context, counted domain.CountedAmounts, comment, staffID string) (*domain.CashSession, error) {
	active := s.Active()
	if active == nil {
		return nil, domain.ErrNoOpenSession
	}

	closed, err := s.gateway.CloseSession(ctx, active.ID, counted, comment, staffID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = nil
	hooks := append([]func(*domain.CashSession){}, s.hooks...)
	branchID := s.branchID
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(nil)
	}
	s.publish(ctx, branchID, closed.ID)
	return closed, nil
}

// OnChange registers a hook fired with the new active session (nil when the
// session closed or none is open).
func (s *Sessions) OnChange(fn func(*domain.CashSession)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

func (s *Sessions) publish(ctx context.Context, branchID, sessionID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, domain.ChangeEvent{
		Kind:      domain.KindSessions,
		BranchID:  branchID,
		SessionID: sessionID,
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("Warning: publishing session change failed: %v", err)
	}
}

func copySession(s *domain.CashSession) *domain.CashSession {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
