package service

import (
	"context"
	"log"
	"sync"

	"floorsync/internal/domain"
)

// ShiftTotals aggregates the payments recorded against one session into
// per-tender sums. Every change notification triggers a wholesale recompute;
// there is deliberately no incremental delta tracking to drift away from.
type ShiftTotals struct {
	payments PaymentGateway

	mu        sync.RWMutex
	sessionID string
	stats     domain.ShiftStats
}

func NewShiftTotals(payments PaymentGateway) *ShiftTotals {
	return &ShiftTotals{payments: payments}
}

// SetSession switches the aggregation target. An empty id (no open session)
// resets to all-zero stats without touching the remote service.
func (t *ShiftTotals) SetSession(ctx context.Context, sessionID string) {
	t.mu.Lock()
	t.sessionID = sessionID
	if sessionID == "" {
		t.stats = domain.ShiftStats{}
	}
	t.mu.Unlock()

	if sessionID != "" {
		t.Recompute(ctx)
	}
}

// Recompute queries all payment records for the session and folds them into
// fresh stats. Unknown tender methods fold into "other". Failures keep the
// previous stats.
func (t *ShiftTotals) Recompute(ctx context.Context) {
	t.mu.RLock()
	sessionID := t.sessionID
	t.mu.RUnlock()

	if sessionID == "" {
		t.mu.Lock()
		t.stats = domain.ShiftStats{}
		t.mu.Unlock()
		return
	}

	records, err := t.payments.ListPayments(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: shift stats recompute failed, keeping previous totals: %v", err)
		return
	}

	stats := Fold(records)

	t.mu.Lock()
	if t.sessionID == sessionID {
		t.stats = stats
	}
	t.mu.Unlock()
}

// Stats returns the current aggregate.
func (t *ShiftTotals) Stats() domain.ShiftStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// Fold sums payment records per normalized tender method. Total is always
// the sum of the four buckets.
func Fold(records []domain.PaymentRecord) domain.ShiftStats {
	var stats domain.ShiftStats
	for _, rec := range records {
		switch domain.NormalizeTender(rec.Method) {
		case domain.TenderCash:
			stats.Cash += rec.Amount
		case domain.TenderCard:
			stats.Card += rec.Amount
		case domain.TenderTransfer:
			stats.Transfer += rec.Amount
		default:
			stats.Other += rec.Amount
		}
	}
	stats.Total = stats.Cash + stats.Card + stats.Transfer + stats.Other
	return stats
}
