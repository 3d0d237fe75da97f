package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"floorsync/internal/domain"
)

var (
	ErrUnknownTicket = errors.New("order is not on the kitchen queue")
	ErrBadTransition = errors.New("transition not allowed from current state")
)

// Kitchen derives the preparation workflow from the order view. Transitions
// apply an optimistic local update first, then confirm remotely; on failure
// the view is force-refreshed back to server truth and the operator gets a
// short-lived notification.
type Kitchen struct {
	view      OrderViewInterface
	orders    OrderGateway
	publisher FeedPublisher
	notifier  Notifier

	mu      sync.Mutex
	entries map[string]*domain.KitchenOrder
}

func NewKitchen(view OrderViewInterface, orders OrderGateway, publisher FeedPublisher, notifier Notifier) *Kitchen {
	k := &Kitchen{
		view:      view,
		orders:    orders,
		publisher: publisher,
		notifier:  notifier,
		entries:   make(map[string]*domain.KitchenOrder),
	}
	view.OnChange(k.Rebuild)
	k.Rebuild()
	return k
}

// Rebuild re-derives the queue from the current snapshot. Orders already
// tracked keep their local-only fields (priority, startedAt, readyAt) so an
// unrelated refresh never discards in-flight local state; everything else is
// taken from server truth.
func (k *Kitchen) Rebuild() {
	snapshot, _ := k.view.Snapshot()

	k.mu.Lock()
	defer k.mu.Unlock()

	next := make(map[string]*domain.KitchenOrder, len(snapshot))
	for _, o := range snapshot {
		if !o.KitchenActive() {
			continue
		}
		if prev, ok := k.entries[o.ID]; ok {
			entry := *prev
			entry.Order = o
			entry.KitchenStatus = domain.MapKitchenStatus(o.Status)
			next[o.ID] = &entry
			continue
		}
		next[o.ID] = &domain.KitchenOrder{
			Order:         o,
			KitchenStatus: domain.MapKitchenStatus(o.Status),
			ReceivedAt:    o.CreatedAt,
			Priority:      domain.PriorityDefault,
		}
	}
	k.entries = next
}

// Queue returns the derived list sorted by priority (urgent first), then by
// receivedAt (oldest first).
func (k *Kitchen) Queue() []domain.KitchenOrder {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := make([]domain.KitchenOrder, 0, len(k.entries))
	for _, e := range k.entries {
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out
}

// StartPreparation runs the stock-affecting transition pending -> preparing.
// The remote call decrements ingredient stock and advances the status in one
// unit; on any failure the optimistic update is reverted to server truth.
func (k *Kitchen) StartPreparation(ctx context.Context, orderID string) error {
	k.mu.Lock()
	entry, ok := k.entries[orderID]
	if !ok {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTicket, orderID)
	}
	if entry.KitchenStatus != domain.KitchenPending {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrBadTransition, orderID, entry.KitchenStatus)
	}
	now := time.Now()
	entry.KitchenStatus = domain.KitchenPreparing
	entry.StartedAt = &now
	k.mu.Unlock()

	if err := k.orders.StartPreparation(ctx, orderID); err != nil {
		k.revert(ctx, orderID, func(e *domain.KitchenOrder) {
			e.KitchenStatus = domain.KitchenPending
			e.StartedAt = nil
		})
		if errors.Is(err, domain.ErrInsufficientStock) {
			k.notify("error", fmt.Sprintf("Not enough stock to start order %s", orderID))
		} else {
			k.notify("error", fmt.Sprintf("Could not start order %s", orderID))
		}
		return err
	}

	k.publish(ctx, orderID)
	return nil
}

// MarkReady runs preparing -> ready, a plain status update.
func (k *Kitchen) MarkReady(ctx context.Context, orderID string) error {
	k.mu.Lock()
	entry, ok := k.entries[orderID]
	if !ok {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTicket, orderID)
	}
	if entry.KitchenStatus != domain.KitchenPreparing {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrBadTransition, orderID, entry.KitchenStatus)
	}
	now := time.Now()
	entry.KitchenStatus = domain.KitchenReady
	entry.ReadyAt = &now
	k.mu.Unlock()

	if err := k.orders.UpdateOrderStatus(ctx, orderID, domain.StatusReady,
		map[string]any{"ready_at": now}); err != nil {
		k.revert(ctx, orderID, func(e *domain.KitchenOrder) {
			e.KitchenStatus = domain.KitchenPreparing
			e.ReadyAt = nil
		})
		k.notify("error", fmt.Sprintf("Could not mark order %s ready", orderID))
		return err
	}

	k.publish(ctx, orderID)
	return nil
}

// Cancel is legal from pending or preparing only.
func (k *Kitchen) Cancel(ctx context.Context, orderID string) error {
	k.mu.Lock()
	entry, ok := k.entries[orderID]
	if !ok {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTicket, orderID)
	}
	if entry.KitchenStatus != domain.KitchenPending && entry.KitchenStatus != domain.KitchenPreparing {
		k.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrBadTransition, orderID, entry.KitchenStatus)
	}
	prevStatus := entry.KitchenStatus
	entry.KitchenStatus = domain.KitchenCancelled
	k.mu.Unlock()

	if err := k.orders.UpdateOrderStatus(ctx, orderID, domain.StatusCancelled, nil); err != nil {
		k.revert(ctx, orderID, func(e *domain.KitchenOrder) {
			e.KitchenStatus = prevStatus
		})
		k.notify("error", fmt.Sprintf("Could not cancel order %s", orderID))
		return err
	}

	k.publish(ctx, orderID)
	return nil
}

// TogglePriority flips a ticket between default and urgent. Pure local state,
// no remote call, idempotent in pairs.
func (k *Kitchen) TogglePriority(orderID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, ok := k.entries[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTicket, orderID)
	}
	if entry.Priority == domain.PriorityUrgent {
		entry.Priority = domain.PriorityDefault
	} else {
		entry.Priority = domain.PriorityUrgent
	}
	return nil
}

// revert undoes exactly what the failed transition changed, leaving fields
// set by earlier successful transitions alone, then pulls server truth back in.
func (k *Kitchen) revert(ctx context.Context, orderID string, undo func(*domain.KitchenOrder)) {
	k.mu.Lock()
	if entry, ok := k.entries[orderID]; ok {
		undo(entry)
	}
	k.mu.Unlock()
	k.view.ForceRefresh(ctx)
}

func (k *Kitchen) publish(ctx context.Context, orderID string) {
	if k.publisher == nil {
		return
	}
	k.mu.Lock()
	branchID := ""
	if entry, ok := k.entries[orderID]; ok {
		branchID = entry.BranchID
	}
	k.mu.Unlock()
	if err := k.publisher.PublishChange(ctx, domain.ChangeEvent{
		Kind:      domain.KindOrders,
		BranchID:  branchID,
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("Warning: publishing order change failed: %v", err)
	}
}

func (k *Kitchen) notify(level, message string) {
	if k.notifier != nil {
		k.notifier.Notify(level, message)
	}
}

// Elapsed reports how long a ticket spent between two points, using now when
// the end timestamp is absent. Display concern, second granularity.
func Elapsed(from time.Time, until *time.Time) time.Duration {
	end := time.Now()
	if until != nil {
		end = *until
	}
	return end.Sub(from).Truncate(time.Second)
}
