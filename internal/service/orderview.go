package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"floorsync/internal/domain"

	"github.com/google/uuid"
)

// DefaultLookbackDays bounds the full-refresh query; older terminal orders
// fall out of the active view.
const DefaultLookbackDays = 30

// OrderView owns the authoritative in-memory set of active orders for one
// scope. It consumes coalesced refresh signals, re-fetches the whole set and
// swaps the snapshot atomically: readers never observe a partial replacement,
// and a failed fetch keeps the previous (stale but whole) snapshot.
type OrderView struct {
	gateway  OrderGateway
	source   *EventSource
	lookback int

	// refreshMu serializes refreshes: a new one never starts before the
	// previous snapshot swap completed.
	refreshMu sync.Mutex

	mu          sync.RWMutex
	branchID    string
	confirmed   []domain.Order
	optimistic  map[string]domain.Order
	refreshedAt time.Time
	hooks       []func()
}

func NewOrderView(gateway OrderGateway, source *EventSource, lookbackDays int) *OrderView {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &OrderView{
		gateway:    gateway,
		source:     source,
		lookback:   lookbackDays,
		optimistic: make(map[string]domain.Order),
	}
}

// SetScope switches the view to another branch (or all branches). The feed
// subscription is replaced before the scope-change signal can fire.
func (v *OrderView) SetScope(ctx context.Context, branchID string) {
	v.mu.Lock()
	v.branchID = branchID
	v.mu.Unlock()
	if v.source != nil {
		v.source.SetScope(branchID)
	}
}

// RequestRefresh asks for one coalesced refresh cycle.
func (v *OrderView) RequestRefresh() {
	if v.source != nil {
		v.source.Kick()
	}
}

// Run consumes refresh signals until ctx is done. One signal, one refresh.
func (v *OrderView) Run(ctx context.Context) {
	if v.source == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-v.source.Signals():
			v.ForceRefresh(ctx)
		}
	}
}

// ForceRefresh fetches the authoritative order set and swaps the snapshot.
// Fetch failures keep the previous snapshot; a response for a scope that is
// no longer current is discarded.
func (v *OrderView) ForceRefresh(ctx context.Context) {
	v.refreshMu.Lock()
	defer v.refreshMu.Unlock()

	v.mu.RLock()
	branchID := v.branchID
	v.mu.RUnlock()

	orders, err := v.gateway.ListOrders(ctx, branchID, v.lookback)
	if err != nil {
		log.Printf("Warning: order refresh failed, keeping stale snapshot: %v", err)
		return
	}

	v.mu.Lock()
	if v.branchID != branchID {
		v.mu.Unlock()
		log.Printf("Warning: discarding order refresh for stale scope %q", branchID)
		return
	}
	// A confirmed row supersedes its optimistic placeholder.
	for _, o := range orders {
		delete(v.optimistic, o.ID)
	}
	v.confirmed = orders
	v.refreshedAt = time.Now()
	hooks := append([]func(){}, v.hooks...)
	v.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Snapshot returns the current ordered sequence (optimistic placeholders
// first, then confirmed orders newest-first) plus the last refresh time.
// Never blocks on remote calls.
func (v *OrderView) Snapshot() ([]domain.Order, time.Time) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Order, 0, len(v.confirmed)+len(v.optimistic))
	for _, o := range v.optimistic {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	out = append(out, v.confirmed...)
	return out, v.refreshedAt
}

// Get looks an order up by id in the current snapshot.
func (v *OrderView) Get(orderID string) (domain.Order, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if o, ok := v.optimistic[orderID]; ok {
		return o, true
	}
	for _, o := range v.confirmed {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// AddOptimistic inserts a locally-synthesized placeholder pending remote
// confirmation. It is visible in the snapshot but excluded from financial
// aggregates and kitchen queues until the next refresh confirms it.
func (v *OrderView) AddOptimistic(order domain.Order) string {
	order.Optimistic = true
	if order.ID == "" {
		order.ID = "local-" + uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	v.mu.Lock()
	v.optimistic[order.ID] = order
	hooks := append([]func(){}, v.hooks...)
	v.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return order.ID
}

// OnChange registers a hook invoked after every snapshot replacement.
func (v *OrderView) OnChange(fn func()) {
	v.mu.Lock()
	v.hooks = append(v.hooks, fn)
	v.mu.Unlock()
}
