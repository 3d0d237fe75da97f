package service

import (
	"context"
	"time"

	"floorsync/internal/domain"
)

// Gateways to the remote data service. Injected at construction so tests can
// substitute fakes; the core never reaches for a package-level handle.

type OrderGateway interface {
	ListOrders(ctx context.Context, branchID string, lookbackDays int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string, extra map[string]any) error
	StartPreparation(ctx context.Context, orderID string) error
}

type SessionGateway interface {
	FetchActiveSession(ctx context.Context, branchID string) (*domain.CashSession, error)
	OpenSession(ctx context.Context, branchID string, openingAmount float64, comment, staffID string) (string, error)
	CloseSession(ctx context.Context, sessionID string, counted domain.CountedAmounts, comment, staffID string) (*domain.CashSession, error)
}

type PaymentGateway interface {
	InsertPayments(ctx context.Context, records []domain.PaymentRecord) error
	ListPayments(ctx context.Context, sessionID string) ([]domain.PaymentRecord, error)
}

// ChangeFeed is the push half of the notification stream. Subscribe returns a
// cancel function; the adapter owns exactly one live subscription per scope.
type ChangeFeed interface {
	Subscribe(kinds []string, branchID string, notify func(domain.ChangeEvent)) func()
}

type FeedPublisher interface {
	PublishChange(ctx context.Context, ev domain.ChangeEvent) error
}

// Notifier carries short-lived operator-facing messages (toasts, not dialogs).
type Notifier interface {
	Notify(level, message string)
}

type DirectoryStore interface {
	StaffName(ctx context.Context, staffID string) (string, error)
	MenuItemName(ctx context.Context, menuItemID string) (string, error)
}

type DirectoryCache interface {
	StaffKey(staffID string) string
	MenuItemKey(menuItemID string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, name string) error
}

// Component-facing interfaces, consumed by the HTTP layer and by sibling
// components that only ever read published snapshots.

type OrderViewInterface interface {
	Snapshot() ([]domain.Order, time.Time)
	Get(orderID string) (domain.Order, bool)
	SetScope(ctx context.Context, branchID string)
	RequestRefresh()
	ForceRefresh(ctx context.Context)
	AddOptimistic(order domain.Order) string
	OnChange(fn func())
}

type KitchenServiceInterface interface {
	Queue() []domain.KitchenOrder
	StartPreparation(ctx context.Context, orderID string) error
	MarkReady(ctx context.Context, orderID string) error
	Cancel(ctx context.Context, orderID string) error
	TogglePriority(orderID string) error
}

type SessionServiceInterface interface {
	Active() *domain.CashSession
	Refresh(ctx context.Context)
	Open(ctx context.Context, openingAmount float64, comment, staffID string) (string, error)
	Close(ctx context.Context, counted domain.CountedAmounts, comment, staffID string) (*domain.CashSession, error)
}

type ShiftStatsInterface interface {
	Stats() domain.ShiftStats
	SetSession(ctx context.Context, sessionID string)
	Recompute(ctx context.Context)
}

type CheckoutServiceInterface interface {
	Settle(ctx context.Context, orderIDs []string, splits map[string]any, staffID string) (*Settlement, error)
}

type DirectoryServiceInterface interface {
	StaffName(ctx context.Context, staffID string) string
	MenuItemName(ctx context.Context, menuItemID string) string
}

var (
	_ OrderViewInterface        = (*OrderView)(nil)
	_ KitchenServiceInterface   = (*Kitchen)(nil)
	_ SessionServiceInterface   = (*Sessions)(nil)
	_ ShiftStatsInterface       = (*ShiftTotals)(nil)
	_ CheckoutServiceInterface  = (*Checkout)(nil)
	_ DirectoryServiceInterface = (*Directory)(nil)
)
