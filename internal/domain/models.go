package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Order statuses as written by the ordering subsystem. The kitchen view maps
// them onto its own, smaller state set.
const (
	StatusOpen      = "open"
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusBilling   = "billing"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// ScopeAll selects every branch.
const ScopeAll = ""

type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Note       string  `json:"note,omitempty"`
}

type Order struct {
	ID          string      `json:"id"`
	BranchID    string      `json:"branch_id"`
	TableNumber int         `json:"table_number"`
	Items       []OrderItem `json:"items"`
	Status      string      `json:"status"`
	Total       float64     `json:"total"`
	WaiterID    string      `json:"waiter_id"`
	CreatedAt   time.Time   `json:"created_at"`

	// Settlement metadata, set once the order is paid.
	PaymentMethod string     `json:"payment_method,omitempty"`
	CashierID     string     `json:"cashier_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	// Optimistic marks a locally-synthesized placeholder that the remote
	// service has not confirmed yet. Such orders never reach financial
	// aggregates or stock-affecting kitchen actions.
	Optimistic bool `json:"optimistic,omitempty"`
}

// Terminal reports whether the order left the active lifecycle.
func (o Order) Terminal() bool {
	return o.Status == StatusPaid || o.Status == StatusCancelled
}

// KitchenActive reports whether the order belongs on the kitchen queue.
func (o Order) KitchenActive() bool {
	switch o.Status {
	case StatusOpen, StatusPending, StatusPreparing, StatusReady:
		return !o.Optimistic
	}
	return false
}

// Kitchen workflow states derived from the raw order status.
const (
	KitchenPending   = "pending"
	KitchenPreparing = "preparing"
	KitchenReady     = "ready"
	KitchenCancelled = "cancelled"
)

// PriorityUrgent sorts before every default-priority ticket.
const (
	PriorityDefault = 0
	PriorityUrgent  = -1
)

type KitchenOrder struct {
	Order
	KitchenStatus string     `json:"kitchen_status"`
	ReceivedAt    time.Time  `json:"received_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	ReadyAt       *time.Time `json:"ready_at,omitempty"`
	Priority      int        `json:"priority"`
}

// MapKitchenStatus folds a raw order status into the kitchen state set.
// Anything unknown or newly introduced lands in pending.
func MapKitchenStatus(orderStatus string) string {
	switch orderStatus {
	case StatusPreparing:
		return KitchenPreparing
	case StatusReady:
		return KitchenReady
	case StatusCancelled:
		return KitchenCancelled
	default:
		return KitchenPending
	}
}

const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

type CashSession struct {
	ID            string    `json:"id"`
	BranchID      string    `json:"branch_id"`
	OpenedBy      string    `json:"opened_by"`
	OpenedAt      time.Time `json:"opened_at"`
	OpeningAmount float64   `json:"opening_amount"`
	Comment       string    `json:"comment,omitempty"`
	Status        string    `json:"status"`

	ClosedBy        string     `json:"closed_by,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	CountedCash     float64    `json:"counted_cash,omitempty"`
	CountedCard     float64    `json:"counted_card,omitempty"`
	CountedTransfer float64    `json:"counted_transfer,omitempty"`
	CountedOther    float64    `json:"counted_other,omitempty"`
	// Difference is counted minus expected, computed by the close procedure.
	Difference float64 `json:"difference,omitempty"`
}

// Tender methods. Unrecognized values fold into other.
const (
	TenderCash     = "cash"
	TenderCard     = "card"
	TenderTransfer = "transfer"
	TenderOther    = "other"
)

// NormalizeTender trims, lowercases and buckets a raw method string.
func NormalizeTender(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case TenderCash:
		return TenderCash
	case TenderCard:
		return TenderCard
	case TenderTransfer:
		return TenderTransfer
	default:
		return TenderOther
	}
}

// ParseAmount accepts the loose representations payment amounts show up in
// (numbers, numeric strings) and degrades unparsable input to zero instead of
// failing a whole aggregation.
func ParseAmount(v any) float64 {
	switch a := v.(type) {
	case float64:
		return a
	case float32:
		return float64(a)
	case int:
		return float64(a)
	case int64:
		return float64(a)
	case json.Number:
		f, err := a.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

type PaymentRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	OrderID   string    `json:"order_id"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ShiftStats is a derived aggregate over one session's payments. It is
// rebuilt wholesale on every change notification, never patched in place.
type ShiftStats struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
	Other    float64 `json:"other"`
	Total    float64 `json:"total"`
}

// Change-feed event kinds.
const (
	KindOrders   = "orders"
	KindSessions = "sessions"
	KindPayments = "payments"
)

// ChangeEvent is a change-feed notification. It carries no row payload; the
// contract is only "something in this scope changed, re-derive".
type ChangeEvent struct {
	Kind      string    `json:"kind"`
	BranchID  string    `json:"branch_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Matches reports whether the event falls inside a subscription's scope.
func (e ChangeEvent) Matches(kind, branchID string) bool {
	if e.Kind != kind {
		return false
	}
	return branchID == ScopeAll || e.BranchID == ScopeAll || e.BranchID == branchID
}
