package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"floorsync/internal/domain"

	"github.com/google/uuid"
)

// SettleTolerance absorbs floating-point drift in split arithmetic. A
// shortfall larger than this rejects the settlement.
const SettleTolerance = 0.01

var (
	ErrNothingToSettle    = errors.New("no settleable orders named")
	ErrInsufficientTender = errors.New("tender splits do not cover the order total")
	ErrOrderNotSettleable = errors.New("order cannot be settled")
)

// Settlement describes one completed multi-tender checkout.
type Settlement struct {
	BatchID   string                 `json:"batch_id"`
	SessionID string                 `json:"session_id"`
	OrderIDs  []string               `json:"order_ids"`
	Records   []domain.PaymentRecord `json:"records"`
	Total     float64                `json:"total"`
	Paid      float64                `json:"paid"`
	SettledAt time.Time              `json:"settled_at"`
}

// Checkout composes the order view (bills to settle), the session manager
// (an open session is a hard precondition) and the payment gateway into the
// cashier settlement flow.
type Checkout struct {
	view      OrderViewInterface
	sessions  SessionServiceInterface
	orders    OrderGateway
	payments  PaymentGateway
	publisher FeedPublisher
}

func NewCheckout(view OrderViewInterface, sessions SessionServiceInterface,
	orders OrderGateway, payments PaymentGateway, publisher FeedPublisher) *Checkout {
	return &Checkout{
		view:      view,
		sessions:  sessions,
		orders:    orders,
		payments:  payments,
		publisher: publisher,
	}
}

// Settle validates and submits a multi-tender settlement for a batch of
// orders. One payment record is written per non-zero split, each referencing
// the session and the first order of the batch; then every order is marked
// paid. The two steps are not transactional: a partial order-update failure
// is surfaced with the ids left unpaid, there is no automatic compensation.
func (c *Checkout) Settle(ctx context.Context, orderIDs []string, splits map[string]any, staffID string) (*Settlement, error) {
	session := c.sessions.Active()
	if session == nil {
		return nil, domain.ErrNoOpenSession
	}
	if len(orderIDs) == 0 {
		return nil, ErrNothingToSettle
	}

	var total float64
	for _, id := range orderIDs {
		order, ok := c.view.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not in the active view", ErrOrderNotSettleable, id)
		}
		if order.Optimistic {
			return nil, fmt.Errorf("%w: %s is not confirmed yet", ErrOrderNotSettleable, id)
		}
		if order.Terminal() {
			return nil, fmt.Errorf("%w: %s is already %s", ErrOrderNotSettleable, id, order.Status)
		}
		total += order.Total
	}

	now := time.Now().UTC()
	records := buildRecords(splits, session.ID, orderIDs[0], now)

	var paid float64
	for _, rec := range records {
		paid += rec.Amount
	}
	if pending := total - paid; pending > SettleTolerance {
		return nil, fmt.Errorf("%w: %.2f pending", ErrInsufficientTender, pending)
	}

	if err := c.payments.InsertPayments(ctx, records); err != nil {
		return nil, fmt.Errorf("recording payments: %w", err)
	}

	settlement := &Settlement{
		BatchID:   uuid.NewString(),
		SessionID: session.ID,
		OrderIDs:  orderIDs,
		Records:   records,
		Total:     total,
		Paid:      paid,
		SettledAt: now,
	}

	method := settledMethod(records)
	for i, id := range orderIDs {
		err := c.orders.UpdateOrderStatus(ctx, id, domain.StatusPaid, map[string]any{
			"payment_method": method,
			"cashier_id":     staffID,
			"paid_at":        now,
		})
		if err != nil {
			// Payments are already recorded; the operator reconciles the rest.
			c.publish(ctx, session)
			return settlement, fmt.Errorf(
				"payments recorded but orders %s left unpaid: %w",
				strings.Join(orderIDs[i:], ", "), err)
		}
	}

	c.publish(ctx, session)
	return settlement, nil
}

// buildRecords turns tender splits into payment records, skipping zero and
// negative amounts. Split keys are normalized and walked in stable order.
func buildRecords(splits map[string]any, sessionID, orderID string, at time.Time) []domain.PaymentRecord {
	methods := make([]string, 0, len(splits))
	for method := range splits {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	var records []domain.PaymentRecord
	for _, method := range methods {
		amount := domain.ParseAmount(splits[method])
		if amount <= 0 {
			continue
		}
		records = append(records, domain.PaymentRecord{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			OrderID:   orderID,
			Method:    domain.NormalizeTender(method),
			Amount:    amount,
			CreatedAt: at,
		})
	}
	return records
}

// settledMethod is the payment_method stamped on the orders: the single
// tender used, or "mixed" for a split settlement.
func settledMethod(records []domain.PaymentRecord) string {
	if len(records) == 1 {
		return records[0].Method
	}
	return "mixed"
}

func (c *Checkout) publish(ctx context.Context, session *domain.CashSession) {
	if c.publisher == nil {
		return
	}
	for _, kind := range []string{domain.KindPayments, domain.KindOrders} {
		if err := c.publisher.PublishChange(ctx, domain.ChangeEvent{
			Kind:      kind,
			BranchID:  session.BranchID,
			SessionID: session.ID,
			Timestamp: time.Now(),
		}); err != nil {
			log.Printf("Warning: publishing %s change failed: %v", kind, err)
		}
	}
}
