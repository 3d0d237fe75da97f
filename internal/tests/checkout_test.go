package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"floorsync/internal/domain"
	"floorsync/internal/mocks"
	"floorsync/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	view     *mocks.OrderViewInterface
	sessions *mocks.SessionServiceInterface
	orders   *mocks.OrderGateway
	payments *mocks.PaymentGateway
	checkout *service.Checkout
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	f := &checkoutFixture{
		view:     mocks.NewOrderViewInterface(t),
		sessions: mocks.NewSessionServiceInterface(t),
		orders:   mocks.NewOrderGateway(t),
		payments: mocks.NewPaymentGateway(t),
	}
	f.checkout = service.NewCheckout(f.view, f.sessions, f.orders, f.payments, nil)
	return f
}

func (f *checkoutFixture) withSession() {
	f.sessions.On("Active").Return(&domain.CashSession{
		ID: "s1", BranchID: "b1", Status: domain.SessionOpen,
	})
}

func (f *checkoutFixture) withOrder(id string, total float64) {
	f.view.On("Get", id).Return(domain.Order{
		ID: id, Status: domain.StatusBilling, Total: total, CreatedAt: time.Now(),
	}, true)
}

func TestCheckout_SplitSettlementCoversTotal(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 30.00)
	f.withOrder("o2", 27.30)

	var inserted []domain.PaymentRecord
	f.payments.On("InsertPayments", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).([]domain.PaymentRecord)
		}).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusPaid, mock.Anything).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o2", domain.StatusPaid, mock.Anything).Return(nil).Once()

	splits := map[string]any{"CASH": "30.00", "CARD": "27.30"}
	settlement, err := f.checkout.Settle(context.Background(), []string{"o1", "o2"}, splits, "staff-1")
	require.NoError(t, err)

	assert.InDelta(t, 57.30, settlement.Total, 0.001)
	assert.InDelta(t, 57.30, settlement.Paid, 0.001)
	assert.NotEmpty(t, settlement.BatchID)

	require.Len(t, inserted, 2)
	// split keys walk in sorted order and are normalized
	assert.Equal(t, domain.TenderCard, inserted[0].Method)
	assert.InDelta(t, 27.30, inserted[0].Amount, 0.001)
	assert.Equal(t, domain.TenderCash, inserted[1].Method)
	assert.InDelta(t, 30.00, inserted[1].Amount, 0.001)
	// every record references the session and the first order of the batch
	for _, rec := range inserted {
		assert.Equal(t, "s1", rec.SessionID)
		assert.Equal(t, "o1", rec.OrderID)
		assert.NotEmpty(t, rec.ID)
	}
}

func TestCheckout_InsufficientTenderIsRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 30.00)
	f.withOrder("o2", 27.30)

	// 57.00 against 57.30 due: 0.30 short, well beyond the tolerance
	splits := map[string]any{"cash": 57.00}
	_, err := f.checkout.Settle(context.Background(), []string{"o1", "o2"}, splits, "staff-1")
	assert.ErrorIs(t, err, service.ErrInsufficientTender)
}

func TestCheckout_ToleratesSubCentShortfall(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 19.99)

	f.payments.On("InsertPayments", mock.Anything, mock.Anything).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusPaid, mock.Anything).Return(nil).Once()

	_, err := f.checkout.Settle(context.Background(), []string{"o1"},
		map[string]any{"cash": 19.985}, "staff-1")
	assert.NoError(t, err)
}

func TestCheckout_RequiresOpenSession(t *testing.T) {
	f := newCheckoutFixture(t)
	f.sessions.On("Active").Return(nil)

	_, err := f.checkout.Settle(context.Background(), []string{"o1"},
		map[string]any{"cash": 10}, "staff-1")
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestCheckout_RequiresOrderIDs(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()

	_, err := f.checkout.Settle(context.Background(), nil,
		map[string]any{"cash": 10}, "staff-1")
	assert.ErrorIs(t, err, service.ErrNothingToSettle)
}

func TestCheckout_RejectsUnsettleableOrders(t *testing.T) {
	ctx := context.Background()
	splits := map[string]any{"cash": 10}

	t.Run("not in view", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.withSession()
		f.view.On("Get", "missing").Return(domain.Order{}, false)

		_, err := f.checkout.Settle(ctx, []string{"missing"}, splits, "staff-1")
		assert.ErrorIs(t, err, service.ErrOrderNotSettleable)
	})

	t.Run("optimistic placeholder", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.withSession()
		f.view.On("Get", "local-1").Return(domain.Order{
			ID: "local-1", Status: domain.StatusPending, Total: 10, Optimistic: true,
		}, true)

		_, err := f.checkout.Settle(ctx, []string{"local-1"}, splits, "staff-1")
		assert.ErrorIs(t, err, service.ErrOrderNotSettleable)
	})

	t.Run("already paid", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.withSession()
		f.view.On("Get", "o1").Return(domain.Order{
			ID: "o1", Status: domain.StatusPaid, Total: 10,
		}, true)

		_, err := f.checkout.Settle(ctx, []string{"o1"}, splits, "staff-1")
		assert.ErrorIs(t, err, service.ErrOrderNotSettleable)
	})
}

func TestCheckout_SingleTenderStampsItsMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 10)

	f.payments.On("InsertPayments", mock.Anything, mock.Anything).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusPaid,
		mock.MatchedBy(func(fields map[string]any) bool {
			return fields["payment_method"] == domain.TenderCash && fields["cashier_id"] == "staff-1"
		})).Return(nil).Once()

	_, err := f.checkout.Settle(context.Background(), []string{"o1"},
		map[string]any{"cash": 10}, "staff-1")
	assert.NoError(t, err)
}

func TestCheckout_PartialOrderUpdateFailureNamesUnpaid(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 10)
	f.withOrder("o2", 20)

	f.payments.On("InsertPayments", mock.Anything, mock.Anything).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusPaid, mock.Anything).
		Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o2", domain.StatusPaid, mock.Anything).
		Return(errors.New("connection reset")).Once()

	settlement, err := f.checkout.Settle(context.Background(), []string{"o1", "o2"},
		map[string]any{"cash": 30}, "staff-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "o2")
	assert.NotContains(t, err.Error(), "o1,")
	// the settlement is returned so the caller can reconcile
	require.NotNil(t, settlement)
	assert.InDelta(t, 30, settlement.Paid, 0.001)
}

func TestCheckout_ZeroSplitsProduceNoRecords(t *testing.T) {
	f := newCheckoutFixture(t)
	f.withSession()
	f.withOrder("o1", 10)

	var inserted []domain.PaymentRecord
	f.payments.On("InsertPayments", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).([]domain.PaymentRecord)
		}).Return(nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusPaid, mock.Anything).
		Return(nil).Once()

	_, err := f.checkout.Settle(context.Background(), []string{"o1"},
		map[string]any{"cash": 10, "card": 0, "transfer": "-5"}, "staff-1")
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, domain.TenderCash, inserted[0].Method)
}
