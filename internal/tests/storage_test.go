package tests

import (
	"context"
	"testing"
	"time"

	"floorsync/internal/domain"
	"floorsync/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T) (*storage.PostgresGateway, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return storage.NewPostgresGateway(db), mock
}

func TestPostgresGateway_ListOrdersAttachesItems(t *testing.T) {
	gateway, mock := newGateway(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("b1", 30).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "table_number", "status", "total",
			"waiter_id", "created_at", "payment_method", "cashier_id", "paid_at",
		}).
			AddRow("o2", "b1", 7, "pending", 27.30, "w1", now, "", "", nil).
			AddRow("o1", "b1", 3, "open", 30.00, "w1", now.Add(-time.Minute), "", "", nil))

	mock.ExpectQuery("SELECT (.+) FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "menu_item_id", "name", "quantity", "price", "note",
		}).
			AddRow("o1", "m1", "Soup", 2, 15.00, "").
			AddRow("o2", "m2", "Pasta", 1, 27.30, "no cheese"))

	orders, err := gateway.ListOrders(context.Background(), "b1", 30)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "o2", orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Pasta", orders[0].Items[0].Name)
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, 2, orders[1].Items[0].Quantity)
}

func TestPostgresGateway_ListOrdersEmpty(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("b1", 30).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "table_number", "status", "total",
			"waiter_id", "created_at", "payment_method", "cashier_id", "paid_at",
		}))

	orders, err := gateway.ListOrders(context.Background(), "b1", 30)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPostgresGateway_UpdateOrderStatusWhitelistsColumns(t *testing.T) {
	gateway, mock := newGateway(t)
	paidAt := time.Now()

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\), payment_method = \$2, cashier_id = \$3, paid_at = \$4 WHERE id = \$5`).
		WithArgs("paid", "cash", "staff-1", paidAt, "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := gateway.UpdateOrderStatus(context.Background(), "o1", "paid", map[string]any{
		"payment_method": "cash",
		"cashier_id":     "staff-1",
		"paid_at":        paidAt,
		"drop_table":     "ignored",
	})
	assert.NoError(t, err)
}

func TestPostgresGateway_UpdateOrderStatusMissingOrder(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("ready", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := gateway.UpdateOrderStatus(context.Background(), "missing", "ready", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgresGateway_StartPreparationDeductsStock(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectQuery("SELECT mii.ingredient_id").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id", "sum"}).
			AddRow("flour", 0.4).
			AddRow("tomato", 2.0))
	mock.ExpectExec("UPDATE ingredients SET stock").
		WithArgs("flour", 0.4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE ingredients SET stock").
		WithArgs("tomato", 2.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders SET status = 'preparing'").
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, gateway.StartPreparation(context.Background(), "o1"))
}

func TestPostgresGateway_StartPreparationInsufficientStockRollsBack(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectQuery("SELECT mii.ingredient_id").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id", "sum"}).
			AddRow("flour", 100.0))
	// the guarded update touches no row when stock would go negative
	mock.ExpectExec("UPDATE ingredients SET stock").
		WithArgs("flour", 100.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := gateway.StartPreparation(context.Background(), "o1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "flour")
}

func TestPostgresGateway_StartPreparationIdempotentRepeat(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("preparing"))
	mock.ExpectCommit()

	assert.NoError(t, gateway.StartPreparation(context.Background(), "o1"))
}

func TestPostgresGateway_StartPreparationRejectsTerminalOrder(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
	mock.ExpectRollback()

	err := gateway.StartPreparation(context.Background(), "o1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paid")
}

func TestPostgresGateway_FetchActiveSessionNone(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectQuery("SELECT (.+) FROM cash_sessions").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "opened_by", "opened_at", "opening_amount", "comment", "status",
		}))

	session, err := gateway.FetchActiveSession(context.Background(), "b1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestPostgresGateway_OpenSessionConflict(t *testing.T) {
	gateway, mock := newGateway(t)

	// the guarded insert returns no row while a session is open
	mock.ExpectQuery("INSERT INTO cash_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := gateway.OpenSession(context.Background(), "b1", 100, "", "staff-1")
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)
}

func TestPostgresGateway_CloseSessionComputesDifference(t *testing.T) {
	gateway, mock := newGateway(t)
	openedAt := time.Now().Add(-8 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cash_sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "opened_by", "opened_at", "opening_amount", "status",
		}).AddRow("s1", "b1", "staff-1", openedAt, 100.0, "open"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(57.30))
	mock.ExpectExec("UPDATE cash_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counted := domain.CountedAmounts{Cash: 120, Card: 30}
	closed, err := gateway.CloseSession(context.Background(), "s1", counted, "evening", "staff-2")
	require.NoError(t, err)

	// expected 100 + 57.30, counted 150: drawer is 7.30 short
	assert.InDelta(t, -7.30, closed.Difference, 0.001)
	assert.Equal(t, domain.SessionClosed, closed.Status)
	assert.Equal(t, "staff-2", closed.ClosedBy)
	require.NotNil(t, closed.ClosedAt)
}

func TestPostgresGateway_CloseSessionAlreadyClosed(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cash_sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "opened_by", "opened_at", "opening_amount", "status",
		}).AddRow("s1", "b1", "staff-1", time.Now(), 100.0, "closed"))
	mock.ExpectRollback()

	_, err := gateway.CloseSession(context.Background(), "s1", domain.CountedAmounts{}, "", "staff-1")
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestPostgresGateway_InsertPaymentsWritesAllRecords(t *testing.T) {
	gateway, mock := newGateway(t)
	now := time.Now()

	records := []domain.PaymentRecord{
		{ID: "p1", SessionID: "s1", OrderID: "o1", Method: "cash", Amount: 30, CreatedAt: now},
		{ID: "p2", SessionID: "s1", OrderID: "o1", Method: "card", Amount: 27.30, CreatedAt: now},
	}

	mock.ExpectBegin()
	for _, rec := range records {
		mock.ExpectExec("INSERT INTO payments").
			WithArgs(rec.ID, rec.SessionID, rec.OrderID, rec.Method, rec.Amount, rec.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	assert.NoError(t, gateway.InsertPayments(context.Background(), records))
}

func TestPostgresGateway_ListPayments(t *testing.T) {
	gateway, mock := newGateway(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM payments").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "session_id", "order_id", "method", "amount", "created_at",
		}).
			AddRow("p1", "s1", "o1", "cash", 30.0, now).
			AddRow("p2", "s1", "o1", "card", 27.30, now))

	records, err := gateway.ListPayments(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cash", records[0].Method)
	assert.InDelta(t, 27.30, records[1].Amount, 0.001)
}

func TestPostgresGateway_StaffNameMissingIsEmpty(t *testing.T) {
	gateway, mock := newGateway(t)

	mock.ExpectQuery("SELECT name FROM staff").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	name, err := gateway.StaffName(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "", name)
}
