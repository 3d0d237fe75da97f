package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"floorsync/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresGateway implements every remote operation the core invokes against
// the shared data service.
type PostgresGateway struct {
	DB *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{DB: db}
}

// ListOrders returns the active order set for a branch: everything created
// inside the lookback window plus anything still in a non-terminal state,
// newest first. An empty branch selects all branches.
func (g *PostgresGateway) ListOrders(ctx context.Context, branchID string, lookbackDays int) ([]domain.Order, error) {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}

	rows, err := g.DB.QueryContext(ctx, `
		SELECT id, branch_id, table_number, status, total, waiter_id, created_at,
		       COALESCE(payment_method, ''), COALESCE(cashier_id, ''), paid_at
		FROM orders
		WHERE ($1 = '' OR branch_id = $1)
		  AND (created_at >= NOW() - ($2 * INTERVAL '1 day')
		       OR status NOT IN ('paid', 'cancelled'))
		ORDER BY created_at DESC
	`, branchID, lookbackDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.BranchID, &o.TableNumber, &o.Status, &o.Total,
			&o.WaiterID, &o.CreatedAt, &o.PaymentMethod, &o.CashierID, &o.PaidAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := g.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, quantity, price, COALESCE(note, '')
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.Price, &item.Note); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// orderExtraColumns whitelists the settable columns of update_order_status.
var orderExtraColumns = map[string]bool{
	"payment_method": true,
	"cashier_id":     true,
	"paid_at":        true,
	"ready_at":       true,
}

// UpdateOrderStatus sets a new lifecycle status plus whitelisted extra fields.
func (g *PostgresGateway) UpdateOrderStatus(ctx context.Context, orderID, status string, extra map[string]any) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW()`
	args := []any{status}
	for _, col := range []string{"payment_method", "cashier_id", "paid_at", "ready_at"} {
		v, ok := extra[col]
		if !ok || !orderExtraColumns[col] {
			continue
		}
		args = append(args, v)
		query += fmt.Sprintf(", %s = $%d", col, len(args))
	}
	args = append(args, orderID)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	res, err := g.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}
	return nil
}

// StartPreparation advances an order to preparing and deducts ingredient
// stock in one transaction. Any ingredient that would go negative aborts the
// whole unit with ErrInsufficientStock.
func (g *PostgresGateway) StartPreparation(ctx context.Context, orderID string) error {
	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	if err := tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status); err != nil {
		return err
	}
	switch status {
	case domain.StatusOpen, domain.StatusPending:
		// ok to start
	case domain.StatusPreparing:
		// idempotent repeat, another terminal got there first
		return tx.Commit()
	default:
		return fmt.Errorf("order %s is %s, cannot start preparation", orderID, status)
	}

	needRows, err := tx.QueryContext(ctx, `
		SELECT mii.ingredient_id, SUM(mii.quantity * oi.quantity)
		FROM order_items oi
		JOIN menu_item_ingredients mii ON mii.menu_item_id = oi.menu_item_id
		WHERE oi.order_id = $1
		GROUP BY mii.ingredient_id
	`, orderID)
	if err != nil {
		return err
	}
	type need struct {
		ingredientID string
		amount       float64
	}
	var needs []need
	for needRows.Next() {
		var n need
		if err := needRows.Scan(&n.ingredientID, &n.amount); err != nil {
			needRows.Close()
			return err
		}
		needs = append(needs, n)
	}
	needRows.Close()
	if err := needRows.Err(); err != nil {
		return err
	}

	for _, n := range needs {
		res, err := tx.ExecContext(ctx, `
			UPDATE ingredients SET stock = stock - $2
			WHERE id = $1 AND stock >= $2
		`, n.ingredientID, n.amount)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return fmt.Errorf("ingredient %s: %w", n.ingredientID, domain.ErrInsufficientStock)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = 'preparing', updated_at = NOW() WHERE id = $1
	`, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

// FetchActiveSession returns the single open session for a branch, or nil.
func (g *PostgresGateway) FetchActiveSession(ctx context.Context, branchID string) (*domain.CashSession, error) {
	var s domain.CashSession
	err := g.DB.QueryRowContext(ctx, `
		SELECT id, branch_id, opened_by, opened_at, opening_amount, COALESCE(comment, ''), status
		FROM cash_sessions
		WHERE ($1 = '' OR branch_id = $1) AND status = 'open'
		ORDER BY opened_at DESC
		LIMIT 1
	`, branchID).Scan(&s.ID, &s.BranchID, &s.OpenedBy, &s.OpenedAt,
		&s.OpeningAmount, &s.Comment, &s.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// OpenSession creates a session unless one is already open for the branch.
func (g *PostgresGateway) OpenSession(ctx context.Context, branchID string, openingAmount float64, comment, staffID string) (string, error) {
	id := uuid.NewString()
	err := g.DB.QueryRowContext(ctx, `
		INSERT INTO cash_sessions (id, branch_id, opened_by, opening_amount, comment, status, opened_at)
		SELECT $1, $2, $3, $4, $5, 'open', NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM cash_sessions WHERE branch_id = $2 AND status = 'open'
		)
		RETURNING id
	`, id, branchID, staffID, openingAmount, comment).Scan(&id)
	if err == sql.ErrNoRows {
		return "", domain.ErrSessionAlreadyOpen
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// CloseSession closes an open session and computes the counted-vs-expected
// difference (opening amount plus recorded payments against the drawer count).
func (g *PostgresGateway) CloseSession(ctx context.Context, sessionID string, counted domain.CountedAmounts, comment, staffID string) (*domain.CashSession, error) {
	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var s domain.CashSession
	err = tx.QueryRowContext(ctx, `
		SELECT id, branch_id, opened_by, opened_at, opening_amount, status
		FROM cash_sessions WHERE id = $1 FOR UPDATE
	`, sessionID).Scan(&s.ID, &s.BranchID, &s.OpenedBy, &s.OpenedAt, &s.OpeningAmount, &s.Status)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoOpenSession
	}
	if err != nil {
		return nil, err
	}
	if s.Status != domain.SessionOpen {
		return nil, domain.ErrNoOpenSession
	}

	var recorded float64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payments WHERE session_id = $1
	`, sessionID).Scan(&recorded); err != nil {
		return nil, err
	}

	expected := s.OpeningAmount + recorded
	difference := counted.Total() - expected

	closedAt := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE cash_sessions
		SET status = 'closed', closed_by = $2, closed_at = $3,
		    counted_cash = $4, counted_card = $5, counted_transfer = $6, counted_other = $7,
		    closing_comment = $8, difference = $9
		WHERE id = $1
	`, sessionID, staffID, closedAt, counted.Cash, counted.Card,
		counted.Transfer, counted.Other, comment, difference); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.Status = domain.SessionClosed
	s.ClosedBy = staffID
	s.ClosedAt = &closedAt
	s.CountedCash = counted.Cash
	s.CountedCard = counted.Card
	s.CountedTransfer = counted.Transfer
	s.CountedOther = counted.Other
	s.Difference = difference
	return &s, nil
}

// InsertPayments writes a settlement's payment records in one transaction.
func (g *PostgresGateway) InsertPayments(ctx context.Context, records []domain.PaymentRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO payments (id, session_id, order_id, method, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.ID, rec.SessionID, rec.OrderID, rec.Method, rec.Amount, rec.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (g *PostgresGateway) ListPayments(ctx context.Context, sessionID string) ([]domain.PaymentRecord, error) {
	rows, err := g.DB.QueryContext(ctx, `
		SELECT id, session_id, order_id, method, amount, created_at
		FROM payments
		WHERE session_id = $1
		ORDER BY created_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var rec domain.PaymentRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.OrderID,
			&rec.Method, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// StaffName resolves a staff id to a display name; missing ids return "".
func (g *PostgresGateway) StaffName(ctx context.Context, staffID string) (string, error) {
	var name string
	err := g.DB.QueryRowContext(ctx,
		`SELECT name FROM staff WHERE id = $1`, staffID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}

// MenuItemName resolves a menu item id to its display name; missing ids return "".
func (g *PostgresGateway) MenuItemName(ctx context.Context, menuItemID string) (string, error) {
	var name string
	err := g.DB.QueryRowContext(ctx,
		`SELECT name FROM menu_items WHERE id = $1`, menuItemID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}
