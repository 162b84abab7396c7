package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/lib/pq"
)

func (r *Repository) SaveTransaction(ctx context.Context, rec *CheckoutRecord) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var numericID int64
	headerQuery := `INSERT INTO transactions (txn_id, employee_id, date_time, subtotal, tax, total)
	          VALUES ($1, $2, NOW(), $3, $4, $5) RETURNING id`
	insertErr := tx.QueryRowContext(ctx, headerQuery,
		rec.TxnID,
		rec.EmployeeID,
		rec.Subtotal,
		rec.Tax,
		rec.Total,
	).Scan(&numericID)
	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateTransaction
		}
		return 0, fmt.Errorf("insert transaction header: %w", insertErr)
	}

	itemQuery := `INSERT INTO transaction_items (transaction_id, product_id, product_name, quantity, price, subtotal)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	// Lines are applied in input order. The conditional decrement is the sole
	// oversell guard: zero rows affected aborts the whole scope.
	for _, line := range rec.Lines {
		name := line.Name
		if resolved, lookupErr := lookupProductName(ctx, tx, line.Identifier); lookupErr != nil {
			return 0, fmt.Errorf("resolve product name for %q: %w", line.Identifier, lookupErr)
		} else if resolved != "" {
			name = resolved
		}

		if _, e := tx.ExecContext(ctx, itemQuery,
			numericID, line.Identifier, name, line.Quantity, line.Price, line.Subtotal); e != nil {
			return 0, fmt.Errorf("insert transaction item: %w", e)
		}

		matched, decErr := decrementIfAvailable(ctx, tx, line.Identifier, line.Quantity)
		if decErr != nil {
			return 0, fmt.Errorf("decrement stock for %q: %w", line.Identifier, decErr)
		}
		if matched == 0 {
			return 0, &InsufficientStockError{Identifier: line.Identifier, Requested: line.Quantity}
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return 0, fmt.Errorf("commit checkout: %w", commitErr)
	}
	committed = true
	return numericID, nil
}

func (r *Repository) ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.TransactionSummary, error) {
	query := `SELECT t.txn_id, t.date_time, COALESCE(t.total, t.subtotal, 0) AS total_amount, e.full_name
	          FROM transactions t
	          LEFT JOIN employees e ON e.employee_id = t.employee_id`

	var args []interface{}
	where := ""
	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		where = fmt.Sprintf(" WHERE t.date_time::date = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		if where == "" {
			where = fmt.Sprintf(" WHERE t.employee_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND t.employee_id = $%d", len(args))
		}
	}
	query += where + " ORDER BY t.date_time DESC LIMIT 1000"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.TransactionSummary
	for rows.Next() {
		var s domain.TransactionSummary
		var name sql.NullString
		if err := rows.Scan(&s.TxnID, &s.DateTime, &s.TotalAmount, &name); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if name.Valid {
			s.EmployeeName = &name.String
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}

func (r *Repository) GetTransactionDetail(ctx context.Context, id string) (*domain.Transaction, error) {
	t, err := r.findTransactionHeader(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.EmployeeID != nil {
		var name string
		err := r.db.QueryRowContext(ctx,
			`SELECT full_name FROM employees WHERE employee_id = $1`, *t.EmployeeID).Scan(&name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("query employee name: %w", err)
		}
		if err == nil {
			t.EmployeeName = &name
		}
	}

	// Live product name wins over the sale-time snapshot when the product
	// still exists; the snapshot keeps deleted products readable.
	itemsQuery := `SELECT ti.id, ti.transaction_id, ti.product_id,
	                 COALESCE(p.product_name, ti.product_name, '') AS product_name,
	                 ti.quantity, ti.price, ti.subtotal
	          FROM transaction_items ti
	          LEFT JOIN products p ON ti.product_id = p.product_code
	          WHERE ti.transaction_id = $1
	          ORDER BY ti.id`
	rows, err := r.db.QueryContext(ctx, itemsQuery, t.ID)
	if err != nil {
		return nil, fmt.Errorf("query transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return t, nil
}

func (r *Repository) findTransactionHeader(ctx context.Context, id string) (*domain.Transaction, error) {
	headerQuery := `SELECT id, txn_id, employee_id, date_time, subtotal, tax, total
	          FROM transactions WHERE txn_id = $1`

	t, err := r.scanTransactionHeader(r.db.QueryRowContext(ctx, headerQuery, id))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query transaction by txn_id: %w", err)
	}

	if numericID, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
		byIDQuery := `SELECT id, txn_id, employee_id, date_time, subtotal, tax, total
	          FROM transactions WHERE id = $1`
		t, err = r.scanTransactionHeader(r.db.QueryRowContext(ctx, byIDQuery, numericID))
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("query transaction by id: %w", err)
		}
	}
	return nil, ErrTransactionNotFound
}

func (r *Repository) scanTransactionHeader(row *sql.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var employeeID sql.NullInt64
	if err := row.Scan(&t.ID, &t.TxnID, &employeeID, &t.DateTime, &t.Subtotal, &t.Tax, &t.Total); err != nil {
		return nil, err
	}
	if employeeID.Valid {
		t.EmployeeID = &employeeID.Int64
	}
	return &t, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	t, err := r.findTransactionHeader(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Items first, header second: the items reference the header row.
	if _, e := tx.ExecContext(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, t.ID); e != nil {
		return fmt.Errorf("delete transaction items: %w", e)
	}
	if _, e := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, t.ID); e != nil {
		return fmt.Errorf("delete transaction header: %w", e)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit delete: %w", commitErr)
	}
	committed = true
	return nil
}
