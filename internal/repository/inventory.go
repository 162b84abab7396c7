package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/go_pos/internal/domain"
)

// decrementIfAvailable tries the identifier resolution strategies in their
// fixed priority order: human-facing product code, then the internal numeric
// key when the identifier is purely numeric, then the free-form external ref.
// Each attempt is a single conditional UPDATE; stock is never read first and
// written back. Returns the number of rows matched (0 or 1).
func decrementIfAvailable(ctx context.Context, tx *sql.Tx, identifier string, qty int) (int64, error) {
	byCode := `UPDATE products SET stock = stock - $1 WHERE product_code = $2 AND stock >= $1`
	affected, err := execAffected(ctx, tx, byCode, qty, identifier)
	if err != nil {
		return 0, fmt.Errorf("update stock by product_code: %w", err)
	}
	if affected > 0 {
		return affected, nil
	}

	if numericID, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
		byID := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
		affected, err = execAffected(ctx, tx, byID, qty, numericID)
		if err != nil {
			return 0, fmt.Errorf("update stock by id: %w", err)
		}
		if affected > 0 {
			return affected, nil
		}
	}

	byRef := `UPDATE products SET stock = stock - $1 WHERE external_ref = $2 AND stock >= $1`
	affected, err = execAffected(ctx, tx, byRef, qty, identifier)
	if err != nil {
		return 0, fmt.Errorf("update stock by external_ref: %w", err)
	}
	return affected, nil
}

func execAffected(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// lookupProductName resolves the display name for the sale-time snapshot using
// the same strategy order as the decrement. Returns "" on a miss so the caller
// can fall back to the client-supplied name.
func lookupProductName(ctx context.Context, tx *sql.Tx, identifier string) (string, error) {
	var name string
	err := tx.QueryRowContext(ctx,
		`SELECT product_name FROM products WHERE product_code = $1`, identifier).Scan(&name)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	if numericID, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
		err = tx.QueryRowContext(ctx,
			`SELECT product_name FROM products WHERE id = $1`, numericID).Scan(&name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}

	err = tx.QueryRowContext(ctx,
		`SELECT product_name FROM products WHERE external_ref = $1`, identifier).Scan(&name)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	return "", nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT p.id, COALESCE(p.product_code, ''), p.external_ref, p.product_name, p.price, p.stock, p.date_added,
	            c.id AS category_internal_id,
	            CASE WHEN c.id IS NULL THEN NULL ELSE 'C' || LPAD(COALESCE(c.category_id, 0)::text, 3, '0') END AS category_code,
	            c.category_name
	          FROM products p
	          LEFT JOIN categories c ON p.category_internal_id = c.id
	          ORDER BY p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var externalRef, categoryCode, categoryName sql.NullString
		var categoryID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.ProductCode, &externalRef, &p.Name, &p.Price, &p.Stock, &p.DateAdded,
			&categoryID, &categoryCode, &categoryName); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		if externalRef.Valid {
			p.ExternalRef = &externalRef.String
		}
		if categoryID.Valid {
			p.CategoryID = &categoryID.Int64
		}
		if categoryCode.Valid {
			p.CategoryCode = &categoryCode.String
		}
		if categoryName.Valid {
			p.CategoryName = &categoryName.String
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) LowStockRows(ctx context.Context, start, end *time.Time) ([]LowStockRow, error) {
	dateFilter := ""
	var args []interface{}
	if start != nil && end != nil {
		dateFilter = " AND t.date_time BETWEEN $1 AND $2"
		args = append(args, *start, *end)
	}

	query := fmt.Sprintf(`SELECT
	            COALESCE(p.product_code, '') AS product_id,
	            p.product_name,
	            COALESCE(c.category_name, 'Uncategorized') AS category,
	            COALESCE(p.stock, 0) AS current_stock,
	            COALESCE((
	              SELECT SUM(ti.quantity) FROM transaction_items ti
	              JOIN transactions t ON ti.transaction_id = t.id
	              WHERE ti.product_id = p.product_code%s
	            ), 0) AS sold_in_range
	          FROM products p
	          LEFT JOIN categories c ON c.id = p.category_internal_id
	          ORDER BY current_stock ASC, sold_in_range DESC
	          LIMIT 1000`, dateFilter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query low stock rows: %w", err)
	}
	defer rows.Close()

	var result []LowStockRow
	for rows.Next() {
		var row LowStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Category, &row.CurrentStock, &row.SoldInRange); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx,
		`SELECT employee_id, username, full_name FROM employees WHERE employee_id = $1`, id).
		Scan(&e.ID, &e.Username, &e.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee by id: %w", err)
	}
	return &e, nil
}

func (r *Repository) GetEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx,
		`SELECT employee_id, username, full_name FROM employees WHERE username = $1`, username).
		Scan(&e.ID, &e.Username, &e.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee by username: %w", err)
	}
	return &e, nil
}
