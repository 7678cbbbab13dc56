package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de la orden. El constraint único sobre
// orders.code convierte la carrera de consecutivos en ErrCodeConflict,
// que el caso de uso reintenta con un código nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, code, customer_id, user_id, ordered_at, status, subtotal, discount_amount, tax_amount, total_amount, paid_amount, payment_method, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Code, nullIfEmpty(order.CustomerID), order.UserID,
		order.OrderedAt, order.Status,
		order.Subtotal, order.DiscountAmount, order.TaxAmount, order.TotalAmount, order.PaidAmount,
		nullIfEmpty(order.PaymentMethod), nullIfEmpty(order.Notes),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la orden.
func (r *OrderRepo) CreateLine(line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, discount_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.ProductID, line.Quantity,
		line.UnitPrice, line.DiscountAmount, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, code, customer_id, user_id, ordered_at, status, subtotal, discount_amount, tax_amount, total_amount, paid_amount, payment_method, notes, created_at, updated_at
		FROM orders WHERE id = $1`
	order, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// GetLinesByOrderID obtiene las líneas de una orden.
func (r *OrderRepo) GetLinesByOrderID(orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, discount_amount, line_total
		FROM order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity,
			&l.UnitPrice, &l.DiscountAmount, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// MaxCode devuelve el código máximo de la serie por sufijo numérico.
// El predicado regex excluye filas históricas con sufijo corrupto, y ordenar
// por (longitud, código) hace que DH100000 quede después de DH99999.
func (r *OrderRepo) MaxCode(prefix string) (string, error) {
	query := `
		SELECT code FROM orders
		WHERE code ~ ('^' || $1 || '[0-9]+$')
		ORDER BY length(code) DESC, code DESC
		LIMIT 1`
	var code string
	err := r.q.QueryRow(context.Background(), query, prefix).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max order code: %w", err)
	}
	return code, nil
}

// UpdateStatus muta el estado del ciclo de vida de la orden.
func (r *OrderRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDateRange lista órdenes en un rango de fechas con paginación.
func (r *OrderRepo) ListByDateRange(from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, code, customer_id, user_id, ordered_at, status, subtotal, discount_amount, tax_amount, total_amount, paid_amount, payment_method, notes, created_at, updated_at
		FROM orders WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND ordered_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND ordered_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY ordered_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var customerID, paymentMethod, notes *string
	err := row.Scan(
		&o.ID, &o.Code, &customerID, &o.UserID, &o.OrderedAt, &o.Status,
		&o.Subtotal, &o.DiscountAmount, &o.TaxAmount, &o.TotalAmount, &o.PaidAmount,
		&paymentMethod, &notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		o.CustomerID = *customerID
	}
	if paymentMethod != nil {
		o.PaymentMethod = *paymentMethod
	}
	if notes != nil {
		o.Notes = *notes
	}
	return &o, nil
}
