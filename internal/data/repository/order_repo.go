package repository

import (
	"context"
	"fmt"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order, lines []*entity.OrderLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderLine, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	ContainsSellerProducts(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// Create persists the order header and its lines in one transaction and
// decrements each product's stock with a conditional update. If any line
// insert or stock guard fails the whole order rolls back; no partial order
// is ever visible.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order, lines []*entity.OrderLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, user_id, status, payment_method, total,
		                    shipping_address, shipping_phone, notes, transaction_id,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Status,
		order.PaymentMethod,
		order.Total,
		order.ShippingAddress,
		order.ShippingPhone,
		order.Notes,
		order.TransactionID,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert order header",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("insert order %s: %w", order.OrderNumber, err)
	}

	for _, line := range lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, product_name, quantity,
			                         unit_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID,
			line.OrderID,
			line.ProductID,
			line.ProductName,
			line.Quantity,
			line.UnitPrice,
			line.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert order line",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", line.ProductID.String()),
			)
			return fmt.Errorf("insert order line for product %s: %w", line.ProductID.String(), err)
		}

		// Atomic conditional decrement: zero rows affected means the stock
		// was consumed by a concurrent order, so the whole order aborts.
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW()
			 WHERE id = $1 AND stock >= $2`,
			line.ProductID, line.Quantity,
		)
		if err != nil {
			r.log.Error("Failed to decrement product stock",
				zap.Error(err),
				zap.String("product_id", line.ProductID.String()),
			)
			return fmt.Errorf("decrement stock for product %s: %w", line.ProductID.String(), err)
		}
		if tag.RowsAffected() == 0 {
			r.log.Warn("Order aborted: insufficient stock at commit time",
				zap.String("order_number", order.OrderNumber),
				zap.String("product_id", line.ProductID.String()),
				zap.Int("quantity", line.Quantity),
			)
			return fmt.Errorf("product %s: %w", line.ProductName, ErrInsufficientStock)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, order_number, user_id, status, payment_method, total,
		       shipping_address, shipping_phone, notes, transaction_id,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.Status,
		&order.PaymentMethod,
		&order.Total,
		&order.ShippingAddress,
		&order.ShippingPhone,
		&order.Notes,
		&order.TransactionID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

func (r *orderRepository) FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, created_at
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order lines",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find lines for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.OrderLine
	for rows.Next() {
		var line entity.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.ProductName,
			&line.Quantity,
			&line.UnitPrice,
			&line.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order line row", zap.Error(err))
			return nil, fmt.Errorf("scan order line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, order_number, user_id, status, payment_method, total,
		       shipping_address, shipping_phone, notes, transaction_id,
		       created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.UserID,
			&order.Status,
			&order.PaymentMethod,
			&order.Total,
			&order.ShippingAddress,
			&order.ShippingPhone,
			&order.Notes,
			&order.TransactionID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count orders by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count orders by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// ContainsSellerProducts reports whether any line of the order belongs to a
// product sold through a store owned by sellerID.
func (r *orderRepository) ContainsSellerProducts(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM order_lines ol
			JOIN products p ON p.id = ol.product_id
			JOIN stores s ON s.id = p.store_id
			WHERE ol.order_id = $1 AND s.user_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, orderID, sellerID).Scan(&exists); err != nil {
		r.log.Error("Failed to check seller products in order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("seller_id", sellerID.String()),
		)
		return false, fmt.Errorf("check seller %s products in order %s: %w", sellerID.String(), orderID.String(), err)
	}

	return exists, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, orderID, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order %s status to %s: %w", orderID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID.String())
	}

	return nil
}
