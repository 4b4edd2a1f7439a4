package repository

import (
	"context"
	"fmt"
	"time"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	AddLine(ctx context.Context, cartID, productID uuid.UUID, qty int) error
	SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error
	DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	ListLines(ctx context.Context, userID uuid.UUID) ([]*entity.CartLineDetail, error)
	Total(ctx context.Context, userID uuid.UUID) (float64, error)
	CountItems(ctx context.Context, userID uuid.UUID) (int, error)
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

// GetOrCreate returns the user's cart id, creating the cart lazily on
// first use.
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var cartID uuid.UUID

	query := `SELECT id FROM carts WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if err != pgx.ErrNoRows {
		r.log.Error("Failed to find cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return uuid.Nil, fmt.Errorf("find cart for user %s: %w", userID.String(), err)
	}

	cartID = uuid.New()
	now := time.Now()

	insert := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, cartID, userID, now, now); err != nil {
		r.log.Error("Failed to create cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return uuid.Nil, fmt.Errorf("create cart for user %s: %w", userID.String(), err)
	}

	// Re-read: a concurrent request may have won the insert.
	if err := r.db.QueryRow(ctx, query, userID).Scan(&cartID); err != nil {
		return uuid.Nil, fmt.Errorf("find cart for user %s: %w", userID.String(), err)
	}

	return cartID, nil
}

// AddLine inserts a new line or merges the quantity into an existing one.
// The cart line is locked and stock is re-read inside one transaction so
// two concurrent adds for the same user/product cannot race past the
// stock ceiling.
func (r *cartRepository) AddLine(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add line: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int
	hasLine := true
	err = tx.QueryRow(ctx,
		`SELECT quantity FROM cart_lines WHERE cart_id = $1 AND product_id = $2 FOR UPDATE`,
		cartID, productID,
	).Scan(&existing)
	if err == pgx.ErrNoRows {
		hasLine = false
		existing = 0
	} else if err != nil {
		r.log.Error("Failed to lock cart line",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("lock cart line: %w", err)
	}

	var stock int
	err = tx.QueryRow(ctx,
		`SELECT stock FROM products WHERE id = $1 AND is_active = true AND deleted_at IS NULL`,
		productID,
	).Scan(&stock)
	if err == pgx.ErrNoRows {
		return ErrProductNotFound
	}
	if err != nil {
		r.log.Error("Failed to read product stock",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("read stock for product %s: %w", productID.String(), err)
	}

	if !hasLine {
		if qty > stock {
			return ErrInsufficientStock
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO cart_lines (id, cart_id, product_id, quantity, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), cartID, productID, qty, time.Now(),
		)
	} else {
		if existing+qty > stock {
			return ErrInsufficientStockAdd
		}

		_, err = tx.Exec(ctx,
			`UPDATE cart_lines SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
			cartID, productID, existing+qty,
		)
	}
	if err != nil {
		r.log.Error("Failed to write cart line",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("write cart line: %w", err)
	}

	return tx.Commit(ctx)
}

// SetLineQuantity overwrites the line's quantity after re-validating stock.
// Updating a line that does not exist is still reported as success; callers
// rely on that looseness.
func (r *cartRepository) SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set quantity: %w", err)
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx,
		`SELECT stock FROM products WHERE id = $1 AND is_active = true AND deleted_at IS NULL`,
		productID,
	).Scan(&stock)
	if err == pgx.ErrNoRows {
		return ErrProductNotFound
	}
	if err != nil {
		r.log.Error("Failed to read product stock",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("read stock for product %s: %w", productID.String(), err)
	}

	if qty > stock {
		return ErrInsufficientStock
	}

	_, err = tx.Exec(ctx,
		`UPDATE cart_lines SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID, qty,
	)
	if err != nil {
		r.log.Error("Failed to update cart line quantity",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("update cart line quantity: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteLine removes the line. Deleting a line that is not there succeeds.
func (r *cartRepository) DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error {
	query := `DELETE FROM cart_lines WHERE cart_id = $1 AND product_id = $2`

	_, err := r.db.Exec(ctx, query, cartID, productID)
	if err != nil {
		r.log.Error("Failed to delete cart line",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("delete cart line: %w", err)
	}

	return nil
}

// Clear deletes every line in the user's cart.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM cart_lines
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("clear cart for user %s: %w", userID.String(), err)
	}

	return nil
}

// ListLines returns the cart joined with product, store and artisan display
// data, excluding inactive products, most recently added first.
func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]*entity.CartLineDetail, error) {
	query := `
		SELECT cl.product_id, p.name, p.description, p.price, p.stock, p.image_url,
		       cl.quantity, s.name AS store_name, u.name AS artisan_name, s.user_id,
		       (cl.quantity * p.price) AS subtotal
		FROM cart_lines cl
		INNER JOIN carts c ON cl.cart_id = c.id
		INNER JOIN products p ON cl.product_id = p.id
		INNER JOIN stores s ON p.store_id = s.id
		INNER JOIN users u ON s.user_id = u.id
		WHERE c.user_id = $1 AND p.is_active = true AND p.deleted_at IS NULL
		ORDER BY cl.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list cart lines",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list cart lines for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.CartLineDetail
	for rows.Next() {
		var line entity.CartLineDetail
		err := rows.Scan(
			&line.ProductID,
			&line.ProductName,
			&line.Description,
			&line.Price,
			&line.Stock,
			&line.ImageURL,
			&line.Quantity,
			&line.StoreName,
			&line.ArtisanName,
			&line.StoreUserID,
			&line.Subtotal,
		)
		if err != nil {
			r.log.Error("Failed to scan cart line row", zap.Error(err))
			return nil, fmt.Errorf("scan cart line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, nil
}

// Total sums quantity x price over active-product lines. Empty cart is 0.
func (r *cartRepository) Total(ctx context.Context, userID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(cl.quantity * p.price), 0)
		FROM cart_lines cl
		INNER JOIN carts c ON cl.cart_id = c.id
		INNER JOIN products p ON cl.product_id = p.id
		WHERE c.user_id = $1 AND p.is_active = true AND p.deleted_at IS NULL
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to calculate cart total",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("calculate cart total for user %s: %w", userID.String(), err)
	}

	return total, nil
}

// CountItems sums quantities over active-product lines. Empty cart is 0.
func (r *cartRepository) CountItems(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(cl.quantity), 0)
		FROM cart_lines cl
		INNER JOIN carts c ON cl.cart_id = c.id
		INNER JOIN products p ON cl.product_id = p.id
		WHERE c.user_id = $1 AND p.is_active = true AND p.deleted_at IS NULL
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count cart items",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count cart items for user %s: %w", userID.String(), err)
	}

	return count, nil
}
