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

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.ProductListing, error)
	FindAllActive(ctx context.Context, limit, offset int) ([]*entity.ProductListing, error)
	CountActive(ctx context.Context) (int64, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, store_id, name, description, price, stock,
		                      image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.StoreID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("store_id", product.StoreID.String()),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `
		SELECT id, store_id, name, description, price, stock, image_url, is_active,
		       created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.StoreID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.ImageURL,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return &product, nil
}

// FindActiveByID returns the product joined with store and artisan display
// data; nil when missing or inactive.
func (r *productRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.ProductListing, error) {
	query := `
		SELECT p.id, p.store_id, p.name, p.description, p.price, p.stock, p.image_url,
		       p.is_active, p.created_at, p.updated_at,
		       s.name AS store_name, u.name AS artisan_name
		FROM products p
		INNER JOIN stores s ON p.store_id = s.id
		INNER JOIN users u ON s.user_id = u.id
		WHERE p.id = $1 AND p.is_active = true AND p.deleted_at IS NULL
	`

	var listing entity.ProductListing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.StoreID,
		&listing.Name,
		&listing.Description,
		&listing.Price,
		&listing.Stock,
		&listing.ImageURL,
		&listing.IsActive,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.StoreName,
		&listing.ArtisanName,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find active product %s: %w", id.String(), err)
	}

	return &listing, nil
}

func (r *productRepository) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.ProductListing, error) {
	query := `
		SELECT p.id, p.store_id, p.name, p.description, p.price, p.stock, p.image_url,
		       p.is_active, p.created_at, p.updated_at,
		       s.name AS store_name, u.name AS artisan_name
		FROM products p
		INNER JOIN stores s ON p.store_id = s.id
		INNER JOIN users u ON s.user_id = u.id
		WHERE p.is_active = true AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list active products", zap.Error(err))
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var listings []*entity.ProductListing
	for rows.Next() {
		var listing entity.ProductListing
		err := rows.Scan(
			&listing.ID,
			&listing.StoreID,
			&listing.Name,
			&listing.Description,
			&listing.Price,
			&listing.Stock,
			&listing.ImageURL,
			&listing.IsActive,
			&listing.CreatedAt,
			&listing.UpdatedAt,
			&listing.StoreName,
			&listing.ArtisanName,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE is_active = true AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count active products", zap.Error(err))
		return 0, fmt.Errorf("count active products: %w", err)
	}

	return count, nil
}

func (r *productRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error) {
	query := `
		SELECT id, store_id, name, description, price, stock, image_url, is_active,
		       created_at, updated_at, deleted_at
		FROM products
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		r.log.Error("Failed to find products by store ID",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find products by store ID %s: %w", storeID.String(), err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.StoreID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.ImageURL,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
			&product.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    image_url = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.IsActive,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

// Deactivate hides the product from the catalog without deleting it;
// existing order lines keep their snapshot.
func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("deactivate product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	r.log.Info("Product deactivated", zap.String("product_id", id.String()))
	return nil
}
