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

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
}

type storeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStoreRepository(db database.PgxIface, log *zap.Logger) StoreRepository {
	return &storeRepository{
		db:  db,
		log: log.With(zap.String("repository", "store")),
	}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		store.ID,
		store.UserID,
		store.Name,
		store.Description,
		store.CreatedAt,
		store.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create store",
			zap.Error(err),
			zap.String("user_id", store.UserID.String()),
			zap.String("name", store.Name),
		)
		return fmt.Errorf("create store for user %s: %w", store.UserID.String(), err)
	}

	return nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at, deleted_at
		FROM stores
		WHERE id = $1 AND deleted_at IS NULL
	`

	var store entity.Store
	err := r.db.QueryRow(ctx, query, id).Scan(
		&store.ID,
		&store.UserID,
		&store.Name,
		&store.Description,
		&store.CreatedAt,
		&store.UpdatedAt,
		&store.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find store by ID",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return nil, fmt.Errorf("find store by ID %s: %w", id.String(), err)
	}

	return &store, nil
}

func (r *storeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at, deleted_at
		FROM stores
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	var store entity.Store
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&store.ID,
		&store.UserID,
		&store.Name,
		&store.Description,
		&store.CreatedAt,
		&store.UpdatedAt,
		&store.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find store by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find store by user ID %s: %w", userID.String(), err)
	}

	return &store, nil
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Description,
		store.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update store",
			zap.Error(err),
			zap.String("store_id", store.ID.String()),
		)
		return fmt.Errorf("update store %s: %w", store.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", store.ID.String())
	}

	return nil
}
