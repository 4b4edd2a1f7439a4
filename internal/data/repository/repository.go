package repository

import (
	"artisan-marketplace/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Store        StoreRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Store:        NewStoreRepository(db, log),
		Product:      NewProductRepository(db, log),
		Cart:         NewCartRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
