package usecase

import (
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Product      ProductService
	Cart         CartService
	Checkout     CheckoutService
	Order        OrderService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	cart := NewCartService(repo.Cart, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, log),
		Product:      NewProductService(repo, log),
		Cart:         cart,
		Checkout:     NewCheckoutService(repo, cart, log),
		Order:        NewOrderService(repo.Order, repo.User, log),
		Notification: NewNotificationService(repo.Notification, log),
	}
}
