package adaptor

import (
	"artisan-marketplace/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Product      *ProductHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Order        *OrderHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Product:      NewProductHandler(service.Product, log),
		Cart:         NewCartHandler(service.Cart, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
		Order:        NewOrderHandler(service.Order, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
