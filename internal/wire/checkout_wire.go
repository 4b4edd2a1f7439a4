package wire

import (
	"artisan-marketplace/internal/adaptor"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/middleware"
	"artisan-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Same envelope contract as the cart: unauthenticated requests get a
	// login prompt with HTTP 200, not a 401.
	r.With(middleware.OptionalSession(repo.Session, log)).
		Post("/checkout/procesar", checkoutHandler.Process)
}
