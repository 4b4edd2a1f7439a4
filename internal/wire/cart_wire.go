package wire

import (
	"artisan-marketplace/internal/adaptor"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/middleware"
	"artisan-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// The cart endpoints never reject with 401: the session middleware only
	// populates the context, and the handlers answer unauthenticated
	// requests with a login prompt inside the envelope.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSession(repo.Session, log))

		r.Get("/carrito", cartHandler.View)
		r.Post("/carrito/agregar", cartHandler.Add)
		r.Post("/carrito/actualizar", cartHandler.Update)
		r.Post("/carrito/eliminar", cartHandler.Remove)
	})
}
