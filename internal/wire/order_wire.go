package wire

import (
	"artisan-marketplace/internal/adaptor"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/middleware"
	"artisan-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/pedidos", orderHandler.ListByUser)
		r.Get("/api/pedidos/{id}", orderHandler.GetByID)
	})

	// ==================== STAFF ROUTES ====================
	// Admins may update any order; artisans only orders that
	// include their products, enforced in the service
	r.Route("/api/pedidos/{id}/estado", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.ArtisanOrAdmin(repo.User, log))

		r.Put("/", orderHandler.UpdateStatus)
	})
}
