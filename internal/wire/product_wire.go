package wire

import (
	"artisan-marketplace/internal/adaptor"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/middleware"
	"artisan-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Catalog browsing is open to everyone
	r.Get("/api/productos", productHandler.ListCatalog)
	r.Get("/api/productos/{id}", productHandler.GetByID)

	// ==================== ARTISAN ROUTES ====================
	r.Route("/api/artesano/productos", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Artisan(repo.User, log))

		r.Get("/", productHandler.ListOwn)
		r.Post("/", productHandler.Create)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Deactivate)
	})
}
