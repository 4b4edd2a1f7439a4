package wire

import (
	"artisan-marketplace/internal/adaptor"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/pkg/middleware"
	"artisan-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/notificaciones", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", notificationHandler.ListByUser)
		r.Get("/no-leidas", notificationHandler.CountUnread)
		r.Put("/leidas", notificationHandler.MarkAllRead)
		r.Put("/{id}/leida", notificationHandler.MarkRead)
	})
}
