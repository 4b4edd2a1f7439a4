package usecase

import (
	"context"
	"fmt"

	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) ([]response.NotificationResponse, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	log              *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		log:              log,
	}
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) ([]response.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list notifications")
	}

	data := make([]response.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, response.NotificationToResponse(n))
	}
	return data, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count unread notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to count notifications")
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		s.log.Error("Failed to mark notification read", zap.Error(err),
			zap.String("notification_id", id.String()),
			zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to mark notification read")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		s.log.Error("Failed to mark notifications read", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to mark notifications read")
	}
	return nil
}
