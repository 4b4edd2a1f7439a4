package usecase

import (
	"context"
	"fmt"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"
	"artisan-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*response.OrderResponse, error)
	UpdateStatus(ctx context.Context, callerID, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	log       *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, log *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		log:       log,
	}
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list orders")
	}

	total, err := s.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list orders")
	}

	data := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, response.OrderToResponse(order, nil))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *orderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("failed to find order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	// Buyers only see their own orders
	if order.UserID != userID {
		s.log.Warn("Order access denied",
			zap.String("order_id", orderID.String()),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("order not found")
	}

	lines, err := s.orderRepo.FindLinesByOrderID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to load order lines", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("failed to load order")
	}

	resp := response.OrderToResponse(order, lines)
	return &resp, nil
}

// UpdateStatus changes an order's status. Admins may update any order;
// artisans only orders that contain products from their own store.
func (s *orderService) UpdateStatus(ctx context.Context, callerID, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update order status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID.String()))
		return fmt.Errorf("failed to find order")
	}
	if order == nil {
		return fmt.Errorf("order not found")
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		s.log.Error("Failed to find caller", zap.Error(err), zap.String("user_id", callerID.String()))
		return fmt.Errorf("failed to update order status")
	}
	if caller == nil {
		return fmt.Errorf("order does not include your products")
	}

	if caller.Role != entity.RoleAdmin {
		included, err := s.orderRepo.ContainsSellerProducts(ctx, orderID, callerID)
		if err != nil {
			s.log.Error("Failed to check order ownership",
				zap.Error(err),
				zap.String("order_id", orderID.String()),
				zap.String("user_id", callerID.String()))
			return fmt.Errorf("failed to update order status")
		}
		if !included {
			s.log.Warn("Order status update denied",
				zap.String("order_id", orderID.String()),
				zap.String("user_id", callerID.String()))
			return fmt.Errorf("order does not include your products")
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatus(req.Status)); err != nil {
		s.log.Error("Failed to update order status", zap.Error(err), zap.String("order_id", orderID.String()))
		return fmt.Errorf("failed to update order status")
	}

	s.log.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", req.Status))
	return nil
}
