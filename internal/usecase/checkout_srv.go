package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"
	"artisan-marketplace/internal/payment"
	"artisan-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgMissingFields  = "Faltan datos requeridos"
	MsgOrderCreated   = "Pedido creado exitosamente"
	MsgOrderFailed    = "Error al procesar el pedido"
	MsgCheckoutFailed = "Error al procesar el checkout"
)

type CheckoutService interface {
	Process(ctx context.Context, userID uuid.UUID, req *request.ProcessCheckoutRequest) (*response.CheckoutResponse, error)
}

type checkoutService struct {
	repo *repository.Repository // cart, order, user and notification repos
	cart CartService
	log  *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, cart CartService, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo: repo,
		cart: cart,
		log:  log,
	}
}

// Process runs the whole checkout: cart validation, payment, order
// persistence, then cart cleanup and notifications. Logical failures
// come back inside the envelope with Exitoso=false; the error return is
// reserved for infrastructure faults.
func (s *checkoutService) Process(ctx context.Context, userID uuid.UUID, req *request.ProcessCheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Required fields
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return checkoutFailure(MsgMissingFields), nil
	}

	// 2. Cart must be valid (non-empty, stock still covers every line)
	validation, err := s.cart.Validate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validation.Valido {
		return checkoutFailure(strings.Join(validation.Errores, ". ")), nil
	}

	lines, err := s.repo.Cart.ListLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list cart lines", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	// The total comes from the same listed lines that get snapshotted, so
	// it always equals the sum of the order's unit prices times quantities.
	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}

	// 3. Charge through the selected method; unknown keys fall back to card
	method := payment.ResolveMethod(req.PaymentMethod)
	result := payment.Process(method, total, payment.Fields(req.PaymentData))
	if !result.Exitoso {
		s.log.Warn("Payment rejected",
			zap.String("user_id", userID.String()),
			zap.String("method", string(method)),
			zap.String("reason", result.Mensaje))
		return checkoutFailure(result.Mensaje), nil
	}

	// 4. Persist the order; stock is decremented in the same transaction
	order, orderLines := s.buildOrder(userID, req, method, total, result.TransaccionID, lines)
	if err := s.repo.Order.Create(ctx, order, orderLines); err != nil {
		s.log.Error("Failed to create order", zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("order_number", order.OrderNumber))
		return checkoutFailure(MsgOrderFailed), nil
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Float64("total", total))

	// 5. Cart cleanup and notifications are best-effort: the order stands
	// even when these fail.
	if err := s.cart.Clear(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after order",
			zap.Error(err), zap.String("order_id", order.ID.String()))
	}
	s.notify(ctx, userID, order, lines)

	return &response.CheckoutResponse{
		Exitoso: true,
		Mensaje: MsgOrderCreated,
		OrderID: order.ID.String(),
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *checkoutService) buildOrder(
	userID uuid.UUID,
	req *request.ProcessCheckoutRequest,
	method payment.Method,
	total float64,
	transactionID string,
	lines []*entity.CartLineDetail,
) (*entity.Order, []*entity.OrderLine) {
	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:     utils.GenerateOrderNumber(),
		UserID:          userID,
		Status:          entity.OrderStatusPending,
		PaymentMethod:   string(method),
		Total:           total,
		ShippingAddress: req.ShippingAddress,
		ShippingPhone:   req.ShippingPhone,
		Notes:           req.Notes,
		TransactionID:   &transactionID,
	}

	// Snapshot name and unit price so the order survives later catalog edits
	orderLines := make([]*entity.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, &entity.OrderLine{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
		})
	}

	return order, orderLines
}

func (s *checkoutService) notify(ctx context.Context, userID uuid.UUID, order *entity.Order, lines []*entity.CartLineDetail) {
	buyerMsg := fmt.Sprintf("Tu pedido %s ha sido creado exitosamente", order.OrderNumber)
	s.createNotification(ctx, userID, entity.NotificationTypeOrder, buyerMsg)

	// One sale notice per artisan with products in the order
	notified := map[uuid.UUID]bool{}
	for _, line := range lines {
		if notified[line.StoreUserID] {
			continue
		}
		notified[line.StoreUserID] = true

		saleMsg := fmt.Sprintf("Has recibido una venta en el pedido %s", order.OrderNumber)
		s.createNotification(ctx, line.StoreUserID, entity.NotificationTypeSale, saleMsg)
	}
}

func (s *checkoutService) createNotification(ctx context.Context, userID uuid.UUID, notifType entity.NotificationType, message string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Warn("Failed to create notification",
			zap.Error(err), zap.String("user_id", userID.String()))
	}
}

func checkoutFailure(msg string) *response.CheckoutResponse {
	return &response.CheckoutResponse{Exitoso: false, Mensaje: msg}
}
