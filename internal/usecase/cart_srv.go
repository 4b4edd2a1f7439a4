package usecase

import (
	"context"
	"errors"
	"fmt"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"
	"artisan-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cart outcome messages shown to the storefront. Logical failures are
// reported inside the envelope, never as transport errors.
const (
	MsgProductAdded      = "Producto agregado al carrito"
	MsgQuantityUpdated   = "Cantidad actualizada"
	MsgProductRemoved    = "Producto eliminado del carrito"
	MsgProductNotFound   = "Producto no encontrado"
	MsgInsufficientStock = "Stock insuficiente"
	MsgStockForRequested = "Stock insuficiente para la cantidad solicitada"
	MsgInvalidData       = "Datos inválidos"
	MsgCartEmpty         = "El carrito está vacío"
)

type CartService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddToCartRequest) (*response.CartMutationResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *request.UpdateCartRequest) (*response.CartMutationResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req *request.RemoveFromCartRequest) (*response.CartMutationResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	View(ctx context.Context, userID uuid.UUID) (*response.CartViewResponse, error)
	Total(ctx context.Context, userID uuid.UUID) (float64, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Validate(ctx context.Context, userID uuid.UUID) (*response.CartValidationResponse, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	log      *zap.Logger
}

func NewCartService(cartRepo repository.CartRepository, log *zap.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		log:      log,
	}
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddToCartRequest) (*response.CartMutationResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to cart validation failed", zap.Any("errors", errs))
		return failure(MsgInvalidData), nil
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return failure(MsgInvalidData), nil
	}

	// 2. Find or create the user's cart
	cartID, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get cart")
	}

	// 3. Add, merging with any existing line under a row lock
	if err := s.cartRepo.AddLine(ctx, cartID, productID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return failure(MsgProductNotFound), nil
		case errors.Is(err, repository.ErrInsufficientStockAdd):
			return failure(MsgStockForRequested), nil
		case errors.Is(err, repository.ErrInsufficientStock):
			return failure(MsgInsufficientStock), nil
		}
		s.log.Error("Failed to add cart line", zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to add product to cart")
	}

	s.log.Info("Product added to cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", req.Quantity))

	return success(MsgProductAdded), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *request.UpdateCartRequest) (*response.CartMutationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cart validation failed", zap.Any("errors", errs))
		return failure(MsgInvalidData), nil
	}

	// Zero or negative quantity means remove
	if req.Quantity <= 0 {
		return s.RemoveItem(ctx, userID, &request.RemoveFromCartRequest{ProductID: req.ProductID})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return failure(MsgInvalidData), nil
	}

	cartID, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get cart")
	}

	// The update succeeds even when the product has no line in the cart.
	if err := s.cartRepo.SetLineQuantity(ctx, cartID, productID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return failure(MsgProductNotFound), nil
		case errors.Is(err, repository.ErrInsufficientStock):
			return failure(MsgInsufficientStock), nil
		}
		s.log.Error("Failed to update cart line", zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to update cart")
	}

	return success(MsgQuantityUpdated), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *request.RemoveFromCartRequest) (*response.CartMutationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Remove from cart validation failed", zap.Any("errors", errs))
		return failure(MsgInvalidData), nil
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return failure(MsgInvalidData), nil
	}

	cartID, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get cart")
	}

	// Idempotent: removing an absent line still reports success.
	if err := s.cartRepo.DeleteLine(ctx, cartID, productID); err != nil {
		s.log.Error("Failed to remove cart line", zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to remove product from cart")
	}

	return success(MsgProductRemoved), nil
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to clear cart")
	}
	return nil
}

func (s *cartService) View(ctx context.Context, userID uuid.UUID) (*response.CartViewResponse, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list cart lines", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	total, err := s.cartRepo.Total(ctx, userID)
	if err != nil {
		s.log.Error("Failed to total cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	count, err := s.cartRepo.CountItems(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	resp := response.CartViewToResponse(lines, total, count)
	return &resp, nil
}

func (s *cartService) Total(ctx context.Context, userID uuid.UUID) (float64, error) {
	total, err := s.cartRepo.Total(ctx, userID)
	if err != nil {
		s.log.Error("Failed to total cart", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to total cart")
	}
	return total, nil
}

func (s *cartService) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.cartRepo.CountItems(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to count cart items")
	}
	return count, nil
}

// Validate checks the cart can proceed to checkout: non-empty, and every
// line's quantity still covered by current stock.
func (s *cartService) Validate(ctx context.Context, userID uuid.UUID) (*response.CartValidationResponse, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list cart lines", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	if len(lines) == 0 {
		return &response.CartValidationResponse{
			Valido:  false,
			Errores: []string{MsgCartEmpty},
		}, nil
	}

	errores := []string{}
	for _, line := range lines {
		if line.Quantity > line.Stock {
			errores = append(errores, stockShortageMessage(line))
		}
	}

	return &response.CartValidationResponse{
		Valido:  len(errores) == 0,
		Errores: errores,
	}, nil
}

// ==================== HELPER METHODS ====================

func success(msg string) *response.CartMutationResponse {
	return &response.CartMutationResponse{Exitoso: true, Mensaje: msg}
}

func failure(msg string) *response.CartMutationResponse {
	return &response.CartMutationResponse{Exitoso: false, Mensaje: msg}
}

func stockShortageMessage(line *entity.CartLineDetail) string {
	return fmt.Sprintf("Stock insuficiente para '%s'. Disponible: %d, solicitado: %d",
		line.ProductName, line.Stock, line.Quantity)
}
