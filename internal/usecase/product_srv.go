package usecase

import (
	"context"
	"fmt"
	"time"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"
	"artisan-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	ListCatalog(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductListingResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ProductListingResponse, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]response.ProductResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error)
	Update(ctx context.Context, userID, productID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	Deactivate(ctx context.Context, userID, productID uuid.UUID) error
}

type productService struct {
	repo *repository.Repository // product and store repos
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log,
	}
}

func (s *productService) ListCatalog(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductListingResponse], error) {
	listings, err := s.repo.Product.FindAllActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products")
	}

	total, err := s.repo.Product.CountActive(ctx)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products")
	}

	data := make([]response.ProductListingResponse, 0, len(listings))
	for _, listing := range listings {
		data = append(data, response.ProductListingToResponse(listing))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*response.ProductListingResponse, error) {
	listing, err := s.repo.Product.FindActiveByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if listing == nil {
		return nil, fmt.Errorf("product not found")
	}

	resp := response.ProductListingToResponse(listing)
	return &resp, nil
}

func (s *productService) ListOwn(ctx context.Context, userID uuid.UUID) ([]response.ProductResponse, error) {
	store, err := s.findOwnStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Product.FindByStoreID(ctx, store.ID)
	if err != nil {
		s.log.Error("Failed to list store products", zap.Error(err), zap.String("store_id", store.ID.String()))
		return nil, fmt.Errorf("failed to list products")
	}

	data := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, response.ProductToResponse(p))
	}
	return data, nil
}

func (s *productService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	store, err := s.findOwnStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StoreID:     store.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("store_id", store.ID.String()))
		return nil, fmt.Errorf("failed to create product")
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("store_id", store.ID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, userID, productID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.findOwnProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to update product")
	}

	s.log.Info("Product updated", zap.String("product_id", productID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.findOwnProduct(ctx, userID, productID); err != nil {
		return err
	}

	if err := s.repo.Product.Deactivate(ctx, productID); err != nil {
		s.log.Error("Failed to deactivate product", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("failed to deactivate product")
	}

	s.log.Info("Product deactivated", zap.String("product_id", productID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *productService) findOwnStore(ctx context.Context, userID uuid.UUID) (*entity.Store, error) {
	store, err := s.repo.Store.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find store")
	}
	if store == nil {
		return nil, fmt.Errorf("store not found")
	}
	return store, nil
}

// findOwnProduct loads a product and enforces that it belongs to the
// caller's store.
func (s *productService) findOwnProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Product, error) {
	store, err := s.findOwnStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}
	if product.StoreID != store.ID {
		s.log.Warn("Product ownership mismatch",
			zap.String("product_id", productID.String()),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("product does not belong to your store")
	}

	return product, nil
}
