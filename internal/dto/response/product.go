package response

import (
	"time"

	"artisan-marketplace/internal/data/entity"
)

type ProductResponse struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListingResponse is a catalog row with its store and artisan names.
type ProductListingResponse struct {
	ProductResponse
	StoreName   string `json:"store_name"`
	ArtisanName string `json:"artisan_name"`
}

type StoreResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Helper converters
func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		StoreID:     p.StoreID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func ProductListingToResponse(p *entity.ProductListing) ProductListingResponse {
	return ProductListingResponse{
		ProductResponse: ProductToResponse(&p.Product),
		StoreName:       p.StoreName,
		ArtisanName:     p.ArtisanName,
	}
}

func StoreToResponse(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID.String(),
		UserID:      s.UserID.String(),
		Name:        s.Name,
		Description: s.Description,
	}
}
