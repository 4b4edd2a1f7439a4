package entity

import "github.com/google/uuid"

type Product struct {
	Base
	StoreID     uuid.UUID `db:"store_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"`
	Stock       int       `db:"stock"`
	ImageURL    *string   `db:"image_url"`
	IsActive    bool      `db:"is_active"`
}

// ProductListing is a catalog row joined with store and artisan display data.
type ProductListing struct {
	Product
	StoreName   string `db:"store_name"`
	ArtisanName string `db:"artisan_name"`
}
