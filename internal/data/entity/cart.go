package entity

import "github.com/google/uuid"

// Cart is created lazily on the user's first mutation.
type Cart struct {
	BaseNoDelete
	UserID uuid.UUID `db:"user_id"`
}

// CartLine is one (product, quantity) pair in a user's cart.
// Quantity never exceeds the product's stock at mutation time.
type CartLine struct {
	BaseSimple
	CartID    uuid.UUID `db:"cart_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
}

// CartLineDetail joins a cart line with product, store and artisan
// display data. Inactive products are never included.
type CartLineDetail struct {
	ProductID   uuid.UUID `db:"product_id"`
	ProductName string    `db:"product_name"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"`
	Stock       int       `db:"stock"`
	ImageURL    *string   `db:"image_url"`
	Quantity    int       `db:"quantity"`
	StoreName   string    `db:"store_name"`
	ArtisanName string    `db:"artisan_name"`
	StoreUserID uuid.UUID `db:"store_user_id"`
	Subtotal    float64   `db:"subtotal"`
}
