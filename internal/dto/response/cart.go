package response

import "artisan-marketplace/internal/data/entity"

// Cart responses keep the legacy Spanish field names the storefront
// consumes (id_producto, cantidad, subtotal, ...).

type CartLineResponse struct {
	ProductID   string  `json:"id_producto"`
	ProductName string  `json:"nombre"`
	Description *string `json:"descripcion,omitempty"`
	Price       float64 `json:"precio"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imagen,omitempty"`
	Quantity    int     `json:"cantidad"`
	StoreName   string  `json:"tienda"`
	ArtisanName string  `json:"artesano"`
	Subtotal    float64 `json:"subtotal"`
}

type CartViewResponse struct {
	Exitoso   bool               `json:"exitoso"`
	Items     []CartLineResponse `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"cantidad_items"`
}

// CartMutationResponse is the envelope every cart mutation returns,
// success or not, always with HTTP 200.
type CartMutationResponse struct {
	Exitoso bool   `json:"exitoso"`
	Mensaje string `json:"mensaje"`
}

// CartValidationResponse reports whether the cart can proceed to checkout.
type CartValidationResponse struct {
	Valido  bool     `json:"valido"`
	Errores []string `json:"errores"`
}

// Helper converters
func CartLineToResponse(line *entity.CartLineDetail) CartLineResponse {
	return CartLineResponse{
		ProductID:   line.ProductID.String(),
		ProductName: line.ProductName,
		Description: line.Description,
		Price:       line.Price,
		Stock:       line.Stock,
		ImageURL:    line.ImageURL,
		Quantity:    line.Quantity,
		StoreName:   line.StoreName,
		ArtisanName: line.ArtisanName,
		Subtotal:    line.Subtotal,
	}
}

func CartViewToResponse(lines []*entity.CartLineDetail, total float64, count int) CartViewResponse {
	items := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, CartLineToResponse(line))
	}

	return CartViewResponse{
		Exitoso:   true,
		Items:     items,
		Total:     total,
		ItemCount: count,
	}
}
