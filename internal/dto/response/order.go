package response

import (
	"time"

	"artisan-marketplace/internal/data/entity"
)

type OrderLineResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Status          entity.OrderStatus  `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	Total           float64             `json:"total"`
	ShippingAddress string              `json:"shipping_address"`
	ShippingPhone   *string             `json:"shipping_phone,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	TransactionID   *string             `json:"transaction_id,omitempty"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CheckoutResponse is the legacy checkout envelope. OrderID is set only
// on success; HTTP status is 200 either way.
type CheckoutResponse struct {
	Exitoso bool   `json:"exitoso"`
	Mensaje string `json:"mensaje"`
	OrderID string `json:"id_pedido,omitempty"`
}

// Helper converters
func OrderLineToResponse(line *entity.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ProductID:   line.ProductID.String(),
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Subtotal:    line.UnitPrice * float64(line.Quantity),
	}
}

func OrderToResponse(order *entity.Order, lines []*entity.OrderLine) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		ShippingPhone:   order.ShippingPhone,
		Notes:           order.Notes,
		TransactionID:   order.TransactionID,
		CreatedAt:       order.CreatedAt,
	}

	for _, line := range lines {
		resp.Lines = append(resp.Lines, OrderLineToResponse(line))
	}

	return resp
}
