package entity

import "github.com/google/uuid"

// OrderStatus values are stored in Spanish, matching what clients display.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPaid      OrderStatus = "pagado"
	OrderStatusShipped   OrderStatus = "enviado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

type Order struct {
	Base
	OrderNumber     string      `db:"order_number"`
	UserID          uuid.UUID   `db:"user_id"`
	Status          OrderStatus `db:"status"`
	PaymentMethod   string      `db:"payment_method"`
	Total           float64     `db:"total"`
	ShippingAddress string      `db:"shipping_address"`
	ShippingPhone   *string     `db:"shipping_phone"`
	Notes           *string     `db:"notes"`
	TransactionID   *string     `db:"transaction_id"`
}

// OrderLine snapshots product, quantity and unit price at purchase time.
// The price is never re-read after creation: historical orders are immune
// to later price changes.
type OrderLine struct {
	BaseSimple
	OrderID     uuid.UUID `db:"order_id"`
	ProductID   uuid.UUID `db:"product_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
	UnitPrice   float64   `db:"unit_price"`
}
