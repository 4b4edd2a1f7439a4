package request

type ProcessCheckoutRequest struct {
	ShippingAddress string            `json:"direccion" validate:"required,min=5,max=255"`
	ShippingPhone   *string           `json:"telefono,omitempty" validate:"omitempty,min=7,max=15"`
	Notes           *string           `json:"notas,omitempty" validate:"omitempty,max=500"`
	PaymentMethod   string            `json:"metodo_pago" validate:"required"`
	PaymentData     map[string]string `json:"datos_pago"`
}
