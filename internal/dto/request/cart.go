package request

// Cart mutations mirror the legacy form field names (id_producto, cantidad).

type AddToCartRequest struct {
	ProductID string `json:"id_producto" validate:"required,uuid4"`
	Quantity  int    `json:"cantidad" validate:"required,gt=0"`
}

type UpdateCartRequest struct {
	ProductID string `json:"id_producto" validate:"required,uuid4"`
	Quantity  int    `json:"cantidad"`
}

type RemoveFromCartRequest struct {
	ProductID string `json:"id_producto" validate:"required,uuid4"`
}
