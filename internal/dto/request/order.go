package request

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente pagado enviado entregado cancelado"`
}
