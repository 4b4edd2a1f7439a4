package adaptor

import (
	"encoding/json"
	"net/http"

	"artisan-marketplace/internal/dto/request"
	"artisan-marketplace/internal/dto/response"
	"artisan-marketplace/internal/usecase"
	"artisan-marketplace/pkg/utils"

	"go.uber.org/zap"
)

const msgLoginToCheckout = "Debes iniciar sesión para realizar un pedido"

// CheckoutHandler serves POST /checkout/procesar with the legacy
// {exitoso, mensaje, id_pedido} envelope.
type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// Process handles POST /checkout/procesar
func (h *CheckoutHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseRaw(w, http.StatusOK, response.CheckoutResponse{
			Exitoso: false,
			Mensaje: msgLoginToCheckout,
		})
		return
	}

	var req request.ProcessCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseRaw(w, http.StatusOK, response.CheckoutResponse{
			Exitoso: false,
			Mensaje: usecase.MsgMissingFields,
		})
		return
	}

	resp, err := h.service.Process(r.Context(), userID, &req)
	if err != nil {
		h.log.Error("Failed to process checkout", zap.Error(err),
			zap.String("user_id", userID.String()))
		utils.ResponseRaw(w, http.StatusInternalServerError, response.CheckoutResponse{
			Exitoso: false,
			Mensaje: usecase.MsgCheckoutFailed,
		})
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}
