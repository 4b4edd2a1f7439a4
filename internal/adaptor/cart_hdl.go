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

// Login prompts for the storefront cart widget. Unauthenticated requests
// get these inside a 200 envelope, never a 401.
const (
	msgLoginToAdd      = "Debes iniciar sesión para agregar productos al carrito"
	msgNotAuthorized   = "No autorizado"
	msgCartServerError = "Error al procesar la solicitud"
)

// CartHandler serves the legacy /carrito endpoints. Logical failures are
// reported as {exitoso:false, mensaje} with HTTP 200.
type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// Add handles POST /carrito/agregar
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.envelope(w, false, msgLoginToAdd)
		return
	}

	var req request.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.envelope(w, false, usecase.MsgInvalidData)
		return
	}

	resp, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		h.serverError(w, err, "add to cart")
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

// Update handles POST /carrito/actualizar
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.envelope(w, false, msgNotAuthorized)
		return
	}

	var req request.UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.envelope(w, false, usecase.MsgInvalidData)
		return
	}

	resp, err := h.service.UpdateQuantity(r.Context(), userID, &req)
	if err != nil {
		h.serverError(w, err, "update cart")
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

// Remove handles POST /carrito/eliminar
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.envelope(w, false, msgNotAuthorized)
		return
	}

	var req request.RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.envelope(w, false, usecase.MsgInvalidData)
		return
	}

	resp, err := h.service.RemoveItem(r.Context(), userID, &req)
	if err != nil {
		h.serverError(w, err, "remove from cart")
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

// View handles GET /carrito
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.envelope(w, false, msgLoginToAdd)
		return
	}

	resp, err := h.service.View(r.Context(), userID)
	if err != nil {
		h.serverError(w, err, "view cart")
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

func (h *CartHandler) envelope(w http.ResponseWriter, exitoso bool, mensaje string) {
	utils.ResponseRaw(w, http.StatusOK, response.CartMutationResponse{
		Exitoso: exitoso,
		Mensaje: mensaje,
	})
}

func (h *CartHandler) serverError(w http.ResponseWriter, err error, operation string) {
	h.log.Error("Failed to "+operation, zap.Error(err))
	utils.ResponseRaw(w, http.StatusInternalServerError, response.CartMutationResponse{
		Exitoso: false,
		Mensaje: msgCartServerError,
	})
}
