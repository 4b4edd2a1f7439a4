package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"
	"artisan-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	cartRepo  *fakeCartRepo
	orderRepo *fakeOrderRepo
	notifRepo *fakeNotificationRepo
	svc       CheckoutService
	userID    uuid.UUID
}

func newCheckoutFixture() *checkoutFixture {
	cartRepo := newFakeCartRepo()
	orderRepo := &fakeOrderRepo{}
	notifRepo := &fakeNotificationRepo{}
	log := zap.NewNop()

	repo := &repository.Repository{
		Cart:         cartRepo,
		Order:        orderRepo,
		Notification: notifRepo,
	}
	cart := NewCartService(cartRepo, log)

	return &checkoutFixture{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		notifRepo: notifRepo,
		svc:       NewCheckoutService(repo, cart, log),
		userID:    uuid.New(),
	}
}

func (f *checkoutFixture) fillCart(t *testing.T, name string, price float64, stock, qty int) uuid.UUID {
	t.Helper()
	productID := f.cartRepo.addProduct(name, price, stock)
	require.NoError(t, f.cartRepo.AddLine(context.Background(), f.cartRepo.cartID, productID, qty))
	return productID
}

func validCheckoutRequest() *request.ProcessCheckoutRequest {
	return &request.ProcessCheckoutRequest{
		ShippingAddress: "Calle 50, Ciudad de Panamá",
		PaymentMethod:   "tarjeta_credito",
		PaymentData: map[string]string{
			"numero_tarjeta":   "4111111111111111",
			"fecha_expiracion": "12/27",
			"cvv":              "123",
			"nombre_titular":   "Ana Pérez",
		},
	}
}

func TestCheckout_MissingRequiredFields(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 1)

	resp, err := f.svc.Process(context.Background(), f.userID, &request.ProcessCheckoutRequest{
		PaymentMethod: "yappy",
	})

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Faltan datos requeridos", resp.Mensaje)
	assert.Nil(t, f.orderRepo.order)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "El carrito está vacío", resp.Mensaje)
	assert.Nil(t, f.orderRepo.order)
}

func TestCheckout_StockShortageBlocksOrder(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.fillCart(t, "Hamaca", 80.0, 5, 4)
	f.cartRepo.products[productID].stock = 1

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Contains(t, resp.Mensaje, "Stock insuficiente para 'Hamaca'")
	assert.Nil(t, f.orderRepo.order)
}

func TestCheckout_PaymentRejectedCreatesNoOrder(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 2)

	req := validCheckoutRequest()
	req.PaymentData["numero_tarjeta"] = "4111111111110000"

	resp, err := f.svc.Process(context.Background(), f.userID, req)

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Tarjeta rechazada por el banco", resp.Mensaje)
	assert.Nil(t, f.orderRepo.order)
	assert.False(t, f.cartRepo.cleared)
	assert.Empty(t, f.notifRepo.created)
}

func TestCheckout_OrderFailureReportsGenericMessage(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 2)
	f.orderRepo.createErr = fmt.Errorf("product Mola artesanal: %w", repository.ErrInsufficientStock)

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Error al procesar el pedido", resp.Mensaje)
	assert.False(t, f.cartRepo.cleared)
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.fillCart(t, "Mola artesanal", 25.0, 10, 2)
	f.fillCart(t, "Cesta tejida", 10.0, 10, 2)

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.Equal(t, "Pedido creado exitosamente", resp.Mensaje)

	order := f.orderRepo.order
	require.NotNil(t, order)
	assert.Equal(t, order.ID.String(), resp.OrderID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "tarjeta_credito", order.PaymentMethod)
	assert.Equal(t, 70.0, order.Total)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "PED-"))
	require.NotNil(t, order.TransactionID)
	assert.True(t, strings.HasSuffix(*order.TransactionID, "_CARD"))

	// Lines snapshot name, quantity and unit price
	require.Len(t, f.orderRepo.lines, 2)
	first := f.orderRepo.lines[0]
	assert.Equal(t, productID, first.ProductID)
	assert.Equal(t, "Mola artesanal", first.ProductName)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 25.0, first.UnitPrice)

	// Cart cleared, buyer and both artisans notified
	assert.True(t, f.cartRepo.cleared)
	require.Len(t, f.notifRepo.created, 3)
	assert.Equal(t, f.userID, f.notifRepo.created[0].UserID)
	assert.Equal(t, entity.NotificationTypeOrder, f.notifRepo.created[0].Type)
	assert.Contains(t, f.notifRepo.created[0].Message, order.OrderNumber)
	assert.Equal(t, entity.NotificationTypeSale, f.notifRepo.created[1].Type)
	assert.Equal(t, entity.NotificationTypeSale, f.notifRepo.created[2].Type)
}

func TestCheckout_TotalMatchesSnapshottedLines(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 2)
	f.fillCart(t, "Cesta tejida", 10.0, 10, 3)

	// A stale aggregate must never leak into the order: the total has to
	// come from the same lines whose prices get snapshotted.
	poisoned := 999.99
	f.cartRepo.totalOverride = &poisoned

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)

	order := f.orderRepo.order
	require.NotNil(t, order)

	var snapshotSum float64
	for _, line := range f.orderRepo.lines {
		snapshotSum += line.UnitPrice * float64(line.Quantity)
	}
	assert.Equal(t, 80.0, snapshotSum)
	assert.Equal(t, snapshotSum, order.Total)
}

func TestCheckout_UnknownPaymentMethodFallsBackToCard(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 1)

	req := validCheckoutRequest()
	req.PaymentMethod = "paypal"

	resp, err := f.svc.Process(context.Background(), f.userID, req)

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	require.NotNil(t, f.orderRepo.order)
	assert.Equal(t, "tarjeta_credito", f.orderRepo.order.PaymentMethod)
}

func TestCheckout_TransferAlwaysAccepted(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Tambor de cuero", 60.0, 10, 1)

	req := validCheckoutRequest()
	req.PaymentMethod = "transferencia"
	req.PaymentData = map[string]string{
		"banco":          "Banco General",
		"numero_cuenta":  "04-12-34-567890",
		"nombre_titular": "Ana Pérez",
	}

	resp, err := f.svc.Process(context.Background(), f.userID, req)

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	require.NotNil(t, f.orderRepo.order)
	require.NotNil(t, f.orderRepo.order.TransactionID)
	assert.True(t, strings.HasSuffix(*f.orderRepo.order.TransactionID, "_TRANSFER"))
}

func TestCheckout_CartClearFailureDoesNotUndoOrder(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(t, "Mola artesanal", 25.0, 10, 1)
	f.cartRepo.clearErr = fmt.Errorf("connection reset")

	resp, err := f.svc.Process(context.Background(), f.userID, validCheckoutRequest())

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.NotNil(t, f.orderRepo.order)
}
