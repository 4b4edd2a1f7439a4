package usecase

import (
	"context"
	"testing"

	"artisan-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartFixture() (*fakeCartRepo, CartService, uuid.UUID) {
	repo := newFakeCartRepo()
	svc := NewCartService(repo, zap.NewNop())
	return repo, svc, uuid.New()
}

func TestCartAddItem_Success(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Mola artesanal", 25.0, 10)

	resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.Equal(t, "Producto agregado al carrito", resp.Mensaje)
	assert.Equal(t, 2, repo.lines[productID])
}

func TestCartAddItem_MergesQuantities(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Sombrero pintado", 40.0, 10)

	for i := 0; i < 2; i++ {
		resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
			ProductID: productID.String(),
			Quantity:  3,
		})
		require.NoError(t, err)
		require.True(t, resp.Exitoso)
	}

	assert.Equal(t, 6, repo.lines[productID])

	count, err := svc.Count(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestCartAddItem_ProductNotFound(t *testing.T) {
	_, svc, userID := newCartFixture()

	resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: uuid.NewString(),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Producto no encontrado", resp.Mensaje)
}

func TestCartAddItem_InsufficientStock(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Cesta tejida", 15.0, 3)

	resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  5,
	})

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Stock insuficiente", resp.Mensaje)
	assert.Zero(t, repo.lines[productID])
}

func TestCartAddItem_InsufficientStockWhenMerging(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Cesta tejida", 15.0, 5)

	resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)
	require.True(t, resp.Exitoso)

	// The second add is within stock on its own but not combined.
	resp, err = svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  3,
	})

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Stock insuficiente para la cantidad solicitada", resp.Mensaje)
	assert.Equal(t, 4, repo.lines[productID])
}

func TestCartAddItem_InvalidInput(t *testing.T) {
	_, svc, userID := newCartFixture()

	resp, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: "not-a-uuid",
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Exitoso)
	assert.Equal(t, "Datos inválidos", resp.Mensaje)
}

func TestCartUpdateQuantity_Overwrites(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Tambor de cuero", 60.0, 10)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	resp, err := svc.UpdateQuantity(context.Background(), userID, &request.UpdateCartRequest{
		ProductID: productID.String(),
		Quantity:  5,
	})

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.Equal(t, "Cantidad actualizada", resp.Mensaje)
	assert.Equal(t, 5, repo.lines[productID])
}

func TestCartUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Tambor de cuero", 60.0, 10)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	resp, err := svc.UpdateQuantity(context.Background(), userID, &request.UpdateCartRequest{
		ProductID: productID.String(),
		Quantity:  0,
	})

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.Equal(t, "Producto eliminado del carrito", resp.Mensaje)
	_, exists := repo.lines[productID]
	assert.False(t, exists)
}

func TestCartUpdateQuantity_MissingLineStillSucceeds(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Tinaja de barro", 35.0, 10)

	resp, err := svc.UpdateQuantity(context.Background(), userID, &request.UpdateCartRequest{
		ProductID: productID.String(),
		Quantity:  3,
	})

	require.NoError(t, err)
	assert.True(t, resp.Exitoso)
	assert.Equal(t, "Cantidad actualizada", resp.Mensaje)
	_, exists := repo.lines[productID]
	assert.False(t, exists)
}

func TestCartRemoveItem_Idempotent(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Hamaca", 80.0, 10)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := svc.RemoveItem(context.Background(), userID, &request.RemoveFromCartRequest{
			ProductID: productID.String(),
		})
		require.NoError(t, err)
		assert.True(t, resp.Exitoso)
		assert.Equal(t, "Producto eliminado del carrito", resp.Mensaje)
	}

	_, exists := repo.lines[productID]
	assert.False(t, exists)
}

func TestCartTotal_EmptyCartIsZero(t *testing.T) {
	_, svc, userID := newCartFixture()

	total, err := svc.Total(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestCartTotal_SumsSubtotals(t *testing.T) {
	repo, svc, userID := newCartFixture()
	first := repo.addProduct("Mola artesanal", 10.0, 10)
	second := repo.addProduct("Cesta tejida", 50.0, 10)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: first.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: second.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	total, err := svc.Total(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, total)
}

func TestCartValidate_EmptyCart(t *testing.T) {
	_, svc, userID := newCartFixture()

	validation, err := svc.Validate(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, validation.Valido)
	assert.Equal(t, []string{"El carrito está vacío"}, validation.Errores)
}

func TestCartValidate_ReportsStockShortage(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Hamaca", 80.0, 5)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	// Stock dropped after the product entered the cart.
	repo.products[productID].stock = 2

	validation, err := svc.Validate(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, validation.Valido)
	require.Len(t, validation.Errores, 1)
	assert.Equal(t, "Stock insuficiente para 'Hamaca'. Disponible: 2, solicitado: 4", validation.Errores[0])
}

func TestCartValidate_OKWhenStockCovers(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Hamaca", 80.0, 5)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	validation, err := svc.Validate(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, validation.Valido)
	assert.Empty(t, validation.Errores)
}

func TestCartView_ReflectsContents(t *testing.T) {
	repo, svc, userID := newCartFixture()
	productID := repo.addProduct("Tinaja de barro", 35.0, 10)

	_, err := svc.AddItem(context.Background(), userID, &request.AddToCartRequest{
		ProductID: productID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	view, err := svc.View(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, view.Exitoso)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Tinaja de barro", view.Items[0].ProductName)
	assert.Equal(t, 70.0, view.Items[0].Subtotal)
	assert.Equal(t, 70.0, view.Total)
	assert.Equal(t, 2, view.ItemCount)
}
