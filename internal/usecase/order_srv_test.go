package usecase

import (
	"context"
	"testing"
	"time"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	orderRepo *fakeOrderRepo
	userRepo  *fakeUserRepo
	svc       OrderService

	buyerID  uuid.UUID
	adminID  uuid.UUID
	sellerID uuid.UUID // artisan with products in the order
	otherID  uuid.UUID // artisan without products in the order
	orderID  uuid.UUID
}

func newOrderFixture() *orderFixture {
	userRepo := newFakeUserRepo()
	buyerID := userRepo.addUser(entity.RoleClient)
	adminID := userRepo.addUser(entity.RoleAdmin)
	sellerID := userRepo.addUser(entity.RoleArtisan)
	otherID := userRepo.addUser(entity.RoleArtisan)

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:   "PED-20260901-080000-4321",
		UserID:        buyerID,
		Status:        entity.OrderStatusPending,
		PaymentMethod: "yappy",
		Total:         45.0,
	}
	orderRepo := &fakeOrderRepo{
		order:   order,
		sellers: map[uuid.UUID]bool{sellerID: true},
	}

	return &orderFixture{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		svc:       NewOrderService(orderRepo, userRepo, zap.NewNop()),
		buyerID:   buyerID,
		adminID:   adminID,
		sellerID:  sellerID,
		otherID:   otherID,
		orderID:   order.ID,
	}
}

func TestOrderGetByID_OwnerOnly(t *testing.T) {
	f := newOrderFixture()

	resp, err := f.svc.GetByID(context.Background(), f.buyerID, f.orderID)
	require.NoError(t, err)
	assert.Equal(t, f.orderID.String(), resp.ID)

	// Someone else's order looks like it does not exist
	_, err = f.svc.GetByID(context.Background(), f.otherID, f.orderID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderUpdateStatus_AdminUpdatesAnyOrder(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.UpdateStatus(context.Background(), f.adminID, f.orderID,
		&request.UpdateOrderStatusRequest{Status: "enviado"})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, f.orderRepo.order.Status)
}

func TestOrderUpdateStatus_SellerWithProductsInOrder(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.UpdateStatus(context.Background(), f.sellerID, f.orderID,
		&request.UpdateOrderStatusRequest{Status: "pagado"})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, f.orderRepo.order.Status)
}

func TestOrderUpdateStatus_SellerWithoutProductsDenied(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.UpdateStatus(context.Background(), f.otherID, f.orderID,
		&request.UpdateOrderStatusRequest{Status: "pagado"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "your products")
	assert.Equal(t, entity.OrderStatusPending, f.orderRepo.order.Status)
}

func TestOrderUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.UpdateStatus(context.Background(), f.adminID, f.orderID,
		&request.UpdateOrderStatusRequest{Status: "perdido"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestOrderUpdateStatus_UnknownOrder(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.UpdateStatus(context.Background(), f.adminID, uuid.New(),
		&request.UpdateOrderStatusRequest{Status: "enviado"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
