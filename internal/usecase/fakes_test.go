package usecase

import (
	"context"
	"fmt"

	"artisan-marketplace/internal/data/entity"
	"artisan-marketplace/internal/data/repository"

	"github.com/google/uuid"
)

// fakeProduct is the catalog state the fake cart repo checks against.
type fakeProduct struct {
	name        string
	price       float64
	stock       int
	active      bool
	storeUserID uuid.UUID
}

// fakeCartRepo keeps one in-memory cart and mimics the stock rules the
// real repository enforces inside its transactions.
type fakeCartRepo struct {
	cartID   uuid.UUID
	products map[uuid.UUID]*fakeProduct
	lines    map[uuid.UUID]int // productID -> quantity
	order    []uuid.UUID       // insertion order of lines

	clearErr      error
	cleared       bool
	totalOverride *float64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		cartID:   uuid.New(),
		products: map[uuid.UUID]*fakeProduct{},
		lines:    map[uuid.UUID]int{},
	}
}

func (f *fakeCartRepo) addProduct(name string, price float64, stock int) uuid.UUID {
	id := uuid.New()
	f.products[id] = &fakeProduct{
		name:        name,
		price:       price,
		stock:       stock,
		active:      true,
		storeUserID: uuid.New(),
	}
	return id
}

func (f *fakeCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return f.cartID, nil
}

func (f *fakeCartRepo) AddLine(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	p, ok := f.products[productID]
	if !ok || !p.active {
		return repository.ErrProductNotFound
	}
	if qty > p.stock {
		return repository.ErrInsufficientStock
	}
	if existing := f.lines[productID]; existing+qty > p.stock {
		return repository.ErrInsufficientStockAdd
	}

	if _, ok := f.lines[productID]; !ok {
		f.order = append(f.order, productID)
	}
	f.lines[productID] += qty
	return nil
}

func (f *fakeCartRepo) SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	p, ok := f.products[productID]
	if !ok || !p.active {
		return repository.ErrProductNotFound
	}
	if qty > p.stock {
		return repository.ErrInsufficientStock
	}

	// Overwrite touches nothing when the line does not exist, same as the
	// real UPDATE affecting zero rows.
	if _, ok := f.lines[productID]; ok {
		f.lines[productID] = qty
	}
	return nil
}

func (f *fakeCartRepo) DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error {
	if _, ok := f.lines[productID]; ok {
		delete(f.lines, productID)
		for i, id := range f.order {
			if id == productID {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.lines = map[uuid.UUID]int{}
	f.order = nil
	f.cleared = true
	return nil
}

func (f *fakeCartRepo) ListLines(ctx context.Context, userID uuid.UUID) ([]*entity.CartLineDetail, error) {
	details := make([]*entity.CartLineDetail, 0, len(f.order))
	for _, productID := range f.order {
		p := f.products[productID]
		qty := f.lines[productID]
		details = append(details, &entity.CartLineDetail{
			ProductID:   productID,
			ProductName: p.name,
			Price:       p.price,
			Stock:       p.stock,
			Quantity:    qty,
			StoreUserID: p.storeUserID,
			Subtotal:    p.price * float64(qty),
		})
	}
	return details, nil
}

func (f *fakeCartRepo) Total(ctx context.Context, userID uuid.UUID) (float64, error) {
	if f.totalOverride != nil {
		return *f.totalOverride, nil
	}
	total := 0.0
	for productID, qty := range f.lines {
		total += f.products[productID].price * float64(qty)
	}
	return total, nil
}

func (f *fakeCartRepo) CountItems(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, qty := range f.lines {
		count += qty
	}
	return count, nil
}

// fakeOrderRepo records the single order checkout is expected to write.
// sellers lists the user IDs whose store has products in that order.
type fakeOrderRepo struct {
	createErr error
	order     *entity.Order
	lines     []*entity.OrderLine
	sellers   map[uuid.UUID]bool
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order, lines []*entity.OrderLine) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.order = order
	f.lines = lines
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if f.order != nil && f.order.ID == id {
		return f.order, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderLine, error) {
	return f.lines, nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	if f.order != nil && f.order.UserID == userID {
		return []*entity.Order{f.order}, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if f.order != nil && f.order.UserID == userID {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeOrderRepo) ContainsSellerProducts(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error) {
	if f.order == nil || f.order.ID != orderID {
		return false, nil
	}
	return f.sellers[sellerID], nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	if f.order == nil || f.order.ID != orderID {
		return fmt.Errorf("order not found")
	}
	f.order.Status = status
	return nil
}

// fakeUserRepo holds users keyed by ID.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) addUser(role entity.UserRole) uuid.UUID {
	id := uuid.New()
	f.users[id] = &entity.User{
		Base:     entity.Base{ID: id},
		Name:     "Usuario",
		Email:    fmt.Sprintf("%s@example.com", id.String()[:8]),
		Role:     role,
		IsActive: true,
	}
	return id
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

// fakeNotificationRepo collects created notifications.
type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range f.created {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
