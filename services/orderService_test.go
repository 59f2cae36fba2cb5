package services_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	byID         map[string]*models.Order
	beforeUpdate func()
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{byID: map[string]*models.Order{}}
}

func (s *fakeOrderStore) Insert(ctx context.Context, order *models.Order) error {
	copied := *order
	s.byID[order.Order_id] = &copied
	return nil
}

func (s *fakeOrderStore) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := s.byID[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", services.ErrNotFound, orderID)
	}
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.findSorted(func(o *models.Order) bool { return o.Restaurant_id == restaurantID }), nil
}

func (s *fakeOrderStore) FindByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.findSorted(func(o *models.Order) bool { return o.Customer_id == customerID }), nil
}

func (s *fakeOrderStore) findSorted(match func(*models.Order) bool) []models.Order {
	var orders []models.Order
	for _, o := range s.byID {
		if match(o) {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Created_at.After(orders[j].Created_at)
	})
	return orders
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, orderID string, version int64, status models.OrderStatus) (*models.Order, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	order, ok := s.byID[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", services.ErrNotFound, orderID)
	}
	if order.Version != version {
		return nil, fmt.Errorf("%w: order %s was updated concurrently", services.ErrConflict, orderID)
	}
	order.Status = status
	order.Version++
	order.Updated_at = time.Now()
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) CountPending(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	for _, o := range s.byID {
		if o.Restaurant_id == restaurantID && o.Status == models.OrderPending {
			count++
		}
	}
	return count, nil
}

type fakeMenuStore struct {
	byID map[string]*models.MenuItem
}

func (s *fakeMenuStore) FindByID(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	item, ok := s.byID[menuItemID]
	if !ok {
		return nil, fmt.Errorf("%w: menu item %s", services.ErrNotFound, menuItemID)
	}
	return item, nil
}

type fakeUserStore struct {
	byID map[string]*models.User
}

func (s *fakeUserStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := s.byID[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", services.ErrNotFound, userID)
	}
	return user, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func menuItem(id, restaurantID, name string, price float64) *models.MenuItem {
	available := models.MenuItemAvailable
	return &models.MenuItem{
		Menu_item_id:  id,
		Restaurant_id: restaurantID,
		Item_name:     strPtr(name),
		Price:         f64Ptr(price),
		Type:          strPtr("veg"),
		Availability:  &available,
	}
}

type fixture struct {
	svc    *services.OrderService
	orders *fakeOrderStore
	menu   *fakeMenuStore
	users  *fakeUserStore
}

func newFixture() *fixture {
	orders := newFakeOrderStore()
	menu := &fakeMenuStore{byID: map[string]*models.MenuItem{
		"m1": menuItem("m1", "R1", "Margherita", 100),
		"m2": menuItem("m2", "R1", "Tiramisu", 55.5),
		"m3": menuItem("m3", "R2", "Ramen", 80),
	}}
	users := &fakeUserStore{byID: map[string]*models.User{
		"R1": {User_id: "R1", Name: strPtr("Trattoria Uno"), Phone: strPtr("111"), User_role: strPtr(models.RoleManager)},
		"R2": {User_id: "R2", Name: strPtr("Noodle Bar"), Phone: strPtr("222"), User_role: strPtr(models.RoleManager)},
		"C1": {User_id: "C1", Name: strPtr("Ada"), Phone: strPtr("555-0101"), User_role: strPtr(models.RoleCustomer)},
	}}
	return &fixture{
		svc:    services.NewOrderService(orders, menu, users),
		orders: orders,
		menu:   menu,
		users:  users,
	}
}

func validInput() services.CreateOrderInput {
	return services.CreateOrderInput{
		RestaurantID:    "R1",
		Items:           []services.CreateOrderItem{{MenuItemID: "m1", Quantity: 2}},
		DeliveryAddress: "12 Baker St",
		ContactNumber:   "555-0101",
	}
}

func TestCreateOrder_TotalFromAuthoritativePrices(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.Items = []services.CreateOrderItem{
		{MenuItemID: "m1", Quantity: 2},
		{MenuItemID: "m2", Quantity: 1},
	}

	order, err := f.svc.CreateOrder(context.Background(), "C1", in)
	require.NoError(t, err)

	assert.Equal(t, 2*100+55.5, order.Total_amount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.Payment_status)
	assert.Equal(t, "C1", order.Customer_id)
	assert.Equal(t, "R1", order.Restaurant_id)
	assert.Equal(t, int64(1), order.Version)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Margherita", order.Items[0].Item_name)
	assert.Equal(t, 100.0, order.Items[0].Price)

	persisted, err := f.orders.FindByID(context.Background(), order.Order_id)
	require.NoError(t, err)
	assert.Equal(t, order.Total_amount, persisted.Total_amount)
}

func TestCreateOrder_SnapshotSurvivesMenuEdit(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	// Restaurant later doubles the price; the invoice must not move.
	f.menu.byID["m1"].Price = f64Ptr(200)

	persisted, err := f.orders.FindByID(context.Background(), order.Order_id)
	require.NoError(t, err)
	assert.Equal(t, 200.0, persisted.Total_amount)
	assert.Equal(t, 100.0, persisted.Items[0].Price)
}

func TestCreateOrder_MissingMenuItemPersistsNothing(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.Items = []services.CreateOrderItem{
		{MenuItemID: "m1", Quantity: 1},
		{MenuItemID: "ghost", Quantity: 1},
	}

	_, err := f.svc.CreateOrder(context.Background(), "C1", in)
	require.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, f.orders.byID, "a failed create must leave no partial order behind")
}

func TestCreateOrder_UnavailableItemRejected(t *testing.T) {
	f := newFixture()
	unavailable := models.MenuItemUnavailable
	f.menu.byID["m1"].Availability = &unavailable

	_, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestCreateOrder_ItemFromAnotherRestaurantRejected(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.Items = append(in.Items, services.CreateOrderItem{MenuItemID: "m3", Quantity: 1})

	_, err := f.svc.CreateOrder(context.Background(), "C1", in)
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestCreateOrder_ValidationFailures(t *testing.T) {
	f := newFixture()

	cases := map[string]func(*services.CreateOrderInput){
		"no items":          func(in *services.CreateOrderInput) { in.Items = nil },
		"no address":        func(in *services.CreateOrderInput) { in.DeliveryAddress = "" },
		"no contact number": func(in *services.CreateOrderInput) { in.ContactNumber = "" },
		"no restaurant":     func(in *services.CreateOrderInput) { in.RestaurantID = "" },
		"zero quantity":     func(in *services.CreateOrderInput) { in.Items[0].Quantity = 0 },
		"negative quantity": func(in *services.CreateOrderInput) { in.Items[0].Quantity = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := f.svc.CreateOrder(context.Background(), "C1", in)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestCreateOrder_UnknownRestaurant(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.RestaurantID = "R9"

	_, err := f.svc.CreateOrder(context.Background(), "C1", in)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCreateOrder_NonManagerAccountIsNotARestaurant(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.RestaurantID = "C1"

	_, err := f.svc.CreateOrder(context.Background(), "C1", in)
	require.ErrorIs(t, err, services.ErrValidation)
}

func manager(id string) services.Actor {
	return services.Actor{UserID: id, Role: models.RoleManager}
}

func TestUpdateStatus_FullLegalChain(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	} {
		updated, err := f.svc.UpdateStatus(context.Background(), order.Order_id, next, manager("R1"))
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, updated.Status)
	}
}

func TestUpdateStatus_PendingStraightToDeliveredFails(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderDelivered, manager("R1"))
	require.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestUpdateStatus_TerminalOrdersRejectEverything(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderCancelled, manager("R1"))
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{models.OrderConfirmed, models.OrderCancelled, models.OrderDelivered} {
		_, err := f.svc.UpdateStatus(context.Background(), order.Order_id, next, manager("R1"))
		assert.ErrorIs(t, err, services.ErrInvalidTransition)
	}
}

func TestUpdateStatus_UnknownStatusIsValidationNotTransition(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, "shipped", manager("R1"))
	require.ErrorIs(t, err, services.ErrValidation)
	require.NotErrorIs(t, err, services.ErrInvalidTransition)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateStatus(context.Background(), "nope", models.OrderConfirmed, manager("R1"))
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateStatus_ForeignRestaurantForbidden(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderConfirmed, manager("R2"))
	require.ErrorIs(t, err, services.ErrForbidden)

	persisted, _ := f.orders.FindByID(context.Background(), order.Order_id)
	assert.Equal(t, models.OrderPending, persisted.Status)
}

func TestUpdateStatus_CustomerMayOnlyCancelOwnEarlyOrder(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	customer := services.Actor{UserID: "C1", Role: models.RoleCustomer}
	stranger := services.Actor{UserID: "C2", Role: models.RoleCustomer}

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderConfirmed, customer)
	assert.ErrorIs(t, err, services.ErrForbidden, "customers cannot confirm orders")

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderCancelled, stranger)
	assert.ErrorIs(t, err, services.ErrForbidden, "someone else's customer cannot cancel")

	updated, err := f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderCancelled, customer)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.Status)
}

func TestUpdateStatus_CustomerCannotCancelOncePreparing(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderConfirmed, manager("R1"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderPreparing, manager("R1"))
	require.NoError(t, err)

	customer := services.Actor{UserID: "C1", Role: models.RoleCustomer}
	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderCancelled, customer)
	require.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestUpdateStatus_ConcurrentWriterSurfacesConflict(t *testing.T) {
	f := newFixture()
	order, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	// Another handler wins the race between our read and our write.
	raced := false
	f.orders.beforeUpdate = func() {
		if raced {
			return
		}
		raced = true
		stored := f.orders.byID[order.Order_id]
		stored.Status = models.OrderConfirmed
		stored.Version++
	}

	_, err = f.svc.UpdateStatus(context.Background(), order.Order_id, models.OrderConfirmed, manager("R1"))
	require.ErrorIs(t, err, services.ErrConflict)
}

func TestRestaurantOrders_NewestFirstWithCustomerResolved(t *testing.T) {
	f := newFixture()

	first, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)
	// Force distinct creation times; the service truncates to whole seconds.
	f.orders.byID[first.Order_id].Created_at = time.Now().Add(-time.Hour)

	second, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	rows, err := f.svc.RestaurantOrders(context.Background(), "R1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, second.Order_id, rows[0].Order_id)
	assert.Equal(t, first.Order_id, rows[1].Order_id)
	require.NotNil(t, rows[0].Customer_name)
	assert.Equal(t, "Ada", *rows[0].Customer_name)
	require.NotNil(t, rows[0].Customer_phone)
	assert.Equal(t, "555-0101", *rows[0].Customer_phone)
}

func TestPendingCount(t *testing.T) {
	f := newFixture()

	first, err := f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(context.Background(), "C1", validInput())
	require.NoError(t, err)

	count, err := f.svc.PendingCount(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = f.svc.UpdateStatus(context.Background(), first.Order_id, models.OrderConfirmed, manager("R1"))
	require.NoError(t, err)

	count, err = f.svc.PendingCount(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = f.svc.PendingCount(context.Background(), "R2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
