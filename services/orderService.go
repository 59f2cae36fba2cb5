package services

import (
	"context"
	"time"

	"food-delivery-marketplace/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStore is the persisted-order access the service needs. Listing methods
// return newest first (created_at descending). UpdateStatus is a conditional
// write on (order id, version) and must return ErrConflict when the document
// exists but the version has moved on, ErrNotFound when it does not exist.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, version int64, status models.OrderStatus) (*models.Order, error)
	CountPending(ctx context.Context, restaurantID string) (int64, error)
}

type MenuStore interface {
	FindByID(ctx context.Context, menuItemID string) (*models.MenuItem, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// Actor is the authenticated identity performing an operation, as extracted
// from the token claims by the auth middleware.
type Actor struct {
	UserID string
	Role   string
}

type CreateOrderItem struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	RestaurantID    string            `json:"restaurant_id" validate:"required"`
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string            `json:"delivery_address" validate:"required"`
	ContactNumber   string            `json:"contact_number" validate:"required"`
}

type OrderService struct {
	orders OrderStore
	menu   MenuStore
	users  UserStore
}

func NewOrderService(orders OrderStore, menu MenuStore, users UserStore) *OrderService {
	return &OrderService{orders: orders, menu: menu, users: users}
}

// CreateOrder builds a pending order for the customer. Item names and prices
// are snapshotted from the catalog; whatever totals or prices the caller sent
// never enter the record. All menu lookups happen before the single insert so
// a missing item leaves nothing behind.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, in CreateOrderInput) (*models.Order, error) {
	if customerID == "" {
		return nil, validationErr("customer id is required")
	}
	if in.RestaurantID == "" {
		return nil, validationErr("restaurant_id is required")
	}
	if len(in.Items) == 0 {
		return nil, validationErr("order must contain at least one item")
	}
	if in.DeliveryAddress == "" {
		return nil, validationErr("delivery_address is required")
	}
	if in.ContactNumber == "" {
		return nil, validationErr("contact_number is required")
	}

	restaurant, err := s.users.FindByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, notFoundErr("restaurant %s was not found", in.RestaurantID)
	}
	if restaurant.User_role == nil || *restaurant.User_role != models.RoleManager {
		return nil, validationErr("account %s is not a restaurant", in.RestaurantID)
	}

	var items []models.OrderItem
	var total float64
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, validationErr("quantity must be at least 1")
		}
		menuItem, err := s.menu.FindByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, notFoundErr("menu item %s was not found", line.MenuItemID)
		}
		if menuItem.Restaurant_id != in.RestaurantID {
			return nil, validationErr("menu item %s does not belong to restaurant %s", line.MenuItemID, in.RestaurantID)
		}
		if menuItem.Availability != nil && *menuItem.Availability != models.MenuItemAvailable {
			return nil, validationErr("menu item %s is currently unavailable", *menuItem.Item_name)
		}
		items = append(items, models.OrderItem{
			Menu_item_id: menuItem.Menu_item_id,
			Item_name:    *menuItem.Item_name,
			Quantity:     line.Quantity,
			Price:        *menuItem.Price,
		})
		total += *menuItem.Price * float64(line.Quantity)
	}

	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	order := &models.Order{
		ID:               primitive.NewObjectID(),
		Customer_id:      customerID,
		Restaurant_id:    in.RestaurantID,
		Items:            items,
		Total_amount:     total,
		Status:           models.OrderPending,
		Payment_status:   models.PaymentPending,
		Delivery_address: in.DeliveryAddress,
		Contact_number:   in.ContactNumber,
		Version:          1,
		Created_at:       now,
		Updated_at:       now,
	}
	order.Order_id = order.ID.Hex()

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RestaurantOrders lists a restaurant's orders newest first, with the
// customer's display fields resolved onto each row.
func (s *OrderService) RestaurantOrders(ctx context.Context, restaurantID string) ([]models.OrderWithCustomer, error) {
	orders, err := s.orders.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	customers := map[string]*models.User{}
	rows := make([]models.OrderWithCustomer, 0, len(orders))
	for _, order := range orders {
		row := models.OrderWithCustomer{Order: order}
		customer, ok := customers[order.Customer_id]
		if !ok {
			customer, _ = s.users.FindByID(ctx, order.Customer_id)
			customers[order.Customer_id] = customer
		}
		if customer != nil {
			row.Customer_name = customer.Name
			row.Customer_phone = customer.Phone
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *OrderService) CustomerOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.orders.FindByCustomer(ctx, customerID)
}

// UpdateStatus moves an order along the lifecycle on behalf of actor.
// Managers may perform any table-legal transition on their own orders;
// customers may only cancel their own order while it is still pending or
// confirmed. The write is versioned, so a concurrent update surfaces as
// ErrConflict rather than silently losing.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus, actor Actor) (*models.Order, error) {
	if !ValidStatus(next) {
		return nil, validationErr("unknown order status %q", next)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Role == models.RoleAdmin:
	case actor.Role == models.RoleManager && actor.UserID == order.Restaurant_id:
	case actor.UserID == order.Customer_id && next == models.OrderCancelled:
		if order.Status != models.OrderPending && order.Status != models.OrderConfirmed {
			return nil, transitionErr("order %s can no longer be cancelled", orderID)
		}
	default:
		return nil, forbiddenErr("not allowed to update order %s", orderID)
	}

	if !CanTransition(order.Status, next) {
		if IsTerminal(order.Status) {
			return nil, transitionErr("order %s is already %s", orderID, order.Status)
		}
		return nil, transitionErr("cannot move order from %s to %s", order.Status, next)
	}

	return s.orders.UpdateStatus(ctx, orderID, order.Version, next)
}

// PendingCount is the restaurant dashboard badge: how many orders are still
// waiting to be confirmed.
func (s *OrderService) PendingCount(ctx context.Context, restaurantID string) (int64, error) {
	return s.orders.CountPending(ctx, restaurantID)
}
