// Package client is the in-process counterpart of a dashboard frontend: it
// keeps a local window of orders in sync with the server using optimistic
// status changes and pushed room events.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/ws"
)

// StatusAPI is the slice of the REST surface a status change needs.
type StatusAPI interface {
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

type OrderList struct {
	mu     sync.Mutex
	orders []models.OrderWithCustomer
	api    StatusAPI
}

func NewOrderList(api StatusAPI) *OrderList {
	return &OrderList{api: api}
}

// Replace swaps in a freshly fetched window, e.g. after a reconnect.
func (l *OrderList) Replace(orders []models.OrderWithCustomer) {
	l.mu.Lock()
	l.orders = append([]models.OrderWithCustomer(nil), orders...)
	l.mu.Unlock()
}

// Orders returns a copy of the current window.
func (l *OrderList) Orders() []models.OrderWithCustomer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.OrderWithCustomer(nil), l.orders...)
}

// statusCommand is one optimistic status change: snapshot the previous value,
// apply the new one locally, then either commit (no-op, local state is
// already right) or roll back to the snapshot when the server says no.
type statusCommand struct {
	list    *OrderList
	orderID string
	prev    models.OrderStatus
	next    models.OrderStatus
}

func (cmd *statusCommand) apply() {
	cmd.list.patchStatus(cmd.orderID, cmd.next)
}

func (cmd *statusCommand) rollback() {
	cmd.list.patchStatus(cmd.orderID, cmd.prev)
}

// ChangeStatus mutates local state first so the UI reacts immediately, then
// confirms with the server. On failure the pre-mutation snapshot is restored
// and the error surfaced to the caller.
func (l *OrderList) ChangeStatus(ctx context.Context, orderID string, next models.OrderStatus) error {
	l.mu.Lock()
	idx := l.indexOf(orderID)
	if idx < 0 {
		l.mu.Unlock()
		return fmt.Errorf("order %s is not in the local window", orderID)
	}
	cmd := &statusCommand{list: l, orderID: orderID, prev: l.orders[idx].Status, next: next}
	l.orders[idx].Status = next
	l.mu.Unlock()

	if _, err := l.api.UpdateStatus(ctx, orderID, next); err != nil {
		cmd.rollback()
		return err
	}
	return nil
}

// ApplyEvent folds a pushed room event into the window. A new_order for an id
// already present only patches the status, so locally-known display fields
// are never clobbered; a status event for an unknown id is dropped (the next
// full fetch reconciles it).
func (l *OrderList) ApplyEvent(event string, payload []byte) error {
	switch event {
	case ws.EventNewOrder:
		var order models.Order
		if err := json.Unmarshal(payload, &order); err != nil {
			return err
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if idx := l.indexOf(order.Order_id); idx >= 0 {
			l.orders[idx].Status = order.Status
			return nil
		}
		l.orders = append([]models.OrderWithCustomer{{Order: order}}, l.orders...)
		return nil

	case ws.EventOrderStatusUpdated:
		var update struct {
			Order_id string             `json:"order_id"`
			Status   models.OrderStatus `json:"status"`
		}
		if err := json.Unmarshal(payload, &update); err != nil {
			return err
		}
		l.patchStatus(update.Order_id, update.Status)
		return nil

	default:
		return nil
	}
}

func (l *OrderList) patchStatus(orderID string, status models.OrderStatus) {
	l.mu.Lock()
	if idx := l.indexOf(orderID); idx >= 0 {
		l.orders[idx].Status = status
	}
	l.mu.Unlock()
}

// indexOf assumes l.mu is held.
func (l *OrderList) indexOf(orderID string) int {
	for i := range l.orders {
		if l.orders[i].Order_id == orderID {
			return i
		}
	}
	return -1
}
