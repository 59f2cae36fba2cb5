package services

import "food-delivery-marketplace/models"

// validNext is the forward-only order lifecycle. Cancellation is a sideways
// move from any non-terminal state except out-for-delivery; delivered and
// cancelled are terminal.
var validNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.OrderPending:        {models.OrderConfirmed: true, models.OrderCancelled: true},
	models.OrderConfirmed:      {models.OrderPreparing: true, models.OrderCancelled: true},
	models.OrderPreparing:      {models.OrderOutForDelivery: true, models.OrderCancelled: true},
	models.OrderOutForDelivery: {models.OrderDelivered: true},
	models.OrderDelivered:      {},
	models.OrderCancelled:      {},
}

func CanTransition(from, to models.OrderStatus) bool {
	return validNext[from][to]
}

func IsTerminal(s models.OrderStatus) bool {
	return len(validNext[s]) == 0 && ValidStatus(s)
}

func ValidStatus(s models.OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}
