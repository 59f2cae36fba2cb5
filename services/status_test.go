package services_test

import (
	"testing"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/services"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_LegalChain(t *testing.T) {
	chain := []models.OrderStatus{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, services.CanTransition(chain[i], chain[i+1]),
			"%s -> %s should be allowed", chain[i], chain[i+1])
	}
}

func TestCanTransition_NoSkippingAhead(t *testing.T) {
	assert.False(t, services.CanTransition(models.OrderPending, models.OrderDelivered))
	assert.False(t, services.CanTransition(models.OrderPending, models.OrderPreparing))
	assert.False(t, services.CanTransition(models.OrderConfirmed, models.OrderOutForDelivery))
}

func TestCanTransition_NoGoingBack(t *testing.T) {
	assert.False(t, services.CanTransition(models.OrderConfirmed, models.OrderPending))
	assert.False(t, services.CanTransition(models.OrderDelivered, models.OrderOutForDelivery))
}

func TestCanTransition_Cancellation(t *testing.T) {
	assert.True(t, services.CanTransition(models.OrderPending, models.OrderCancelled))
	assert.True(t, services.CanTransition(models.OrderConfirmed, models.OrderCancelled))
	assert.True(t, services.CanTransition(models.OrderPreparing, models.OrderCancelled))
	assert.False(t, services.CanTransition(models.OrderOutForDelivery, models.OrderCancelled))
}

func TestCanTransition_TerminalStatesAreDeadEnds(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.OrderDelivered, models.OrderCancelled} {
		for _, next := range []models.OrderStatus{
			models.OrderPending, models.OrderConfirmed, models.OrderPreparing,
			models.OrderOutForDelivery, models.OrderDelivered, models.OrderCancelled,
		} {
			assert.False(t, services.CanTransition(terminal, next),
				"%s -> %s should be rejected", terminal, next)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, services.IsTerminal(models.OrderDelivered))
	assert.True(t, services.IsTerminal(models.OrderCancelled))
	assert.False(t, services.IsTerminal(models.OrderPending))
	assert.False(t, services.IsTerminal(models.OrderStatus("bogus")))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, services.ValidStatus(models.OrderOutForDelivery))
	assert.False(t, services.ValidStatus(models.OrderStatus("shipped")))
	assert.False(t, services.ValidStatus(models.OrderStatus("")))
}
