package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitionsMoveForward(t *testing.T) {
	assert.True(t, CanTransitionOrder(OrderPending, OrderProcessing))
	assert.True(t, CanTransitionOrder(OrderProcessing, OrderShipped))
	assert.True(t, CanTransitionOrder(OrderShipped, OrderDelivered))

	assert.False(t, CanTransitionOrder(OrderProcessing, OrderPending))
	assert.False(t, CanTransitionOrder(OrderShipped, OrderProcessing))
	assert.False(t, CanTransitionOrder(OrderDelivered, OrderShipped))
}

func TestOrderTerminalStates(t *testing.T) {
	for _, terminal := range []string{OrderDelivered, OrderCancelled} {
		for _, to := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
			assert.False(t, CanTransitionOrder(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestOrderCancellableBeforeDelivery(t *testing.T) {
	assert.True(t, CanTransitionOrder(OrderPending, OrderCancelled))
	assert.True(t, CanTransitionOrder(OrderProcessing, OrderCancelled))
	assert.True(t, CanTransitionOrder(OrderShipped, OrderCancelled))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))
}

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	number := NewOrderNumber(at)
	assert.Contains(t, number, "ORD-20250314-")
	assert.NotEqual(t, number, NewOrderNumber(at))
}
