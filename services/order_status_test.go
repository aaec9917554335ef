package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/services"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusCompleted, false},
		{models.OrderStatusProcessing, models.OrderStatusCompleted, true},
		{models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{models.OrderStatusProcessing, models.OrderStatusPending, false},
		{models.OrderStatusCompleted, models.OrderStatusProcessing, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		// status sama selalu boleh
		{models.OrderStatusCompleted, models.OrderStatusCompleted, true},
		{models.OrderStatusPending, models.OrderStatusPending, true},
		// nilai asing
		{models.OrderStatusPending, "ready", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.CanTransitionOrderStatus(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsOrderStatus(t *testing.T) {
	assert.True(t, services.IsOrderStatus(models.OrderStatusPending))
	assert.True(t, services.IsOrderStatus(models.OrderStatusCancelled))
	assert.False(t, services.IsOrderStatus("ready"))
	assert.False(t, services.IsOrderStatus(""))
}

func TestIsPaymentStatus(t *testing.T) {
	assert.True(t, services.IsPaymentStatus(models.PaymentStatusPending))
	assert.True(t, services.IsPaymentStatus(models.PaymentStatusPaid))
	assert.False(t, services.IsPaymentStatus("refunded"))
}
