package services

import "github.com/ardiannf/scanorder/models"

// Transisi order_status yang diizinkan. Menulis status yang sama dengan
// status sekarang selalu diterima sebagai no-op.
//
//	pending    -> processing | cancelled
//	processing -> completed  | cancelled
//	completed  -> (terminal)
//	cancelled  -> (terminal)
var orderStatusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCancelled:  {},
}

func IsOrderStatus(s string) bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func CanTransitionOrderStatus(from, to string) bool {
	if !IsOrderStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// payment_status bebas bolak-balik pending <-> paid (admin klik untuk
// toggle), tidak ada status terminal.
func IsPaymentStatus(s string) bool {
	return s == models.PaymentStatusPending || s == models.PaymentStatusPaid
}
