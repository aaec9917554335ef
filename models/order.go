package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	PaymentMethodCash = "cash"
	PaymentMethodQRIS = "qris"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TableNumber   int             `gorm:"not null" json:"table_number"`
	CustomerName  *string         `gorm:"type:varchar(100)" json:"customer_name"`
	Location      string          `gorm:"type:varchar(100)" json:"location"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	OrderStatus   string          `gorm:"type:varchar(20);not null;default:'pending'" json:"order_status"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
