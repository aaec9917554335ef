package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem menyimpan snapshot harga produk saat order dibuat.
// ProductID hanya referensi; harga yang dipakai selamanya adalah
// PriceAtOrder, bukan harga produk yang hidup.
type OrderItem struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	OrderID      uint               `gorm:"not null;index" json:"order_id"`
	Order        Order              `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID    uint               `gorm:"not null;index" json:"product_id"`
	Quantity     int                `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	Notes        *string            `gorm:"type:text" json:"notes"`
	Variants     []OrderItemVariant `gorm:"foreignKey:OrderItemID" json:"variants"`
	CreatedAt    time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null" json:"updated_at"`
}
