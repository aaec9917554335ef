package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemVariant adalah snapshot nama dan harga varian saat order
// dibuat, bukan referensi ke ProductVariant.
type OrderItemVariant struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderItemID  uint            `gorm:"not null;index" json:"order_item_id"`
	OrderItem    OrderItem       `gorm:"foreignKey:OrderItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VariantName  string          `gorm:"type:varchar(100);not null" json:"variant_name"`
	VariantPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"variant_price"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
