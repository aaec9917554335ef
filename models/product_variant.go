package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant adalah add-on opsional untuk satu produk (level pedas,
// extra topping, dsb). Hidupnya terpisah dari snapshot varian di order:
// mengubah harga di sini tidak boleh mengubah order lama.
type ProductVariant struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Product    Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	ExtraPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"extra_price"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
