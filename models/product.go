package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product adalah item menu yang bisa dipesan customer. Produk yang sudah
// pernah masuk order historis tidak dihapus, cukup dimatikan lewat
// IsAvailable.
type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	CategoryID  *uint            `gorm:"index" json:"category_id"`
	Category    *Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"base_price"`
	ImageURL    *string          `gorm:"type:varchar(255)" json:"image_url"`
	IsAvailable bool             `gorm:"not null;default:true" json:"is_available"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}
