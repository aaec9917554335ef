package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView adalah bentuk nested yang dikonsumsi dapur dan admin:
// order -> items (plus product_name) -> variants, dirakit dari satu kali
// query join, bukan N+1 preload.
type OrderView struct {
	ID            uint            `json:"id"`
	TableNumber   int             `json:"table_number"`
	CustomerName  *string         `json:"customer_name"`
	Location      string          `json:"location"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	OrderStatus   string          `json:"order_status"`
	Items         []OrderItemView `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OrderItemView struct {
	ID           uint                   `json:"id"`
	ProductID    uint                   `json:"product_id"`
	ProductName  string                 `json:"product_name"`
	Quantity     int                    `json:"quantity"`
	PriceAtOrder decimal.Decimal        `json:"price_at_order"`
	Notes        *string                `json:"notes"`
	Variants     []OrderItemVariantView `json:"variants"`
}

type OrderItemVariantView struct {
	ID           uint            `json:"id"`
	VariantName  string          `json:"variant_name"`
	VariantPrice decimal.Decimal `json:"variant_price"`
}

// OrderStatusView adalah payload minimal untuk polling status tiap
// beberapa detik; sengaja tidak membawa subtree item.
type OrderStatusView struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

// orderRow adalah satu baris hasil join datar
// orders x order_items x products x order_item_variants.
// Kolom item/varian nullable karena LEFT JOIN.
type orderRow struct {
	OrderID       uint
	TableNumber   int
	CustomerName  *string
	Location      string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	OrderStatus   string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	ItemID       *uint
	ProductID    *uint
	ProductName  *string
	Quantity     *int
	PriceAtOrder decimal.NullDecimal
	Notes        *string

	VariantID    *uint
	VariantName  *string
	VariantPrice decimal.NullDecimal
}

const orderSelectColumns = `
orders.id AS order_id, orders.table_number, orders.customer_name, orders.location,
orders.total_amount, orders.payment_method, orders.payment_status, orders.order_status,
orders.created_at, orders.updated_at,
order_items.id AS item_id, order_items.product_id, products.name AS product_name,
order_items.quantity, order_items.price_at_order, order_items.notes,
order_item_variants.id AS variant_id, order_item_variants.variant_name,
order_item_variants.variant_price`

func (s *OrderService) joinRows(where string, args ...interface{}) ([]orderRow, error) {
	q := s.db.Table("orders").
		Select(orderSelectColumns).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Joins("LEFT JOIN order_item_variants ON order_item_variants.order_item_id = order_items.id").
		Order("orders.created_at DESC, orders.id DESC, order_items.id ASC, order_item_variants.id ASC")
	if where != "" {
		q = q.Where(where, args...)
	}

	var rows []orderRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// foldOrders melipat stream baris datar menjadi pohon nested. Map
// ber-key id hanya untuk deduplikasi; urutan hasil mengikuti first-seen,
// yang berkat ORDER BY berarti created_at menurun.
func foldOrders(rows []orderRow) []*OrderView {
	orders := make([]*OrderView, 0, len(rows))
	orderByID := make(map[uint]*OrderView)

	type itemSlot struct {
		order *OrderView
		pos   int
	}
	itemByID := make(map[uint]itemSlot)

	for _, r := range rows {
		order, seen := orderByID[r.OrderID]
		if !seen {
			order = &OrderView{
				ID:            r.OrderID,
				TableNumber:   r.TableNumber,
				CustomerName:  r.CustomerName,
				Location:      r.Location,
				TotalAmount:   r.TotalAmount,
				PaymentMethod: r.PaymentMethod,
				PaymentStatus: r.PaymentStatus,
				OrderStatus:   r.OrderStatus,
				Items:         []OrderItemView{},
				CreatedAt:     r.CreatedAt,
				UpdatedAt:     r.UpdatedAt,
			}
			orderByID[r.OrderID] = order
			orders = append(orders, order)
		}

		// Order tanpa item: kolom item NULL, biarkan Items tetap [].
		if r.ItemID == nil {
			continue
		}

		slot, seenItem := itemByID[*r.ItemID]
		if !seenItem {
			item := OrderItemView{
				ID:           *r.ItemID,
				Quantity:     *r.Quantity,
				PriceAtOrder: r.PriceAtOrder.Decimal,
				Notes:        r.Notes,
				Variants:     []OrderItemVariantView{},
			}
			if r.ProductID != nil {
				item.ProductID = *r.ProductID
			}
			if r.ProductName != nil {
				item.ProductName = *r.ProductName
			}
			order.Items = append(order.Items, item)
			slot = itemSlot{order: order, pos: len(order.Items) - 1}
			itemByID[*r.ItemID] = slot
		}

		// Item tanpa varian menyumbang satu baris dengan variant_id NULL.
		if r.VariantID == nil {
			continue
		}
		variant := OrderItemVariantView{
			ID:           *r.VariantID,
			VariantPrice: r.VariantPrice.Decimal,
		}
		if r.VariantName != nil {
			variant.VariantName = *r.VariantName
		}
		slot.order.Items[slot.pos].Variants = append(slot.order.Items[slot.pos].Variants, variant)
	}

	return orders
}

// GetAll mengembalikan semua order ter-agregasi, terbaru dulu.
func (s *OrderService) GetAll() ([]*OrderView, error) {
	rows, err := s.joinRows("")
	if err != nil {
		return nil, err
	}
	return foldOrders(rows), nil
}

// GetByID mengembalikan satu order ter-agregasi; found false kalau id
// tidak ada.
func (s *OrderService) GetByID(id uint) (*OrderView, bool, error) {
	rows, err := s.joinRows("orders.id = ?", id)
	if err != nil {
		return nil, false, err
	}
	folded := foldOrders(rows)
	if len(folded) == 0 {
		return nil, false, nil
	}
	return folded[0], true, nil
}

// GetStatus adalah read path untuk polling: hanya dua kolom status,
// tanpa efek samping, aman dipanggil sesering apa pun.
func (s *OrderService) GetStatus(id uint) (*OrderStatusView, bool, error) {
	var view OrderStatusView
	res := s.db.Table("orders").
		Select("orders.order_status, orders.payment_status").
		Where("orders.id = ?", id).
		Scan(&view)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return &view, true, nil
}
