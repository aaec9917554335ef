package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ardiannf/scanorder/models"
)

// ValidationError menandai request yang ditolak karena isinya salah
// (harga tidak cocok, transisi status ilegal, dsb). Router menerjemahkan
// ini ke 400, bukan 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// OrderService memegang seluruh siklus hidup order beserta item dan
// varian snapshotnya. Semua mutasi multi-baris berjalan dalam satu
// transaksi: gagal di tengah berarti tidak ada baris yang tersisa.
type OrderService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewOrderService(db *gorm.DB, log logrus.FieldLogger) *OrderService {
	return &OrderService{db: db, log: log.WithField("component", "order_service")}
}

type OrderItemVariantInput struct {
	VariantName  string          `json:"variant_name" binding:"required"`
	VariantPrice decimal.Decimal `json:"variant_price"`
}

type OrderItemInput struct {
	ProductID    uint                    `json:"product_id" binding:"required"`
	Quantity     int                     `json:"quantity" binding:"required,gt=0"`
	PriceAtOrder decimal.Decimal         `json:"price_at_order"`
	Notes        *string                 `json:"notes"`
	Variants     []OrderItemVariantInput `json:"variants"`
}

type OrderInput struct {
	TableNumber   int              `json:"table_number" binding:"required"`
	CustomerName  *string          `json:"customer_name"`
	Location      string           `json:"location"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=cash qris"`
	PaymentStatus string           `json:"payment_status" binding:"omitempty,oneof=pending paid"`
	OrderStatus   string           `json:"order_status" binding:"omitempty,oneof=pending processing completed cancelled"`
	Items         []OrderItemInput `json:"items"`
}

// verifyPricing menghitung ulang total dari harga produk dan varian yang
// hidup di database, lalu menolak kalau snapshot yang dikirim client
// tidak cocok. Nominal dari client tidak pernah dipercaya mentah-mentah.
func (s *OrderService) verifyPricing(tx *gorm.DB, in *OrderInput) error {
	total := decimal.Zero
	for _, item := range in.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("product %d not found", item.ProductID)
			}
			return err
		}
		if !product.IsAvailable {
			return validationf("product %q is not available", product.Name)
		}
		if !item.PriceAtOrder.Equal(product.BasePrice) {
			return validationf("price_at_order %s does not match base price %s for product %q",
				item.PriceAtOrder, product.BasePrice, product.Name)
		}

		unit := product.BasePrice
		for _, v := range item.Variants {
			var pv models.ProductVariant
			err := tx.Where("product_id = ? AND name = ?", item.ProductID, v.VariantName).
				First(&pv).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationf("variant %q not found for product %q", v.VariantName, product.Name)
				}
				return err
			}
			if !v.VariantPrice.Equal(pv.ExtraPrice) {
				return validationf("variant_price %s does not match extra price %s for variant %q",
					v.VariantPrice, pv.ExtraPrice, pv.Name)
			}
			unit = unit.Add(pv.ExtraPrice)
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if !in.TotalAmount.Equal(total) {
		return validationf("total_amount %s does not match computed total %s", in.TotalAmount, total)
	}
	return nil
}

// insertItems menulis item dan varian snapshot milik satu order.
func (s *OrderService) insertItems(tx *gorm.DB, orderID uint, items []OrderItemInput) error {
	for _, item := range items {
		orderItem := models.OrderItem{
			OrderID:      orderID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Notes:        item.Notes,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			return err
		}
		for _, v := range item.Variants {
			variant := models.OrderItemVariant{
				OrderItemID:  orderItem.ID,
				VariantName:  v.VariantName,
				VariantPrice: v.VariantPrice,
			}
			if err := tx.Create(&variant).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Create menulis order + items + variants dalam satu transaksi dan
// mengembalikan id order baru.
func (s *OrderService) Create(in *OrderInput) (uint, error) {
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentStatusPending
	}
	if in.OrderStatus == "" {
		in.OrderStatus = models.OrderStatusPending
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.verifyPricing(tx, in); err != nil {
			return err
		}

		order := models.Order{
			TableNumber:   in.TableNumber,
			CustomerName:  in.CustomerName,
			Location:      in.Location,
			TotalAmount:   in.TotalAmount,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: in.PaymentStatus,
			OrderStatus:   in.OrderStatus,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := s.insertItems(tx, order.ID, in.Items); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithField("order_id", orderID).Info("order created")
	return orderID, nil
}

// Update mengganti field skalar order dan MENGGANTI SELURUH subtree
// item/varian: semua item lama dihapus lalu item dari request ditulis
// ulang. Id item tidak stabil antar edit.
func (s *OrderService) Update(id uint, in *OrderInput) (bool, error) {
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentStatusPending
	}
	if in.OrderStatus == "" {
		in.OrderStatus = models.OrderStatusPending
	}

	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := s.verifyPricing(tx, in); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"table_number":   in.TableNumber,
			"customer_name":  in.CustomerName,
			"location":       in.Location,
			"total_amount":   in.TotalAmount,
			"payment_method": in.PaymentMethod,
			"payment_status": in.PaymentStatus,
			"order_status":   in.OrderStatus,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := s.deleteItemTree(tx, id); err != nil {
			return err
		}
		return s.insertItems(tx, id, in.Items)
	})
	if err != nil {
		return found, err
	}
	if found {
		s.log.WithField("order_id", id).Info("order replaced")
	}
	return found, nil
}

// deleteItemTree menghapus semua item order beserta variannya. Varian
// dihapus eksplisit (bukan mengandalkan cascade FK) supaya perilakunya
// sama di mysql maupun sqlite.
func (s *OrderService) deleteItemTree(tx *gorm.DB, orderID uint) error {
	itemIDs := tx.Model(&models.OrderItem{}).Select("id").Where("order_id = ?", orderID)
	if err := tx.Where("order_item_id IN (?)", itemIDs).Delete(&models.OrderItemVariant{}).Error; err != nil {
		return err
	}
	return tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
}

// Delete menghapus order beserta seluruh turunannya. Mengembalikan false
// kalau id tidak ada.
func (s *OrderService) Delete(id uint) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteItemTree(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.log.WithField("order_id", id).Info("order deleted")
	}
	return found, nil
}

// UpdateStatus mengubah kolom order_status saja, dengan guard transisi.
// Status yang sama dengan sekarang diterima tanpa menulis apa pun.
func (s *OrderService) UpdateStatus(id uint, next string) (bool, error) {
	if !IsOrderStatus(next) {
		return false, validationf("unknown order_status %q", next)
	}

	var order models.Order
	if err := s.db.Select("order_status").Take(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	current := order.OrderStatus
	if next == current {
		return true, nil
	}
	if !CanTransitionOrderStatus(current, next) {
		return true, validationf("illegal order_status transition %s -> %s", current, next)
	}

	// Guard WHERE pada status lama: kalau ada penulis lain menyalip,
	// tidak ada baris yang berubah dan transisi dianggap gagal.
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", id, current).
		Update("order_status", next)
	if res.Error != nil {
		return true, res.Error
	}
	if res.RowsAffected == 0 {
		return true, validationf("order %d changed concurrently, retry", id)
	}

	s.log.WithFields(logrus.Fields{"order_id": id, "from": current, "to": next}).
		Info("order status updated")
	return true, nil
}

// UpdatePaymentStatus mengubah kolom payment_status saja. pending dan
// paid bebas bolak-balik; menulis status yang sama tetap sukses.
func (s *OrderService) UpdatePaymentStatus(id uint, next string) (bool, error) {
	if !IsPaymentStatus(next) {
		return false, validationf("unknown payment_status %q", next)
	}

	var order models.Order
	if err := s.db.Select("payment_status").Take(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if next == order.PaymentStatus {
		return true, nil
	}

	res := s.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_status", next)
	if res.Error != nil {
		return true, res.Error
	}

	s.log.WithFields(logrus.Fields{"order_id": id, "payment_status": next}).
		Info("payment status updated")
	return true, nil
}
