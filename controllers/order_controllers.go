package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/services"
	"github.com/ardiannf/scanorder/utils"
)

type OrderController struct {
	Orders *services.OrderService
	log    logrus.FieldLogger
}

func NewOrderController(orders *services.OrderService, log logrus.FieldLogger) *OrderController {
	return &OrderController{
		Orders: orders,
		log:    log.WithField("component", "order_controller"),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return 0, false
	}
	return uint(id), true
}

// GetAllOrders -> list order ter-agregasi (items + variants), terbaru
// dulu. Dipakai display dapur dan riwayat admin.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail satu order ter-agregasi.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, found, err := oc.Orders.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> customer checkout. Kalau bayar QRIS, response langsung
// membawa payload dinamis + gambar QR untuk ditunjukkan di meja.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, err := oc.Orders.Create(&input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"id": orderID}
	if input.PaymentMethod == models.PaymentMethodQRIS {
		qrString, qrImage, err := buildOrderQRIS(input.TotalAmount)
		if err != nil {
			// Order sudah tersimpan; QRIS bisa diambil ulang lewat
			// GET /order/:id/qris, jadi cukup dicatat.
			oc.log.WithField("order_id", orderID).Warnf("qris generation failed: %v", err)
		} else {
			data["qris_string"] = qrString
			data["qris_image"] = qrImage
			data["display_amount"] = utils.FormatCurrencyIDR(input.TotalAmount)
		}
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", data)
}

// UpdateOrder -> full replace: field skalar diganti dan seluruh subtree
// item/varian ditulis ulang dari request.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	found, err := oc.Orders.Update(id, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", gin.H{"id": id})
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := oc.Orders.Delete(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": id})
}

// UpdateOrderStatus -> hanya kolom order_status, dengan guard transisi.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		OrderStatus string `json:"order_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	found, err := oc.Orders.UpdateStatus(id, req.OrderStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"id":           id,
		"order_status": req.OrderStatus,
	})
}

// UpdatePaymentStatus -> toggle pending/paid dari kasir.
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	found, err := oc.Orders.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", gin.H{
		"id":             id,
		"payment_status": req.PaymentStatus,
	})
}

// GetOrderStatus -> payload ringan untuk polling 5 detikan dari halaman
// customer dan dapur.
func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, found, err := oc.Orders.GetStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	c.JSON(http.StatusOK, status)
}
