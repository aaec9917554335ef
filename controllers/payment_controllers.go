package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/qris"
	"github.com/ardiannf/scanorder/services"
	"github.com/ardiannf/scanorder/utils"
)

// PaymentController melayani pembayaran QRIS: payload statis merchant
// dari env diubah menjadi payload dinamis terikat nominal order.
type PaymentController struct {
	Orders *services.OrderService
	log    logrus.FieldLogger
}

func NewPaymentController(orders *services.OrderService, log logrus.FieldLogger) *PaymentController {
	return &PaymentController{
		Orders: orders,
		log:    log.WithField("component", "payment_controller"),
	}
}

// buildOrderQRIS merakit payload dinamis + PNG base64 untuk satu
// nominal. Nominal QRIS harus rupiah bulat.
func buildOrderQRIS(total decimal.Decimal) (string, string, error) {
	static := os.Getenv("QRIS_STATIC_PAYLOAD")
	if static == "" {
		return "", "", errors.New("QRIS_STATIC_PAYLOAD is not configured")
	}
	if !total.Equal(total.Truncate(0)) {
		return "", "", errors.New("qris amount must be a whole rupiah value")
	}

	payload, err := qris.DynamicPayload(static, total.IntPart())
	if err != nil {
		return "", "", err
	}

	png, err := qris.Image(payload, 512)
	if err != nil {
		return "", "", err
	}
	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return payload, image, nil
}

// GetOrderQRIS -> regenerasi kode pembayaran untuk order QRIS yang
// masih pending (halaman pembayaran di-refresh, dsb).
func (pc *PaymentController) GetOrderQRIS(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, found, err := pc.Orders.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	if order.PaymentMethod != models.PaymentMethodQRIS {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order is not a qris order"))
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order is already paid"))
		return
	}

	qrString, qrImage, err := buildOrderQRIS(order.TotalAmount)
	if err != nil {
		if errors.Is(err, qris.ErrNotStaticPayload) || errors.Is(err, qris.ErrCountryCodeMissing) {
			pc.log.Errorf("invalid QRIS_STATIC_PAYLOAD: %v", err)
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "QRIS payment code", gin.H{
		"order_id":       id,
		"qris_string":    qrString,
		"qris_image":     qrImage,
		"display_amount": utils.FormatCurrencyIDR(order.TotalAmount),
	})
}
