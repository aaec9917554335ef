package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/router"
	"github.com/ardiannf/scanorder/utils"
)

// Skenario lengkap dari kacamata admin + customer: login, susun katalog,
// customer pesan via QRIS, dapur proses, kasir tandai lunas. Semua lewat
// router asli, termasuk middleware auth.

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemVariant{},
	))

	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia-dapur"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "admin",
		Password: string(hashed),
		Role:     "admin",
	}).Error)

	return router.SetupRouter(db)
}

func request(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "rahasia-dapur",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	token, ok := resp.Data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// createProduct mengirim form multipart seperti halaman admin (tanpa
// gambar).
func createProduct(t *testing.T, r *gin.Engine, token, name, basePrice, categoryID string) uint {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", name))
	require.NoError(t, form.WriteField("base_price", basePrice))
	if categoryID != "" {
		require.NoError(t, form.WriteField("category_id", categoryID))
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/product", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	id, ok := resp.Data["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	r := setupApp(t)
	t.Setenv("QRIS_STATIC_PAYLOAD", merchantStaticPayload())

	token := login(t, r)

	// --- admin menyusun katalog --------------------------------------
	w := request(t, r, http.MethodPost, "/api/categories", token, gin.H{"name": "Makanan"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	catID := parseResponse(t, w).Data["id"].(float64)

	productID := createProduct(t, r, token, "Nasi Goreng", "12000",
		strconv.Itoa(int(catID)))

	w = request(t, r, http.MethodPost, "/api/product-variant", token, gin.H{
		"product_id":  productID,
		"name":        "Extra Telur",
		"extra_price": 3000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Katalog kelihatan tanpa login
	w = request(t, r, http.MethodGet, "/api/product", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// --- customer memesan via QRIS ------------------------------------
	w = request(t, r, http.MethodPost, "/api/order", "", gin.H{
		"table_number":   12,
		"customer_name":  "Sari",
		"payment_method": "qris",
		"total_amount":   30000,
		"items": []gin.H{
			{
				"product_id":     productID,
				"quantity":       2,
				"price_at_order": 12000,
				"variants": []gin.H{
					{"variant_name": "Extra Telur", "variant_price": 3000},
				},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := parseResponse(t, w)
	orderID := strconv.Itoa(int(created.Data["id"].(float64)))
	assert.Contains(t, created.Data["qris_string"], "540530000")
	assert.Equal(t, "Rp 30.000", created.Data["display_amount"])

	// Customer polling status tanpa login
	w = request(t, r, http.MethodGet, "/api/order/"+orderID+"/getStatus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "pending", status["order_status"])
	assert.Equal(t, "pending", status["payment_status"])

	// --- mutasi butuh token -------------------------------------------
	w = request(t, r, http.MethodPut, "/api/order/"+orderID+"/status", "",
		gin.H{"order_status": "processing"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// --- dapur dan kasir bekerja --------------------------------------
	w = request(t, r, http.MethodPut, "/api/order/"+orderID+"/status", token,
		gin.H{"order_status": "processing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = request(t, r, http.MethodPut, "/api/order/"+orderID+"/updatePayment", token,
		gin.H{"payment_status": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = request(t, r, http.MethodPut, "/api/order/"+orderID+"/status", token,
		gin.H{"order_status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Lompatan mundur ditolak
	w = request(t, r, http.MethodPut, "/api/order/"+orderID+"/status", token,
		gin.H{"order_status": "processing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, r, http.MethodGet, "/api/order/"+orderID+"/getStatus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "completed", status["order_status"])
	assert.Equal(t, "paid", status["payment_status"])
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	r := setupApp(t)
	token := login(t, r)

	// Admin boleh membuat akun dapur
	w := request(t, r, http.MethodPost, "/api/user", token, gin.H{
		"username": "dapur1",
		"password": "password-dapur",
		"role":     "kitchen",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Akun dapur tidak boleh mengelola user
	w = request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "dapur1",
		"password": "password-dapur",
	})
	require.Equal(t, http.StatusOK, w.Code)
	kitchenToken := parseResponse(t, w).Data["token"].(string)

	w = request(t, r, http.MethodGet, "/api/user", kitchenToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Tapi tetap bisa mengubah status order
	w = request(t, r, http.MethodPost, "/api/order", "", gin.H{
		"table_number":   1,
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(t, r, http.MethodPut, "/api/order/1/status", kitchenToken,
		gin.H{"order_status": "processing"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGlobalRateLimiterCapsBursts(t *testing.T) {
	r := setupApp(t)

	// Limit 50 req/detik per IP; burst 60 dari satu IP harus mulai
	// mentok 429 di route yang terdaftar di router.
	codes := make(map[int]int)
	for i := 0; i < 60; i++ {
		w := request(t, r, http.MethodGet, "/ping", "", nil)
		codes[w.Code]++
	}
	assert.GreaterOrEqual(t, codes[http.StatusOK], 50)
	assert.Positive(t, codes[http.StatusTooManyRequests])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupApp(t)

	w := request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "tidak-ada",
		"password": "apapun",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func merchantStaticPayload() string {
	return "000201" + "010211" +
		"26370016ID.CO.EXAMPLE.WWW0215ID1020000000001" +
		"52045812" + "5303360" +
		"5802ID" + "5913Warung Makmur" + "6007Jakarta" +
		"6304" + "ABCD"
}
