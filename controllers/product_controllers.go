package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/utils"
)

const productUploadDir = "public/uploads/products"

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Preload("Category").Preload("Variants").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := pc.DB.Preload("Category").Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// bindProductForm membaca form multipart produk (gambar opsional).
func (pc *ProductController) bindProductForm(c *gin.Context, product *models.Product) error {
	basePrice, err := decimal.NewFromString(c.PostForm("base_price"))
	if err != nil {
		return errors.New("invalid base_price")
	}

	product.Name = c.PostForm("name")
	if product.Name == "" {
		return errors.New("name is required")
	}
	product.Description = c.PostForm("description")
	product.BasePrice = basePrice

	if v := c.PostForm("category_id"); v != "" {
		catID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.New("invalid category_id")
		}
		id := uint(catID)
		product.CategoryID = &id
	} else {
		product.CategoryID = nil
	}

	if v := c.PostForm("is_available"); v != "" {
		avail, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid is_available")
		}
		product.IsAvailable = avail
	} else {
		product.IsAvailable = true
	}

	// Upload gambar opsional; isi file tidak divalidasi, hanya disimpan
	// dan path-nya dicatat apa adanya.
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(productUploadDir, 0o755); err != nil {
		return fmt.Errorf("error creating upload directory: %w", err)
	}
	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(productUploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}
	imageURL := "/uploads/products/" + filename
	product.ImageURL = &imageURL
	return nil
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.bindProductForm(c, &product); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product created: %s (%s)", product.Name, utils.FormatCurrencyIDR(product.BasePrice))
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := pc.bindProductForm(c, &product); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct menolak menghapus produk yang sudah pernah dipesan:
// order historis mereferensikan id-nya. Matikan lewat availability.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var referenced int64
	if err := pc.DB.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("product is referenced by existing orders, toggle is_available instead"))
		return
	}

	res := pc.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"id": id})
}

// UpdateAvailability -> toggle soft on/off tanpa menyentuh field lain.
func (pc *ProductController) UpdateAvailability(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := pc.DB.Model(&models.Product{}).Where("id = ?", id).Update("is_available", *req.IsAvailable)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		var count int64
		pc.DB.Model(&models.Product{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Product availability updated", gin.H{
		"id":           id,
		"is_available": *req.IsAvailable,
	})
}
