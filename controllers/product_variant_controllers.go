package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ardiannf/scanorder/models"
	"github.com/ardiannf/scanorder/utils"
)

type ProductVariantController struct {
	DB *gorm.DB
}

func NewProductVariantController(db *gorm.DB) *ProductVariantController {
	return &ProductVariantController{DB: db}
}

type productVariantRequest struct {
	ProductID  uint            `json:"product_id" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	ExtraPrice decimal.Decimal `json:"extra_price"`
}

func (vc *ProductVariantController) GetAllProductVariants(c *gin.Context) {
	var variants []models.ProductVariant
	if err := vc.DB.Find(&variants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of product variants", variants)
}

func (vc *ProductVariantController) GetProductVariantByID(c *gin.Context) {
	id := c.Param("id")

	var variant models.ProductVariant
	if err := vc.DB.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("product variant not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product variant detail", variant)
}

func (vc *ProductVariantController) CreateProductVariant(c *gin.Context) {
	var req productVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	if err := vc.DB.Model(&models.Product{}).Where("id = ?", req.ProductID).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("product not found"))
		return
	}

	variant := models.ProductVariant{
		ProductID:  req.ProductID,
		Name:       req.Name,
		ExtraPrice: req.ExtraPrice,
	}
	if err := vc.DB.Create(&variant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product variant created", variant)
}

func (vc *ProductVariantController) UpdateProductVariant(c *gin.Context) {
	id := c.Param("id")

	var variant models.ProductVariant
	if err := vc.DB.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("product variant not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req productVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	variant.ProductID = req.ProductID
	variant.Name = req.Name
	variant.ExtraPrice = req.ExtraPrice
	if err := vc.DB.Save(&variant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product variant updated", variant)
}

func (vc *ProductVariantController) DeleteProductVariant(c *gin.Context) {
	id := c.Param("id")

	res := vc.DB.Delete(&models.ProductVariant{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product variant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product variant deleted", gin.H{"id": id})
}
