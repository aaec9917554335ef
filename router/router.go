package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ardiannf/scanorder/controllers"
	"github.com/ardiannf/scanorder/middlewares"
	"github.com/ardiannf/scanorder/services"
	"github.com/ardiannf/scanorder/utils"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 request per detik per IP, dipasang sebelum route didaftarkan
	// supaya kena ke semua handler
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Gambar produk hasil upload
	r.Static("/uploads", "public/uploads")

	orderSvc := services.NewOrderService(db, utils.InfoLogger)

	orderCtrl := controllers.NewOrderController(orderSvc, utils.InfoLogger)
	paymentCtrl := controllers.NewPaymentController(orderSvc, utils.InfoLogger)
	productCtrl := controllers.NewProductController(db)
	variantCtrl := controllers.NewProductVariantController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	userCtrl := controllers.NewUserController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Login dibatasi ketat
	authGroup := api.Group("/auth")
	authGroup.Use(middlewares.NewStrictRateLimiter())
	{
		authGroup.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      PUBLIC (flow customer)
	// ----------------------------------------------------------------
	api.GET("/categories", categoryCtrl.GetAllCategories)
	api.GET("/categories/:id", categoryCtrl.GetCategoryByID)
	api.GET("/product", productCtrl.GetAllProducts)
	api.GET("/product/:id", productCtrl.GetProductByID)
	api.GET("/product-variant", variantCtrl.GetAllProductVariants)
	api.GET("/product-variant/:id", variantCtrl.GetProductVariantByID)

	api.POST("/order", orderCtrl.CreateOrder)
	api.GET("/order", orderCtrl.GetAllOrders)
	api.GET("/order/:id", orderCtrl.GetOrderByID)
	api.GET("/order/:id/getStatus", orderCtrl.GetOrderStatus)
	api.GET("/order/:id/qris", paymentCtrl.GetOrderQRIS)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED (admin & dapur)
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.PUT("/order/:id", orderCtrl.UpdateOrder)
		auth.DELETE("/order/:id", orderCtrl.DeleteOrder)
		auth.PUT("/order/:id/status", orderCtrl.UpdateOrderStatus)
		auth.PUT("/order/:id/updatePayment", orderCtrl.UpdatePaymentStatus)

		auth.POST("/product", productCtrl.CreateProduct)
		auth.PUT("/product/:id", productCtrl.UpdateProduct)
		auth.DELETE("/product/:id", productCtrl.DeleteProduct)
		auth.PUT("/product/:id/availability", productCtrl.UpdateAvailability)

		auth.POST("/product-variant", variantCtrl.CreateProductVariant)
		auth.PUT("/product-variant/:id", variantCtrl.UpdateProductVariant)
		auth.DELETE("/product-variant/:id", variantCtrl.DeleteProductVariant)

		auth.POST("/categories", categoryCtrl.CreateCategory)
		auth.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		auth.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		// Manajemen user khusus admin
		admin := auth.Group("/user")
		admin.Use(middlewares.RequireRole("admin"))
		{
			admin.GET("", userCtrl.GetAllUsers)
			admin.GET("/:id", userCtrl.GetUserByID)
			admin.POST("", userCtrl.CreateUser)
			admin.PUT("/:id", userCtrl.UpdateUser)
			admin.DELETE("/:id", userCtrl.DeleteUser)
		}
	}

	return r
}
