package routes

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/config"
	"github.com/pdv-restaurante/pdv-api/controllers"
	"github.com/pdv-restaurante/pdv-api/logger"
	"github.com/pdv-restaurante/pdv-api/middleware"
	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/pdv-restaurante/pdv-api/templates"
	"gorm.io/gorm"
)

// corsConfig allows every method and header for the configured origins
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Setup installs middleware, templates and every catalog, order and backoffice route
func Setup(router *gin.Engine, cfg *config.Config, db *gorm.DB) error {
	controllers.RegisterValidators()

	tmpl, err := templates.Load()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	store := repository.NewGormStore(db)
	catalog := services.NewCatalogService(store, logger.Log)
	orders := services.NewOrderService(store, logger.Log)
	reports := services.NewReportService(store, logger.Log)

	products := controllers.NewProductController(catalog)
	router.GET("/products", products.ListProducts)
	router.POST("/products", products.CreateProduct)
	router.PUT("/products/:id", products.UpdateProduct)
	router.DELETE("/products/:id", products.DeleteProduct)

	tables := controllers.NewTableController(catalog)
	router.GET("/tables", tables.ListTables)
	router.POST("/tables", tables.CreateTable)

	orderController := controllers.NewOrderController(orders, reports)
	router.POST("/order", orderController.CreateOrder)
	router.GET("/orders", orderController.ListOrders)
	router.GET("/orders/:id", orderController.GetOrder)

	backoffice := controllers.NewBackofficeController(catalog, reports)
	router.GET("/", backoffice.Home)
	admin := router.Group("/admin")
	{
		admin.GET("/new", backoffice.NewProductForm)
		admin.POST("/new", backoffice.CreateProduct)
		admin.GET("/edit/:id", backoffice.EditProductForm)
		admin.POST("/edit/:id", backoffice.UpdateProduct)
		admin.GET("/delete/:id", backoffice.DeleteProduct)
		admin.GET("/tables", backoffice.Tables)
		admin.POST("/tables/new", backoffice.CreateTable)
		admin.GET("/reports", backoffice.Reports)
	}

	return nil
}
