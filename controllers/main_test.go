package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/pdv-restaurante/pdv-api/templates"
	"github.com/pdv-restaurante/pdv-api/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupTestRouter wires every controller onto a fresh database
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	db := testutil.NewTestDB(t)
	store := repository.NewGormStore(db)
	log := zap.NewNop()
	catalog := services.NewCatalogService(store, log)
	orders := services.NewOrderService(store, log)
	reports := services.NewReportService(store, log)

	tmpl, err := templates.Load()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	pc := NewProductController(catalog)
	router.GET("/products", pc.ListProducts)
	router.POST("/products", pc.CreateProduct)
	router.PUT("/products/:id", pc.UpdateProduct)
	router.DELETE("/products/:id", pc.DeleteProduct)

	tc := NewTableController(catalog)
	router.GET("/tables", tc.ListTables)
	router.POST("/tables", tc.CreateTable)

	oc := NewOrderController(orders, reports)
	router.POST("/order", oc.CreateOrder)
	router.GET("/orders", oc.ListOrders)
	router.GET("/orders/:id", oc.GetOrder)

	bc := NewBackofficeController(catalog, reports)
	router.GET("/", bc.Home)
	router.GET("/admin/new", bc.NewProductForm)
	router.POST("/admin/new", bc.CreateProduct)
	router.GET("/admin/edit/:id", bc.EditProductForm)
	router.POST("/admin/edit/:id", bc.UpdateProduct)
	router.GET("/admin/delete/:id", bc.DeleteProduct)
	router.GET("/admin/tables", bc.Tables)
	router.POST("/admin/tables/new", bc.CreateTable)
	router.GET("/admin/reports", bc.Reports)

	return router, db
}
