package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/shopspring/decimal"
)

// ProductRequest represents the request body for creating or updating a product.
// The price may be sent as a JSON number or a decimal string.
type ProductRequest struct {
	Name  string           `json:"name" binding:"required,notblank"`
	Price *decimal.Decimal `json:"price" binding:"required"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{Name: r.Name, Price: *r.Price}
}

// ProductController serves the product catalog
type ProductController struct {
	catalog *services.CatalogService
}

// NewProductController creates a new ProductController
func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// ListProducts handles GET /products - lists products sorted by name
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.catalog.ListProducts(c)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /products
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	product, err := pc.catalog.CreateProduct(c, req.input())
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		errorJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	product, err := pc.catalog.UpdateProduct(c, id, req.input())
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		errorJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	if err := pc.catalog.DeleteProduct(c, id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
