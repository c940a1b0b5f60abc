package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/services"
)

// TableRequest represents the request body for creating a table
type TableRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// TableController serves the dining tables
type TableController struct {
	catalog *services.CatalogService
}

// NewTableController creates a new TableController
func NewTableController(catalog *services.CatalogService) *TableController {
	return &TableController{catalog: catalog}
}

// ListTables handles GET /tables
func (tc *TableController) ListTables(c *gin.Context) {
	tables, err := tc.catalog.ListTables(c)
	if err != nil {
		respondError(c, err, "Failed to retrieve tables")
		return
	}
	c.JSON(http.StatusOK, tables)
}

// CreateTable handles POST /tables
func (tc *TableController) CreateTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	table, err := tc.catalog.CreateTable(c, req.Name)
	if err != nil {
		respondError(c, err, "Failed to create table")
		return
	}
	c.JSON(http.StatusCreated, table)
}
