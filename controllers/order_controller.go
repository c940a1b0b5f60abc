package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/services"
)

// OrderController places orders and serves order history
type OrderController struct {
	orders  *services.OrderService
	reports *services.ReportService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService, reports *services.ReportService) *OrderController {
	return &OrderController{orders: orders, reports: reports}
}

// CreateOrder handles POST /order - prices every line from the catalog and stores the order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	receipt, err := oc.orders.CreateOrder(c, &req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// GetOrder handles GET /orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		errorJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	receipt, err := oc.orders.GetOrder(c, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ListOrders handles GET /orders?from_date=&to_date= - orders newest first with their total sum
func (oc *OrderController) ListOrders(c *gin.Context) {
	r, err := services.ParseReportRange(c.Query("from_date"), c.Query("to_date"))
	if err != nil {
		respondError(c, err, "Invalid date filter")
		return
	}

	report, err := oc.reports.ListOrders(c, r)
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, report)
}
