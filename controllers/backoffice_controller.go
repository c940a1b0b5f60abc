package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/logger"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BackofficeController renders the admin HTML pages
type BackofficeController struct {
	catalog *services.CatalogService
	reports *services.ReportService
}

// NewBackofficeController creates a new BackofficeController
func NewBackofficeController(catalog *services.CatalogService, reports *services.ReportService) *BackofficeController {
	return &BackofficeController{catalog: catalog, reports: reports}
}

// parseFormPrice accepts both "2.50" and "2,50"
func parseFormPrice(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, errors.New("informe o preço")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("preço inválido: %q", raw)
	}
	return price, nil
}

// pageError renders a failure on an HTML page. Unexpected errors are logged.
func pageError(c *gin.Context, err error) (int, string) {
	var se *services.ServiceError
	if errors.As(err, &se) {
		return statusFor(se), se.Message
	}
	logUnexpected(c, "backoffice request failed", err)
	return http.StatusInternalServerError, "Erro interno, tente novamente"
}

// Home handles GET / - products and tables
func (bc *BackofficeController) Home(c *gin.Context) {
	products, err := bc.catalog.ListProducts(c)
	if err != nil {
		status, msg := pageError(c, err)
		c.String(status, msg)
		return
	}
	tables, err := bc.catalog.ListTables(c)
	if err != nil {
		status, msg := pageError(c, err)
		c.String(status, msg)
		return
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"Title":    "Produtos",
		"Products": products,
		"Tables":   tables,
	})
}

func renderProductForm(c *gin.Context, status int, title, action, name, price, errMsg string) {
	c.HTML(status, "product_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Name":   name,
		"Price":  price,
		"Error":  errMsg,
	})
}

// NewProductForm handles GET /admin/new
func (bc *BackofficeController) NewProductForm(c *gin.Context) {
	renderProductForm(c, http.StatusOK, "Novo produto", "/admin/new", "", "", "")
}

// CreateProduct handles POST /admin/new
func (bc *BackofficeController) CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	rawPrice := c.PostForm("price")

	price, err := parseFormPrice(rawPrice)
	if err != nil {
		renderProductForm(c, http.StatusBadRequest, "Novo produto", "/admin/new", name, rawPrice, err.Error())
		return
	}

	product, err := bc.catalog.CreateProduct(c, services.ProductInput{Name: name, Price: price})
	if err != nil {
		status, msg := pageError(c, err)
		renderProductForm(c, status, "Novo produto", "/admin/new", name, rawPrice, msg)
		return
	}
	logger.Info(c, "backoffice product created", zap.Uint("product_id", product.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

// EditProductForm handles GET /admin/edit/:id
func (bc *BackofficeController) EditProductForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Produto não encontrado")
		return
	}

	product, err := bc.catalog.GetProduct(c, id)
	if err != nil {
		status, msg := pageError(c, err)
		c.String(status, msg)
		return
	}

	action := fmt.Sprintf("/admin/edit/%d", product.ID)
	renderProductForm(c, http.StatusOK, "Editar produto", action, product.Name, product.Price.StringFixed(2), "")
}

// UpdateProduct handles POST /admin/edit/:id
func (bc *BackofficeController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Produto não encontrado")
		return
	}

	action := fmt.Sprintf("/admin/edit/%d", id)
	name := c.PostForm("name")
	rawPrice := c.PostForm("price")

	price, err := parseFormPrice(rawPrice)
	if err != nil {
		renderProductForm(c, http.StatusBadRequest, "Editar produto", action, name, rawPrice, err.Error())
		return
	}

	if _, err := bc.catalog.UpdateProduct(c, id, services.ProductInput{Name: name, Price: price}); err != nil {
		status, msg := pageError(c, err)
		if status == http.StatusNotFound {
			c.String(status, msg)
			return
		}
		renderProductForm(c, status, "Editar produto", action, name, rawPrice, msg)
		return
	}
	logger.Info(c, "backoffice product updated", zap.Uint("product_id", id))
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteProduct handles GET /admin/delete/:id. A missing product is not an error here.
func (bc *BackofficeController) DeleteProduct(c *gin.Context) {
	if id, ok := parseID(c, "id"); ok {
		err := bc.catalog.DeleteProduct(c, id)
		switch {
		case errors.Is(err, services.ErrNotFound):
			logger.Warn(c, "backoffice delete of a missing product", zap.Uint("product_id", id))
		case err != nil:
			status, msg := pageError(c, err)
			c.String(status, msg)
			return
		default:
			logger.Info(c, "backoffice product deleted", zap.Uint("product_id", id))
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Tables handles GET /admin/tables
func (bc *BackofficeController) Tables(c *gin.Context) {
	bc.renderTables(c, http.StatusOK, "", "")
}

// CreateTable handles POST /admin/tables/new
func (bc *BackofficeController) CreateTable(c *gin.Context) {
	name := c.PostForm("name")
	if _, err := bc.catalog.CreateTable(c, name); err != nil {
		status, msg := pageError(c, err)
		bc.renderTables(c, status, name, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/tables")
}

func (bc *BackofficeController) renderTables(c *gin.Context, status int, name, errMsg string) {
	tables, err := bc.catalog.ListTables(c)
	if err != nil {
		status, msg := pageError(c, err)
		c.String(status, msg)
		return
	}

	c.HTML(status, "tables.html", gin.H{
		"Title":  "Mesas",
		"Tables": tables,
		"Name":   name,
		"Error":  errMsg,
	})
}

// Reports handles GET /admin/reports. Filters that do not parse are ignored.
func (bc *BackofficeController) Reports(c *gin.Context) {
	from := c.Query("from_date")
	to := c.Query("to_date")

	r := services.ParseReportRangeLenient(from, to)
	if (from != "" && r.From == nil) || (to != "" && r.To == nil) {
		logger.Warn(c, "ignoring unparsable report filter", zap.String("from_date", from), zap.String("to_date", to))
	}

	report, err := bc.reports.ListOrders(c, r)
	if err != nil {
		status, msg := pageError(c, err)
		c.String(status, msg)
		return
	}

	c.HTML(http.StatusOK, "reports.html", gin.H{
		"Title":    "Relatórios",
		"Report":   report,
		"FromDate": from,
		"ToDate":   to,
	})
}
