package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdv-restaurante/pdv-api/models"
	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLine is one requested product and quantity. Any product id is accepted
// here; ids missing from the catalog are reported as PRODUCT_NOT_FOUND.
type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for placing an order.
// An empty item list is accepted and produces a zero total.
type CreateOrderRequest struct {
	TableID *uint       `json:"table_id"`
	Items   []OrderLine `json:"items" binding:"required,dive"`
}

// ReceiptItem is an order line with the product name and unit price
type ReceiptItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderReceipt is the hydrated view of a stored order
type OrderReceipt struct {
	ID        uint            `json:"id"`
	TableID   *uint           `json:"table_id"`
	Items     []ReceiptItem   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderService places orders and reads them back
type OrderService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(store repository.Store, log *zap.Logger) *OrderService {
	return &OrderService{
		store: store,
		log:   log.Named("orders"),
		now:   time.Now,
	}
}

// LineSubtotal is price × quantity rounded to cents
func LineSubtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// OrderTotal sums already rounded subtotals and rounds the result to cents
func OrderTotal(subtotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subtotals {
		total = total.Add(s.Round(2))
	}
	return total.Round(2)
}

// CreateOrder validates every line against the catalog, then writes the order
// and its items in one transaction. Nothing is written if any product is
// missing or any quantity is not positive.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderReceipt, error) {
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, badRequest("VALIDATION_ERROR", "item %d: quantity must be positive", i)
		}
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		products, err := s.resolveProducts(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		order = &models.Order{
			TableID:   req.TableID,
			CreatedAt: s.now().UTC(),
			Items:     make([]models.OrderItem, 0, len(req.Items)),
		}
		subtotals := make([]decimal.Decimal, 0, len(req.Items))
		for _, line := range req.Items {
			product := products[line.ProductID]
			subtotal := LineSubtotal(product.Price, line.Quantity)
			subtotals = append(subtotals, subtotal)
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
				Subtotal:    subtotal,
			})
		}
		order.Total = OrderTotal(subtotals)

		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return newReceipt(order), nil
}

// resolveProducts loads every referenced product. The first id missing from
// the catalog, in request order, is reported as NotFound.
func (s *OrderService) resolveProducts(ctx context.Context, tx repository.Store, lines []OrderLine) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	found, err := tx.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make(map[uint]models.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, productNotFound(id)
		}
	}
	return products, nil
}

// GetOrder returns a stored order exactly as it was placed
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*OrderReceipt, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("ORDER_NOT_FOUND", "order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}

	names, err := resolveNames(ctx, s.store, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	receipt := newReceipt(order)
	for i, it := range order.Items {
		receipt.Items[i].Name = names.nameFor(it)
		if it.ProductName == "" && it.Quantity > 0 {
			// rows without a snapshot only kept the subtotal
			receipt.Items[i].UnitPrice = it.Subtotal.Div(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		}
	}
	return receipt, nil
}

func newReceipt(order *models.Order) *OrderReceipt {
	items := make([]ReceiptItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, ReceiptItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return &OrderReceipt{
		ID:        order.ID,
		TableID:   order.TableID,
		Items:     items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}
