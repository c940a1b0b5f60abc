package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pdv-restaurante/pdv-api/models"
	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportItem is an order line as shown in reports
type ReportItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReportOrder is one order in a report
type ReportOrder struct {
	ID        uint            `json:"id"`
	TableID   *uint           `json:"table_id"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Items     []ReportItem    `json:"items"`
}

// OrderReport lists orders newest first with the sum of their totals
type OrderReport struct {
	Orders   []ReportOrder   `json:"orders"`
	TotalSum decimal.Decimal `json:"total_sum"`
}

// ReportService builds date-filtered order reports
type ReportService struct {
	store repository.Store
	log   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(store repository.Store, log *zap.Logger) *ReportService {
	return &ReportService{store: store, log: log.Named("reports")}
}

// ListOrders returns the orders created inside r, newest first
func (s *ReportService) ListOrders(ctx context.Context, r ReportRange) (*OrderReport, error) {
	orders, err := s.store.Orders().FindByCreatedAt(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	names, err := resolveNames(ctx, s.store, orders)
	if err != nil {
		return nil, err
	}

	report := &OrderReport{Orders: make([]ReportOrder, 0, len(orders))}
	sum := decimal.Zero
	for _, o := range orders {
		items := make([]ReportItem, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, ReportItem{
				ProductID: it.ProductID,
				Name:      names.nameFor(it),
				Quantity:  it.Quantity,
				Subtotal:  it.Subtotal,
			})
		}
		report.Orders = append(report.Orders, ReportOrder{
			ID:        o.ID,
			TableID:   o.TableID,
			CreatedAt: o.CreatedAt,
			Total:     o.Total,
			Items:     items,
		})
		sum = sum.Add(o.Total)
	}
	report.TotalSum = sum.Round(2)

	s.log.Debug("order report built", zap.Int("orders", len(report.Orders)), zap.String("total_sum", report.TotalSum.StringFixed(2)))
	return report, nil
}

// DeletedProductName is shown for a line whose product no longer exists and
// which carries no name of its own
func DeletedProductName(productID uint) string {
	return fmt.Sprintf("Produto removido #%d", productID)
}

// productNames resolves display names for order items
type productNames map[uint]string

func (n productNames) nameFor(it models.OrderItem) string {
	if it.ProductName != "" {
		return it.ProductName
	}
	if name, ok := n[it.ProductID]; ok {
		return name
	}
	return DeletedProductName(it.ProductID)
}

// resolveNames looks up the live catalog only for items stored without a name
// snapshot, which happens for rows written before snapshots existed
func resolveNames(ctx context.Context, store repository.Store, orders []models.Order) (productNames, error) {
	var ids []uint
	seen := make(map[uint]bool)
	for _, o := range orders {
		for _, it := range o.Items {
			if it.ProductName == "" && !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
	}

	names := make(productNames, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	products, err := store.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product names: %w", err)
	}
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}
