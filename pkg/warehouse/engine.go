package warehouse

import (
	"fmt"

	"github.com/example/warehouse/pkg/models"
	"github.com/example/warehouse/pkg/store"
	"go.uber.org/zap"
)

// Engine enforces the stock and order-lifecycle rules. Every operation
// reports its outcome as (ok, message): business failures are results
// for the caller to display, never errors, and a failed operation
// leaves all state unchanged.
//
// Order lifecycle: New -> Paid -> Completed, no reverse transitions.
// Stock is only a ceiling check while building an order; it is
// decremented solely at shipment.
type Engine struct {
	store  *store.Store
	logger *zap.Logger
}

func New(st *store.Store, logger *zap.Logger) *Engine {
	return &Engine{store: st, logger: logger}
}

// ValidateStock checks whether required units of the product can be
// allocated from current stock.
func (e *Engine) ValidateStock(product *models.Product, required int) (bool, string) {
	if required <= 0 {
		return false, "quantity must be positive"
	}
	if product.Stock <= 0 {
		return false, fmt.Sprintf("product %q is out of stock", product.Name)
	}
	if product.Stock < required {
		return false, fmt.Sprintf("insufficient stock of %q, available: %d", product.Name, product.Stock)
	}
	return true, ""
}

// AddProductToOrder puts quantity units of the product on the order,
// merging into the existing item when the order already holds this
// product. The item snapshots the product's current name and price.
// Stock is not reserved or decremented here.
func (e *Engine) AddProductToOrder(order *models.Order, product *models.Product, quantity int) (bool, string) {
	if ok, msg := e.ValidateStock(product, quantity); !ok {
		return false, msg
	}

	if item := order.Item(product.ID); item != nil {
		if product.Stock < item.Quantity+quantity {
			return false, fmt.Sprintf("insufficient stock of %q, available: %d, already in order: %d",
				product.Name, product.Stock, item.Quantity)
		}
		item.Quantity += quantity
	} else {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
	}

	e.logger.Info("Product added to order",
		zap.Int("order_id", order.ID),
		zap.Int("product_id", product.ID),
		zap.Int("quantity", quantity))

	return true, fmt.Sprintf("added %q to order", product.Name)
}

// PayOrder settles the order in full and moves it to Paid.
func (e *Engine) PayOrder(order *models.Order) (bool, string) {
	if order.Status == models.StatusCompleted {
		return false, "order already completed"
	}
	if order.Status == models.StatusPaid {
		return false, "order already paid"
	}
	if len(order.Items) == 0 {
		return false, "cannot pay an empty order"
	}
	if order.Total() <= 0 {
		return false, "order total must be greater than zero"
	}

	order.PayFullAmount()

	e.logger.Info("Order paid",
		zap.Int("order_id", order.ID),
		zap.Float64("total", order.Total()))

	return true, fmt.Sprintf("order paid, total: %.2f", order.Total())
}

// ShipOrder finalizes a fully paid order, decrementing stock for every
// item and moving the order to Completed. The paid amount is what
// gates shipment, not the status field.
//
// The check pass and the commit pass are separate: either every item
// still exists with sufficient stock and all decrements happen, or the
// first violation aborts the operation with no stock touched.
func (e *Engine) ShipOrder(order *models.Order) (bool, string) {
	if !order.IsPaid() {
		return false, "order is not paid"
	}
	if order.Status == models.StatusCompleted {
		return false, "order already shipped"
	}

	for _, item := range order.Items {
		product, ok := e.store.GetProduct(item.ProductID)
		if !ok {
			return false, fmt.Sprintf("product %q is no longer in the catalog", item.Name)
		}
		if product.Stock < item.Quantity {
			return false, fmt.Sprintf("insufficient stock of %q, available: %d, required: %d",
				item.Name, product.Stock, item.Quantity)
		}
	}

	for _, item := range order.Items {
		product, _ := e.store.GetProduct(item.ProductID)
		product.Stock -= item.Quantity
		e.store.UpdateProduct(product)
	}
	order.Status = models.StatusCompleted

	e.logger.Info("Order shipped",
		zap.Int("order_id", order.ID),
		zap.Int("item_count", len(order.Items)))

	return true, "order shipped"
}
