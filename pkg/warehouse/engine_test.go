package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/warehouse/pkg/models"
	"github.com/example/warehouse/pkg/store"
	"github.com/example/warehouse/pkg/warehouse"
)

func setup(t *testing.T) (*warehouse.Engine, *store.Store) {
	t.Helper()
	st := store.New()
	return warehouse.New(st, zap.NewNop()), st
}

func addProduct(st *store.Store, name string, price float64, stock int) *models.Product {
	p := &models.Product{Name: name, Price: price, Stock: stock}
	st.AddProduct(p)
	return p
}

func newOrder(st *store.Store, customer string) *models.Order {
	o := &models.Order{Customer: customer, Status: models.StatusNew}
	st.AddOrder(o)
	return o
}

func TestValidateStock(t *testing.T) {
	engine, st := setup(t)

	t.Run("Zero stock fails for every quantity", func(t *testing.T) {
		p := addProduct(st, "Laptop", 50000, 0)
		for n := 1; n <= 5; n++ {
			ok, msg := engine.ValidateStock(p, n)
			assert.False(t, ok)
			assert.Contains(t, msg, "out of stock")
		}
	})

	t.Run("Non-positive quantity fails", func(t *testing.T) {
		p := addProduct(st, "Mouse", 1500, 50)
		ok, _ := engine.ValidateStock(p, 0)
		assert.False(t, ok)
		ok, _ = engine.ValidateStock(p, -1)
		assert.False(t, ok)
	})

	t.Run("Succeeds up to current stock", func(t *testing.T) {
		p := addProduct(st, "Keyboard", 3000, 3)
		for n := 1; n <= 3; n++ {
			ok, msg := engine.ValidateStock(p, n)
			assert.True(t, ok, msg)
		}
		ok, msg := engine.ValidateStock(p, 4)
		assert.False(t, ok)
		assert.Contains(t, msg, "available: 3")
	})
}

func TestAddProductToOrder(t *testing.T) {
	t.Run("Success snapshots the product", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Laptop", 50000, 10)
		order := newOrder(st, "Alice")

		ok, msg := engine.AddProductToOrder(order, p, 1)

		require.True(t, ok, msg)
		require.Len(t, order.Items, 1)
		item := order.Items[0]
		assert.Equal(t, p.ID, item.ProductID)
		assert.Equal(t, "Laptop", item.Name)
		assert.Equal(t, 50000.0, item.Price)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, 10, p.Stock, "adding never touches stock")
	})

	t.Run("Same product merges quantities", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Mouse", 1500, 10)
		order := newOrder(st, "Bob")

		ok, _ := engine.AddProductToOrder(order, p, 2)
		require.True(t, ok)
		ok, _ = engine.AddProductToOrder(order, p, 3)
		require.True(t, ok)

		require.Len(t, order.Items, 1)
		assert.Equal(t, 5, order.Items[0].Quantity)
	})

	t.Run("Merge respects cumulative stock ceiling", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Keyboard", 3000, 5)
		order := newOrder(st, "Bob")

		ok, _ := engine.AddProductToOrder(order, p, 4)
		require.True(t, ok)

		ok, msg := engine.AddProductToOrder(order, p, 2)
		assert.False(t, ok)
		assert.Contains(t, msg, "already in order: 4")
		assert.Equal(t, 4, order.Items[0].Quantity, "failed add leaves the item unchanged")
	})

	t.Run("Snapshot does not track later product edits", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Laptop", 50000, 10)
		order := newOrder(st, "Alice")

		ok, _ := engine.AddProductToOrder(order, p, 1)
		require.True(t, ok)

		p.Name = "Laptop Pro"
		p.Price = 99000

		assert.Equal(t, "Laptop", order.Items[0].Name)
		assert.Equal(t, 50000.0, order.Items[0].Price)
		assert.Equal(t, 50000.0, order.Total())
	})

	t.Run("Fails when stock exhausted", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Laptop", 50000, 0)
		order := newOrder(st, "Alice")

		ok, _ := engine.AddProductToOrder(order, p, 1)
		assert.False(t, ok)
		assert.Empty(t, order.Items)
	})
}

func TestPayOrder(t *testing.T) {
	t.Run("Empty order always fails", func(t *testing.T) {
		engine, st := setup(t)
		order := newOrder(st, "Alice")

		ok, msg := engine.PayOrder(order)

		assert.False(t, ok)
		assert.Contains(t, msg, "empty order")
		assert.Equal(t, models.StatusNew, order.Status)
		assert.Equal(t, 0.0, order.Paid)
	})

	t.Run("Success settles in full", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Laptop", 50000, 10)
		order := newOrder(st, "Alice")
		ok, _ := engine.AddProductToOrder(order, p, 2)
		require.True(t, ok)

		ok, _ = engine.PayOrder(order)

		require.True(t, ok)
		assert.Equal(t, order.Total(), order.Paid)
		assert.Equal(t, 100000.0, order.Paid)
		assert.Equal(t, models.StatusPaid, order.Status)
		assert.True(t, order.IsPaid())
	})

	t.Run("Already paid", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Mouse", 1500, 10)
		order := newOrder(st, "Bob")
		engine.AddProductToOrder(order, p, 1)
		ok, _ := engine.PayOrder(order)
		require.True(t, ok)

		ok, msg := engine.PayOrder(order)
		assert.False(t, ok)
		assert.Contains(t, msg, "already paid")
	})

	t.Run("Already completed", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Mouse", 1500, 10)
		order := newOrder(st, "Bob")
		engine.AddProductToOrder(order, p, 1)
		engine.PayOrder(order)
		ok, _ := engine.ShipOrder(order)
		require.True(t, ok)

		ok, msg := engine.PayOrder(order)
		assert.False(t, ok)
		assert.Contains(t, msg, "already completed")
	})

	t.Run("Zero-value order fails", func(t *testing.T) {
		engine, st := setup(t)
		free := addProduct(st, "Flyer", 0, 100)
		order := newOrder(st, "Bob")
		order.Items = append(order.Items, models.OrderItem{
			ProductID: free.ID, Name: free.Name, Price: 0, Quantity: 1,
		})

		ok, msg := engine.PayOrder(order)
		assert.False(t, ok)
		assert.Contains(t, msg, "greater than zero")
		assert.Equal(t, models.StatusNew, order.Status)
	})
}

func TestShipOrder(t *testing.T) {
	t.Run("Unpaid order fails", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Laptop", 50000, 10)
		order := newOrder(st, "Alice")
		engine.AddProductToOrder(order, p, 1)

		ok, msg := engine.ShipOrder(order)

		assert.False(t, ok)
		assert.Contains(t, msg, "not paid")
		assert.Equal(t, 10, p.Stock)
		assert.Equal(t, models.StatusNew, order.Status)
	})

	t.Run("Success decrements every item's stock", func(t *testing.T) {
		engine, st := setup(t)
		laptop := addProduct(st, "Laptop", 50000, 10)
		mouse := addProduct(st, "Mouse", 1500, 50)
		order := newOrder(st, "Alice")
		engine.AddProductToOrder(order, laptop, 2)
		engine.AddProductToOrder(order, mouse, 3)
		ok, _ := engine.PayOrder(order)
		require.True(t, ok)

		ok, _ = engine.ShipOrder(order)

		require.True(t, ok)
		assert.Equal(t, 8, laptop.Stock)
		assert.Equal(t, 47, mouse.Stock)
		assert.Equal(t, models.StatusCompleted, order.Status)
	})

	t.Run("Already shipped", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Mouse", 1500, 10)
		order := newOrder(st, "Bob")
		engine.AddProductToOrder(order, p, 1)
		engine.PayOrder(order)
		ok, _ := engine.ShipOrder(order)
		require.True(t, ok)

		ok, msg := engine.ShipOrder(order)
		assert.False(t, ok)
		assert.Contains(t, msg, "already shipped")
		assert.Equal(t, 9, p.Stock, "stock decremented exactly once")
	})

	t.Run("No partial decrement on stock violation", func(t *testing.T) {
		engine, st := setup(t)
		laptop := addProduct(st, "Laptop", 50000, 10)
		mouse := addProduct(st, "Mouse", 1500, 50)
		order := newOrder(st, "Alice")
		engine.AddProductToOrder(order, laptop, 2)
		engine.AddProductToOrder(order, mouse, 3)
		ok, _ := engine.PayOrder(order)
		require.True(t, ok)

		// Stock of the second item collapses between payment and
		// shipment.
		mouse.Stock = 1

		ok, msg := engine.ShipOrder(order)

		assert.False(t, ok)
		assert.Contains(t, msg, "available: 1")
		assert.Equal(t, 10, laptop.Stock, "first item untouched")
		assert.Equal(t, 1, mouse.Stock)
		assert.Equal(t, models.StatusPaid, order.Status)
	})

	t.Run("Vanished product is a business failure", func(t *testing.T) {
		engine, st := setup(t)
		laptop := addProduct(st, "Laptop", 50000, 10)
		order := newOrder(st, "Alice")
		engine.AddProductToOrder(order, laptop, 1)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: 999, Name: "Ghost", Price: 10, Quantity: 1,
		})
		order.Paid = order.Total()

		ok, msg := engine.ShipOrder(order)

		assert.False(t, ok)
		assert.Contains(t, msg, "no longer in the catalog")
		assert.Equal(t, 10, laptop.Stock)
		assert.NotEqual(t, models.StatusCompleted, order.Status)
	})

	t.Run("Paid amount gates shipment, not status", func(t *testing.T) {
		engine, st := setup(t)
		p := addProduct(st, "Mouse", 1500, 10)
		order := newOrder(st, "Bob")
		engine.AddProductToOrder(order, p, 2)

		// Paid set externally without a status transition.
		order.Paid = order.Total()

		ok, _ := engine.ShipOrder(order)
		require.True(t, ok)
		assert.Equal(t, models.StatusCompleted, order.Status)
		assert.Equal(t, 8, p.Stock)
	})
}

func TestOrderLifecycle(t *testing.T) {
	engine, st := setup(t)
	p := addProduct(st, "Laptop", 50000, 10)
	order := newOrder(st, "Alice")

	ok, msg := engine.AddProductToOrder(order, p, 1)
	require.True(t, ok, msg)
	require.Len(t, order.Items, 1)
	assert.Equal(t, p.ID, order.Items[0].ProductID)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 50000.0, order.Items[0].Price)
	assert.Equal(t, 10, p.Stock)

	ok, msg = engine.PayOrder(order)
	require.True(t, ok, msg)
	assert.Equal(t, 50000.0, order.Paid)
	assert.Equal(t, models.StatusPaid, order.Status)

	ok, msg = engine.ShipOrder(order)
	require.True(t, ok, msg)
	assert.Equal(t, 9, p.Stock)
	assert.Equal(t, models.StatusCompleted, order.Status)
}
