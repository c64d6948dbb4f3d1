package store

import (
	"github.com/example/warehouse/pkg/models"
)

// Store owns every Product and Order in the system and is the only
// place identifiers are minted. Identifiers increase monotonically per
// entity type and are never reused within a process run.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	orders   []*models.Order
	products []*models.Product

	nextOrderID   int
	nextProductID int
}

func New() *Store {
	return &Store{
		nextOrderID:   1,
		nextProductID: 1,
	}
}

func (s *Store) Orders() []*models.Order {
	return s.orders
}

func (s *Store) Products() []*models.Product {
	return s.products
}

// AddOrder assigns the next order identifier and appends the order.
func (s *Store) AddOrder(order *models.Order) {
	order.ID = s.nextOrderID
	s.nextOrderID++
	s.orders = append(s.orders, order)
}

// UpdateOrder replaces the stored order with the matching identifier.
// Unknown identifiers are ignored.
func (s *Store) UpdateOrder(order *models.Order) {
	for i, o := range s.orders {
		if o.ID == order.ID {
			s.orders[i] = order
			return
		}
	}
}

func (s *Store) GetOrder(id int) (*models.Order, bool) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// DeleteOrder removes the order with the given identifier and reports
// whether it was present. Its identifier is not reused.
func (s *Store) DeleteOrder(id int) bool {
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true
		}
	}
	return false
}

// AddProduct assigns the next product identifier and appends the
// product.
func (s *Store) AddProduct(product *models.Product) {
	product.ID = s.nextProductID
	s.nextProductID++
	s.products = append(s.products, product)
}

// UpdateProduct replaces the stored product with the matching
// identifier. Unknown identifiers are ignored.
func (s *Store) UpdateProduct(product *models.Product) {
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = product
			return
		}
	}
}

func (s *Store) GetProduct(id int) (*models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
