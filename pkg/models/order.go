package models

import (
	"time"
)

type OrderStatus string

const (
	StatusNew       OrderStatus = "New"
	StatusPaid      OrderStatus = "Paid"
	StatusCompleted OrderStatus = "Completed"
)

type Order struct {
	ID        int         `xml:"Id" json:"id"`
	Customer  string      `xml:"Customer" json:"customer"`
	CreatedAt time.Time   `xml:"Date" json:"created_at"`
	Status    OrderStatus `xml:"Status" json:"status"`
	Paid      float64     `xml:"Paid" json:"paid"`
	Items     []OrderItem `xml:"Items>OrderItem" json:"items"`
}

// OrderItem is a snapshot of a product at the moment it was added to an
// order. Name and Price are captured copies and do not track later
// product edits.
type OrderItem struct {
	ProductID int     `xml:"ProductId" json:"product_id"`
	Name      string  `xml:"Name" json:"product_name"`
	Price     float64 `xml:"Price" json:"price"`
	Quantity  int     `xml:"Quantity" json:"quantity"`
}

// Total is always recomputed from the item snapshots, never stored.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (o *Order) IsPaid() bool {
	return o.Paid >= o.Total()
}

// Item returns the order's item for the given product, or nil. An order
// holds at most one item per product.
func (o *Order) Item(productID int) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// PayFullAmount settles the order in a single payment. Partial payments
// are not supported.
func (o *Order) PayFullAmount() {
	o.Paid = o.Total()
	o.Status = StatusPaid
}
