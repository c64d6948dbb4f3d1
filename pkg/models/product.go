package models

type Product struct {
	ID    int     `xml:"Id" json:"id"`
	Name  string  `xml:"Name" json:"name"`
	Price float64 `xml:"Price" json:"price"`
	Stock int     `xml:"Stock" json:"stock"`
}
