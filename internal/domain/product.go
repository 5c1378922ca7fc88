package domain

import "time"

// Product is an item of the demo storefront catalog.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InStock reports whether quantity units can be taken from stock.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}
