package repository

import (
	"time"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// DemoCatalog returns the storefront products used when no database is configured.
// The same rows are inserted by the seed migration.
func DemoCatalog() []domain.Product {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "1", Name: "Wireless Bluetooth Headphones", Description: "Premium noise-canceling headphones with 40-hour battery life and crystal-clear audio.", Price: 199.99, Category: "Electronics", Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400", Stock: 50, Rating: 4.8},
		{ID: "2", Name: "Smart Watch Pro", Description: "Advanced smartwatch with health monitoring, GPS, and 7-day battery life.", Price: 349.99, Category: "Electronics", Image: "https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=400", Stock: 35, Rating: 4.6},
		{ID: "3", Name: "Minimalist Desk Lamp", Description: "Modern LED desk lamp with adjustable brightness and color temperature.", Price: 79.99, Category: "Home", Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=400", Stock: 100, Rating: 4.5},
		{ID: "4", Name: "Mechanical Keyboard RGB", Description: "Premium mechanical keyboard with customizable RGB lighting and tactile switches.", Price: 149.99, Category: "Electronics", Image: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=400", Stock: 75, Rating: 4.7},
		{ID: "5", Name: "Ergonomic Office Chair", Description: "Full mesh ergonomic chair with lumbar support and adjustable armrests.", Price: 399.99, Category: "Furniture", Image: "https://images.unsplash.com/photo-1580480055273-228ff5388ef8?w=400", Stock: 20, Rating: 4.4},
		{ID: "6", Name: "Portable Power Bank", Description: "20000mAh fast-charging power bank with USB-C and wireless charging.", Price: 59.99, Category: "Electronics", Image: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=400", Stock: 200, Rating: 4.3},
		{ID: "7", Name: "Canvas Backpack", Description: "Durable canvas backpack with laptop compartment and water-resistant coating.", Price: 89.99, Category: "Fashion", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400", Stock: 60, Rating: 4.6},
		{ID: "8", Name: "Smart Home Speaker", Description: "Voice-controlled smart speaker with premium sound and home automation.", Price: 129.99, Category: "Electronics", Image: "https://images.unsplash.com/photo-1543512214-318c7553f230?w=400", Stock: 80, Rating: 4.5},
	}
	for i := range products {
		products[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	return products
}
