package domain

import "time"

// Product is a catalogue entry referenced by order items.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	DateCreated  time.Time `json:"dateCreated"`
}
