package entity

import "time"

// Customer representa un cliente al que se le registran ventas.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
