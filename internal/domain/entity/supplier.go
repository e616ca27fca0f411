package entity

import "time"

// Supplier representa un proveedor al que se le generan órdenes de compra.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT/RUT, opcional
	Phone     string
	Email     string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
