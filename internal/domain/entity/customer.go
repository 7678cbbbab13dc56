package entity

import "time"

// Customer representa un cliente (serie de códigos "KH").
type Customer struct {
	ID        string
	Code      string // consecutivo legible, ej. KH001
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
