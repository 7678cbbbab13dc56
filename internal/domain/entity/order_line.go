package entity

import "github.com/shopspring/decimal"

// OrderLine representa una línea de una orden de venta.
// UnitPrice es un snapshot del precio al momento de la orden, no una
// referencia viva al catálogo. Inmutable una vez creada junto a su orden.
// Invariante: LineTotal = UnitPrice*Quantity - DiscountAmount.
type OrderLine struct {
	ID             string
	OrderID        string
	ProductID      string
	Quantity       int64 // entero positivo
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	LineTotal      decimal.Decimal
}
