package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de venta.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// IsValidOrderStatus indica si s es un estado de orden conocido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order representa la cabecera de una orden de venta (serie "DH").
// Invariante: TotalAmount = Subtotal - DiscountAmount + TaxAmount al crearse.
// Se crea ya pagada: PaidAmount = TotalAmount y Status = delivered (no hay
// flujo de pago parcial en este dominio). Nunca se elimina físicamente.
type Order struct {
	ID             string
	Code           string // consecutivo legible, ej. DH00001
	CustomerID     string // opcional (venta de mostrador sin cliente)
	UserID         string // usuario/vendedor que registró la orden
	OrderedAt      time.Time
	Status         string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	PaymentMethod  string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
