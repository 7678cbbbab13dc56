package dto

import "github.com/shopspring/decimal"

// SubmitOrderRequest body para POST /api/orders.
// Subtotal y TotalAmount son opcionales: si vienen, se verifican contra el
// recálculo del servidor (tolerancia 0.01) y se rechazan si divergen.
type SubmitOrderRequest struct {
	CustomerID     string             `json:"customer_id,omitempty"`
	Items          []OrderItemRequest `json:"items"`
	Subtotal       *decimal.Decimal   `json:"subtotal,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount,omitempty"`
	TaxAmount      decimal.Decimal    `json:"tax_amount,omitempty"`
	TotalAmount    *decimal.Decimal   `json:"total_amount,omitempty"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
	Notes          string             `json:"notes,omitempty"`
}

// OrderItemRequest línea del carrito (producto, cantidad, descuento %).
// UnitPrice opcional: si va en cero se toma el precio de venta del catálogo.
type OrderItemRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
}

// SubmitOrderResponse respuesta de POST /api/orders.
type SubmitOrderResponse struct {
	OrderID     string          `json:"order_id"`
	OrderCode   string          `json:"order_code"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderResponse orden con líneas para GET /api/orders/:id.
type OrderResponse struct {
	ID             string              `json:"id"`
	Code           string              `json:"code"`
	CustomerID     string              `json:"customer_id,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	UserID         string              `json:"user_id"`
	OrderedAt      string              `json:"ordered_at"`
	Status         string              `json:"status"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
}

// OrderLineResponse línea de la orden en la respuesta.
type OrderLineResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderCreatedEvent payload publicado en Kafka al confirmar una orden.
type OrderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	OrderCode   string          `json:"order_code"`
	CustomerID  string          `json:"customer_id,omitempty"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
	OrderedAt   string          `json:"ordered_at"` // RFC3339
}
