package dto

import "github.com/shopspring/decimal"

// StockMovementResponse asiento del libro de inventario en respuestas.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	RefType   string          `json:"ref_type"`
	RefID     string          `json:"ref_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// ReconciliationResponse resultado de verificar el invariante de conciliación
// de un producto: suma de movimientos con signo vs. contador de stock.
type ReconciliationResponse struct {
	ProductID     string `json:"product_id"`
	MovementSum   int64  `json:"movement_sum"`
	StockQuantity int64  `json:"stock_quantity"`
	Consistent    bool   `json:"consistent"`
}
