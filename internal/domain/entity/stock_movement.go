package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste
)

// Tipos de evento origen de un movimiento.
const (
	MovementRefSale = "sale" // venta: RefID = ID de la orden
)

// StockMovement representa un asiento inmutable del libro de inventario.
// Quantity guarda siempre la magnitud positiva; Type determina el signo.
// Invariante de conciliación: la suma de movimientos con signo de un producto
// reproduce su contador de stock actual.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // in, out, adjustment
	RefType   string // evento origen (sale, ...)
	RefID     string // ID del evento origen (orden)
	Quantity  int64
	UnitPrice decimal.Decimal // precio unitario al momento del movimiento
	CreatedBy string          // UserID
	CreatedAt time.Time
}

// SignedQuantity devuelve el delta con signo según el tipo de movimiento.
func (m *StockMovement) SignedQuantity() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
