package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la proyección del catálogo que consume este núcleo.
// El catálogo (colaborador externo) es dueño de la identidad y el precio;
// aquí solo StockQuantity es mutable y únicamente a través del libro de
// inventario, nunca por escritura directa.
type Product struct {
	ID             string
	SKU            string
	Name           string
	IsActive       bool
	TrackInventory bool  // si es false, no se valida ni descuenta stock
	StockQuantity  int64 // contador autoritativo para productos con inventario
	SalePrice      decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
