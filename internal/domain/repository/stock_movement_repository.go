package repository

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos de inventario.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference lista los movimientos originados por un evento
	// (ej. sale + ID de orden), para auditoría.
	ListByReference(refType, refID string) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma con signo de todos los movimientos del
	// producto (invariante de conciliación contra el contador de stock).
	SumByProduct(productID string) (int64, error)
}
