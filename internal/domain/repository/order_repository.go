package repository

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para órdenes de venta y sus líneas.
type OrderRepository interface {
	// Create persiste la cabecera. Retorna domain.ErrCodeConflict si el
	// código consecutivo ya existe (violación del constraint único).
	Create(order *entity.Order) error
	CreateLine(line *entity.OrderLine) error
	GetByID(id string) (*entity.Order, error) // (nil, nil) si no existe
	GetLinesByOrderID(orderID string) ([]*entity.OrderLine, error)
	// MaxCode devuelve el código máximo almacenado de la serie (por sufijo
	// numérico, no por orden de string). "" si la serie está vacía.
	// Filas con sufijo no numérico se excluyen del escaneo.
	MaxCode(prefix string) (string, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	ListByDateRange(from, to *time.Time, limit, offset int) ([]*entity.Order, error)
}
