package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCodeConflict      = errors.New("conflicto al asignar consecutivo")
	ErrTotalMismatch     = errors.New("los totales enviados no coinciden con los calculados")
)

// InsufficientStockError indica stock insuficiente para un producto,
// nombrando el producto y la cantidad disponible al momento de la validación.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.Name, e.ProductID, e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ProductNotFoundError indica que un producto del carrito no existe o está inactivo.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado o inactivo: %s", e.ProductID)
}

// Unwrap permite errors.Is(err, ErrNotFound).
func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }
