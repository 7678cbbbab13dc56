package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// ProductRepository puerto de lectura del catálogo (colaborador externo).
// La única escritura permitida es el contador de stock, y solo la realiza
// el libro de inventario dentro de una transacción con la fila bloqueada.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error) // (nil, nil) si no existe
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStockQuantity(id string, quantity int64) error
}
