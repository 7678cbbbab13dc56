package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	// Create persiste un cliente. Retorna domain.ErrCodeConflict si el
	// código consecutivo ya existe.
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error) // (nil, nil) si no existe
	// MaxCode devuelve el código máximo de la serie KH. "" si está vacía.
	MaxCode(prefix string) (string, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
