package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/sequence"
)

// maxCodeAttempts reintentos cuando el constraint único de customers.code
// detecta una asignación concurrente del mismo consecutivo.
const maxCodeAttempts = 3

// TxRunner ejecuta una función con un repositorio de clientes atado a una
// transacción. La lectura del máximo KH y la inserción comparten la tx.
type TxRunner interface {
	RunCustomers(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error
}

// CustomerUseCase casos de uso de clientes. La asignación del código KH es el
// caso restringido del mismo asignador de consecutivos que usan las órdenes,
// con la misma defensa contra carreras (constraint único + reintento).
type CustomerUseCase struct {
	txRunner TxRunner
	repo     repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner TxRunner, repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un cliente asignando el siguiente código KH de la serie.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = uc.txRunner.RunCustomers(ctx, func(customerRepo repository.CustomerRepository) error {
			maxCode, err := customerRepo.MaxCode(sequence.CustomerSeries.Prefix)
			if err != nil {
				return err
			}
			customer.Code = sequence.CustomerSeries.Next(maxCode)
			return customerRepo.Create(customer)
		})
		if !errors.Is(err, domain.ErrCodeConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// Get obtiene un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Code:    c.Code,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}
