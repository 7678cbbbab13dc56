package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos
// (auditoría y conciliación). El libro es append-only: aquí no hay escrituras.
type MovementQueryUseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// ListByProduct lista los movimientos de un producto en un rango de fechas.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.movementRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListByOrder lista los movimientos originados por una orden de venta.
func (uc *MovementQueryUseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.StockMovementResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movementRepo.ListByReference(entity.MovementRefSale, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// VerifyReconciliation compara la suma con signo de los movimientos de un
// producto contra su contador de stock. Para productos creados con stock
// inicial vía movimiento "in", ambos valores deben coincidir.
func (uc *MovementQueryUseCase) VerifyReconciliation(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := uc.movementRepo.SumByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		ProductID:     productID,
		MovementSum:   sum,
		StockQuantity: product.StockQuantity,
		Consistent:    sum == product.StockQuantity,
	}, nil
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		RefType:   m.RefType,
		RefID:     m.RefID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
