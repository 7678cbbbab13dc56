package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// StockLedger aplica salidas de stock por venta: valida la cantidad contra el
// stock disponible, descuenta el contador y agrega exactamente un movimiento
// inmutable por producto afectado. Opera sobre los repositorios que recibe,
// atados a la transacción del caller: descuento y asiento se confirman juntos
// o ninguno.
type StockLedger struct{}

// NewStockLedger construye el libro de inventario (sin estado propio).
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// RegisterSaleOut registra la salida de quantity unidades de un producto por
// la venta orderID, dentro de la transacción del caller.
//   - Producto inexistente o inactivo: ProductNotFoundError.
//   - TrackInventory=false: no se valida, no se descuenta y no se asienta
//     movimiento (la línea de la orden se persiste igual, con su precio).
//   - TrackInventory=true: bloquea la fila (SELECT FOR UPDATE), exige
//     stock >= quantity (si no, InsufficientStockError con el disponible),
//     descuenta y agrega un movimiento out/sale.
func (l *StockLedger) RegisterSaleOut(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	productID string,
	quantity int64,
	unitPrice decimal.Decimal,
	userID, orderID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}

	// Bloquea la fila del producto: el contador de stock es el único estado
	// compartido con escritores concurrentes.
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return &domain.ProductNotFoundError{ProductID: productID}
	}
	if !product.TrackInventory {
		return nil
	}
	if product.StockQuantity < quantity {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.StockQuantity,
			Requested: quantity,
		}
	}

	if err := productRepo.UpdateStockQuantity(product.ID, product.StockQuantity-quantity); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      entity.MovementTypeOut,
		RefType:   entity.MovementRefSale,
		RefID:     orderID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedBy: userID,
		CreatedAt: now,
	}
	return movementRepo.Create(mov)
}
