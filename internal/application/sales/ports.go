package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera de atomicidad de submitOrder:
// cabecera, líneas, descuentos de stock y movimientos confirman todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// StockLedger puerto hacia el libro de inventario: valida y descuenta stock
// y asienta el movimiento, sobre los repositorios de la transacción en curso.
type StockLedger interface {
	RegisterSaleOut(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		productID string,
		quantity int64,
		unitPrice decimal.Decimal,
		userID, orderID string,
		now time.Time,
	) error
}

// EventPublisher publica eventos de dominio tras el commit (best effort:
// un fallo de publicación no afecta la orden ya confirmada).
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event dto.OrderCreatedEvent)
}
