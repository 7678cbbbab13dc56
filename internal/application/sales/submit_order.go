package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/sequence"
)

// maxCodeAttempts reintentos del ciclo asignar-consecutivo/insertar cuando el
// constraint único de orders.code detecta que otro caller ganó la carrera.
const maxCodeAttempts = 3

// totalTolerance divergencia máxima aceptada entre los totales enviados por
// el cliente y los recalculados por el servidor.
var totalTolerance = decimal.NewFromFloat(0.01)

// SubmitOrderUseCase convierte un carrito en una orden de venta durable:
// valida las líneas contra el catálogo, recalcula totales, asigna el
// consecutivo DH, persiste cabecera y líneas y descuenta inventario vía el
// libro de movimientos — todo dentro de una única transacción.
type SubmitOrderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	ledger       StockLedger
	events       EventPublisher // opcional; nil = sin publicación
}

// NewSubmitOrderUseCase construye el caso de uso. events puede ser nil.
func NewSubmitOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	ledger StockLedger,
	events EventPublisher,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		events:       events,
	}
}

// orderLineDraft línea ya validada y recalculada, lista para persistir.
type orderLineDraft struct {
	productID      string
	quantity       int64
	unitPrice      decimal.Decimal
	discountAmount decimal.Decimal
	lineTotal      decimal.Decimal
}

// Submit ejecuta submitOrder(cart): todo-o-nada. Cualquier fallo deja la base
// exactamente como estaba; no hay estado parcial visible (cabecera sin líneas,
// stock descontado sin movimiento, etc.).
func (uc *SubmitOrderUseCase) Submit(ctx context.Context, userID string, in dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional (venta de mostrador); si viene, debe existir.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validación del carrito y recálculo de líneas (lectura, fuera de la tx).
	// La disponibilidad de stock se verifica dentro de la tx con la fila
	// bloqueada; aquí solo identidad, estado y precios.
	lines, err := uc.buildLines(in.Items)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.lineTotal)
	}
	discount := in.DiscountAmount
	tax := in.TaxAmount
	if discount.IsNegative() || tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	total := subtotal.Sub(discount).Add(tax)

	// Los agregados del cliente no se prefieren: se verifican contra el
	// recálculo y se rechazan si divergen más allá de la tolerancia.
	if in.Subtotal != nil && in.Subtotal.Sub(subtotal).Abs().GreaterThan(totalTolerance) {
		return nil, domain.ErrTotalMismatch
	}
	if in.TotalAmount != nil && in.TotalAmount.Sub(total).Abs().GreaterThan(totalTolerance) {
		return nil, domain.ErrTotalMismatch
	}

	now := time.Now()
	var order *entity.Order

	// Asignación del consecutivo + inserción bajo constraint único, con
	// reintento acotado: dos callers pueden leer el mismo máximo, pero solo
	// uno inserta; el otro repite la transacción completa con un código nuevo.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = uc.txRunner.Run(ctx, func(
			orderRepo repository.OrderRepository,
			productRepo repository.ProductRepository,
			movementRepo repository.StockMovementRepository,
		) error {
			maxCode, err := orderRepo.MaxCode(sequence.OrderSeries.Prefix)
			if err != nil {
				return err
			}
			code := sequence.OrderSeries.Next(maxCode)

			order = &entity.Order{
				ID:             uuid.New().String(),
				Code:           code,
				CustomerID:     in.CustomerID,
				UserID:         userID,
				OrderedAt:      now,
				Status:         entity.OrderStatusDelivered,
				Subtotal:       subtotal,
				DiscountAmount: discount,
				TaxAmount:      tax,
				TotalAmount:    total,
				PaidAmount:     total, // toda orden creada queda pagada por completo
				PaymentMethod:  in.PaymentMethod,
				Notes:          in.Notes,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			for _, l := range lines {
				line := &entity.OrderLine{
					ID:             uuid.New().String(),
					OrderID:        order.ID,
					ProductID:      l.productID,
					Quantity:       l.quantity,
					UnitPrice:      l.unitPrice,
					DiscountAmount: l.discountAmount,
					LineTotal:      l.lineTotal,
				}
				if err := orderRepo.CreateLine(line); err != nil {
					return err
				}
			}
			// Descuento de stock + asiento por línea, misma transacción.
			// Si alguna línea falla (ej. sin stock), rollback de todo.
			for _, l := range lines {
				if err := uc.ledger.RegisterSaleOut(
					productRepo, movementRepo,
					l.productID, l.quantity, l.unitPrice,
					userID, order.ID, now,
				); err != nil {
					return err
				}
			}
			return nil
		})
		if !errors.Is(err, domain.ErrCodeConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		uc.events.PublishOrderCreated(ctx, dto.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderCode:   order.Code,
			CustomerID:  order.CustomerID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			LineCount:   len(lines),
			OrderedAt:   order.OrderedAt.Format(time.RFC3339),
		})
	}

	return &dto.SubmitOrderResponse{
		OrderID:     order.ID,
		OrderCode:   order.Code,
		TotalAmount: order.TotalAmount,
	}, nil
}

// buildLines valida cada ítem contra el catálogo y recalcula descuento y
// total de línea en el servidor: line_total = precio*cantidad - descuento.
// Cualquier producto faltante o inactivo falla la orden completa.
func (uc *SubmitOrderUseCase) buildLines(items []dto.OrderItemRequest) ([]orderLineDraft, error) {
	hundred := decimal.NewFromInt(100)
	lines := make([]orderLineDraft, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}

		unitPrice := item.UnitPrice
		if unitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if unitPrice.IsZero() {
			unitPrice = product.SalePrice // snapshot del precio de catálogo
		}
		gross := unitPrice.Mul(decimal.NewFromInt(item.Quantity))
		lineDiscount := gross.Mul(item.DiscountPercent).Div(hundred)
		lines = append(lines, orderLineDraft{
			productID:      item.ProductID,
			quantity:       item.Quantity,
			unitPrice:      unitPrice,
			discountAmount: lineDiscount,
			lineTotal:      gross.Sub(lineDiscount),
		})
	}
	return lines, nil
}
