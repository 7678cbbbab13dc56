package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// GetOrder obtiene una orden por ID con sus líneas y el nombre del cliente.
func (uc *SubmitOrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLinesByOrderID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if order.CustomerID != "" {
		customer, _ := uc.customerRepo.GetByID(order.CustomerID)
		if customer != nil {
			customerName = customer.Name
		}
	}
	return toOrderResponse(order, customerName, lines), nil
}

// ListOrders lista órdenes por rango de fechas con paginación (consumo de
// solo lectura: reportes y auditoría leen estas mismas tablas).
func (uc *SubmitOrderUseCase) ListOrders(ctx context.Context, from, to *time.Time, limit, offset int) ([]dto.OrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.orderRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, order := range list {
		resp := toOrderResponse(order, "", nil)
		out = append(out, *resp)
	}
	return out, nil
}

// UpdateStatus muta el estado del ciclo de vida de una orden existente.
// No compensa stock al cancelar: devoluciones y reversas quedan fuera de
// este núcleo y el libro de movimientos es append-only.
func (uc *SubmitOrderUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !entity.IsValidOrderStatus(status) {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.UpdateStatus(id, status, time.Now())
}

func toOrderResponse(order *entity.Order, customerName string, lines []*entity.OrderLine) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:             order.ID,
		Code:           order.Code,
		CustomerID:     order.CustomerID,
		CustomerName:   customerName,
		UserID:         order.UserID,
		OrderedAt:      order.OrderedAt.Format(time.RFC3339),
		Status:         order.Status,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		TaxAmount:      order.TaxAmount,
		TotalAmount:    order.TotalAmount,
		PaidAmount:     order.PaidAmount,
		PaymentMethod:  order.PaymentMethod,
		Notes:          order.Notes,
		Lines:          make([]dto.OrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:             l.ID,
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			LineTotal:      l.LineTotal,
		})
	}
	return resp
}
