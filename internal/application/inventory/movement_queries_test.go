package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func seedMovement(f *fakeInventory, productID, mtype, refID string, qty int64) {
	f.movements = append(f.movements, &entity.StockMovement{
		ID:        refID + "-" + mtype,
		ProductID: productID,
		Type:      mtype,
		RefType:   entity.MovementRefSale,
		RefID:     refID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(10000),
		CreatedAt: time.Now(),
	})
}

func TestListByProduct_FiltraPorProducto(t *testing.T) {
	f := newFakeInventory()
	seed(f, "p1", 5, true)
	seedMovement(f, "p1", entity.MovementTypeIn, "compra-1", 5)
	seedMovement(f, "p1", entity.MovementTypeOut, "order-1", 3)
	seedMovement(f, "p2", entity.MovementTypeOut, "order-2", 1)
	uc := inventory.NewMovementQueryUseCase(f, f)

	list, err := uc.ListByProduct(context.Background(), "p1", nil, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.ListByProduct(context.Background(), "", nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByOrder_SoloMovimientosDeEsaOrden(t *testing.T) {
	f := newFakeInventory()
	seedMovement(f, "p1", entity.MovementTypeOut, "order-1", 3)
	seedMovement(f, "p2", entity.MovementTypeOut, "order-1", 1)
	seedMovement(f, "p1", entity.MovementTypeOut, "order-2", 2)
	uc := inventory.NewMovementQueryUseCase(f, f)

	list, err := uc.ListByOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, m := range list {
		assert.Equal(t, "order-1", m.RefID)
	}
}

// Invariante de conciliación: la suma con signo de los movimientos reproduce
// el contador de stock. Un producto con entrada 5 y salida 3 debe quedar en 2.
func TestVerifyReconciliation_Consistente(t *testing.T) {
	f := newFakeInventory()
	seed(f, "p1", 2, true)
	seedMovement(f, "p1", entity.MovementTypeIn, "compra-1", 5)
	seedMovement(f, "p1", entity.MovementTypeOut, "order-1", 3)
	uc := inventory.NewMovementQueryUseCase(f, f)

	resp, err := uc.VerifyReconciliation(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.MovementSum)
	assert.Equal(t, int64(2), resp.StockQuantity)
	assert.True(t, resp.Consistent)
}

// Una escritura directa al contador, por fuera del libro, rompe el invariante
// y la conciliación lo delata.
func TestVerifyReconciliation_Inconsistente(t *testing.T) {
	f := newFakeInventory()
	seed(f, "p1", 7, true)
	seedMovement(f, "p1", entity.MovementTypeIn, "compra-1", 5)
	uc := inventory.NewMovementQueryUseCase(f, f)

	resp, err := uc.VerifyReconciliation(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.MovementSum)
	assert.Equal(t, int64(7), resp.StockQuantity)
	assert.False(t, resp.Consistent)
}

func TestVerifyReconciliation_ProductoInexistente(t *testing.T) {
	f := newFakeInventory()
	uc := inventory.NewMovementQueryUseCase(f, f)

	_, err := uc.VerifyReconciliation(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
