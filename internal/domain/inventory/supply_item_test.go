package inventory

import (
	"testing"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T) *SupplyItem {
	t.Helper()
	item, err := NewSupplyItem("SKU-GLOVES", "Nitrile gloves", "Consumables", "box", 10, valueobject.NewMoneyUSDFromFloat(8.50), uuid.New())
	require.NoError(t, err)
	return item
}

func TestNewSupplyItem(t *testing.T) {
	item := createTestItem(t)

	assert.Equal(t, int64(0), item.QuantityOnHand)
	assert.Equal(t, int64(10), item.ReorderLevel)
	assert.True(t, item.IsBelowReorderLevel())

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "SupplyItemCreated", events[0].EventType())
}

func TestNewSupplyItem_Validation(t *testing.T) {
	cost := valueobject.NewMoneyUSDFromFloat(1)
	actor := uuid.New()

	tests := []struct {
		name     string
		sku      string
		itemName string
		unit     string
		reorder  int64
		cost     valueobject.Money
		wantCode string
	}{
		{"empty sku", "", "Gloves", "box", 0, cost, "INVALID_SKU"},
		{"empty name", "SKU-1", "", "box", 0, cost, "INVALID_NAME"},
		{"empty unit", "SKU-1", "Gloves", "", 0, cost, "INVALID_UNIT"},
		{"negative reorder level", "SKU-1", "Gloves", "box", -1, cost, "INVALID_REORDER_LEVEL"},
		{"negative cost", "SKU-1", "Gloves", "box", 0, valueobject.NewMoneyUSDFromFloat(-1), "INVALID_COST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSupplyItem(tt.sku, tt.itemName, "", tt.unit, tt.reorder, tt.cost, actor)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestSupplyItem_ReceiveAndConsume(t *testing.T) {
	item := createTestItem(t)

	require.NoError(t, item.Receive(50))
	assert.Equal(t, int64(50), item.QuantityOnHand)
	assert.NotNil(t, item.LastRestockAt)
	assert.False(t, item.IsBelowReorderLevel())

	require.NoError(t, item.Consume(35))
	assert.Equal(t, int64(15), item.QuantityOnHand)

	require.NoError(t, item.Consume(5))
	assert.Equal(t, int64(10), item.QuantityOnHand)
	assert.True(t, item.IsBelowReorderLevel())
}

func TestSupplyItem_ConsumeBeyondStock(t *testing.T) {
	item := createTestItem(t)
	require.NoError(t, item.Receive(10))

	err := item.Consume(11)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// State unchanged
	assert.Equal(t, int64(10), item.QuantityOnHand)
}

func TestSupplyItem_InvalidQuantities(t *testing.T) {
	item := createTestItem(t)

	assert.Error(t, item.Receive(0))
	assert.Error(t, item.Receive(-5))
	assert.Error(t, item.Consume(0))
	assert.Error(t, item.Consume(-5))
}

func TestSupplyItem_Adjust(t *testing.T) {
	item := createTestItem(t)
	require.NoError(t, item.Receive(100))

	require.NoError(t, item.Adjust(97, "physical count variance"))
	assert.Equal(t, int64(97), item.QuantityOnHand)

	assert.Error(t, item.Adjust(-1, "bad"))
	assert.Error(t, item.Adjust(50, ""))

	events := item.GetDomainEvents()
	last := events[len(events)-1]
	adjusted, ok := last.(*StockAdjustedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(100), adjusted.PreviousQuantity)
	assert.Equal(t, int64(97), adjusted.NewQuantity)
}

func TestSupplyItem_UpdateDetails(t *testing.T) {
	item := createTestItem(t)

	level := int64(20)
	cost := valueobject.NewMoneyUSDFromFloat(9.00)
	versionBefore := item.Version
	require.NoError(t, item.UpdateDetails(&level, &cost))
	assert.Equal(t, int64(20), item.ReorderLevel)
	assert.Equal(t, "9.00", item.UnitCost.StringFixed(2))
	// both fields changed, one version step
	assert.Equal(t, versionBefore+1, item.Version)

	bad := int64(-1)
	assert.Error(t, item.UpdateDetails(&bad, nil))

	negative := valueobject.NewMoneyUSDFromFloat(-1)
	assert.Error(t, item.UpdateDetails(nil, &negative))
}

func TestSupplyItem_StockValue(t *testing.T) {
	item := createTestItem(t)
	require.NoError(t, item.Receive(4))

	assert.Equal(t, "34.00", item.StockValue().StringFixed(2))
}
