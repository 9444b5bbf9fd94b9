package persistence

import (
	"context"
	"testing"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSupplyItemTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SupplyItemModel{})
	require.NoError(t, err)

	return db
}

func newTestSupplyItem(t *testing.T, sku string, onHand int64) *inventory.SupplyItem {
	item, err := inventory.NewSupplyItem(sku, "Nitrile Gloves M", "consumables", "box", 10,
		valueobject.NewMoneyUSDFromFloat(8.50), uuid.New())
	require.NoError(t, err)
	if onHand > 0 {
		require.NoError(t, item.Receive(onHand))
	}
	return item
}

func TestGormSupplyItemRepository_SaveAndFind(t *testing.T) {
	db := setupSupplyItemTestDB(t)
	repo := NewGormSupplyItemRepository(db)
	ctx := context.Background()

	item := newTestSupplyItem(t, "GLV-M", 25)
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindBySKU(ctx, "GLV-M")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, int64(25), found.QuantityOnHand)
	assert.Equal(t, int64(10), found.ReorderLevel)
	assert.True(t, found.UnitCost.Equal(item.UnitCost))
	assert.NotNil(t, found.LastRestockAt)

	_, err = repo.FindBySKU(ctx, "NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// Two writers load the same stock level and both try to consume. Only the
// first commit succeeds; the second sees a version conflict instead of
// silently double-spending the stock.
func TestGormSupplyItemRepository_ConcurrentConsumption(t *testing.T) {
	db := setupSupplyItemTestDB(t)
	repo := NewGormSupplyItemRepository(db)
	ctx := context.Background()

	item := newTestSupplyItem(t, "SYR-5ML", 10)
	require.NoError(t, repo.Save(ctx, item))

	first, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)

	require.NoError(t, first.Consume(6))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.Consume(6))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), found.QuantityOnHand)
}

func TestGormSupplyItemRepository_DetailUpdateThroughLockedSave(t *testing.T) {
	db := setupSupplyItemTestDB(t)
	repo := NewGormSupplyItemRepository(db)
	ctx := context.Background()

	item := newTestSupplyItem(t, "GLV-M", 25)
	require.NoError(t, repo.Save(ctx, item))

	loaded, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)

	level := int64(15)
	cost := valueobject.NewMoneyUSDFromFloat(9.25)
	require.NoError(t, loaded.UpdateDetails(&level, &cost))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), found.ReorderLevel)
	assert.Equal(t, "9.25", found.UnitCost.StringFixed(2))
}

func TestGormSupplyItemRepository_FindBelowReorderLevel(t *testing.T) {
	db := setupSupplyItemTestDB(t)
	repo := NewGormSupplyItemRepository(db)
	ctx := context.Background()

	low := newTestSupplyItem(t, "GLV-M", 4)
	require.NoError(t, repo.Save(ctx, low))

	stocked := newTestSupplyItem(t, "SYR-5ML", 40)
	require.NoError(t, repo.Save(ctx, stocked))

	items, err := repo.FindBelowReorderLevel(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "GLV-M", items[0].SKU)
}

func TestGormSupplyItemRepository_FilterByCategory(t *testing.T) {
	db := setupSupplyItemTestDB(t)
	repo := NewGormSupplyItemRepository(db)
	ctx := context.Background()

	gloves := newTestSupplyItem(t, "GLV-M", 20)
	require.NoError(t, repo.Save(ctx, gloves))

	drug, err := inventory.NewSupplyItem("AMX-500", "Amoxicillin 500mg", "pharmaceuticals", "pack", 5,
		valueobject.NewMoneyUSDFromFloat(12.00), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, drug))

	filter := shared.DefaultFilter()
	filter.Filters["category"] = "pharmaceuticals"

	items, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AMX-500", items[0].SKU)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
