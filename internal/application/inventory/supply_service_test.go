package inventory

import (
	"context"
	"testing"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSupplyItemRepository is a mock implementation of SupplyItemRepository
type MockSupplyItemRepository struct {
	mock.Mock
}

func (m *MockSupplyItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.SupplyItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SupplyItem), args.Error(1)
}

func (m *MockSupplyItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.SupplyItem, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SupplyItem), args.Error(1)
}

func (m *MockSupplyItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.SupplyItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.SupplyItem), args.Error(1)
}

func (m *MockSupplyItemRepository) FindBelowReorderLevel(ctx context.Context) ([]inventory.SupplyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.SupplyItem), args.Error(1)
}

func (m *MockSupplyItemRepository) Save(ctx context.Context, item *inventory.SupplyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSupplyItemRepository) SaveWithLock(ctx context.Context, item *inventory.SupplyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSupplyItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplyItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var testActorID = uuid.New()

func createTestItem(t *testing.T, onHand int64) *inventory.SupplyItem {
	t.Helper()
	item, err := inventory.NewSupplyItem("GLV-M", "Nitrile gloves M", "consumables", "box", 10,
		valueobject.NewMoneyUSDFromFloat(8.50), testActorID)
	require.NoError(t, err)
	if onHand > 0 {
		require.NoError(t, item.Receive(onHand))
	}
	item.ClearDomainEvents()
	return item
}

func TestSupplyService_Create(t *testing.T) {
	t.Run("create item successfully", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		repo.On("FindBySKU", ctx, "GLV-M").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*inventory.SupplyItem")).Return(nil)

		result, err := service.Create(ctx, testActorID, CreateSupplyItemRequest{
			SKU:          "GLV-M",
			Name:         "Nitrile gloves M",
			Unit:         "box",
			ReorderLevel: 10,
			UnitCost:     decimal.RequireFromString("8.50"),
		})

		require.NoError(t, err)
		assert.Equal(t, "GLV-M", result.SKU)
		assert.Equal(t, int64(0), result.QuantityOnHand)
		assert.True(t, result.BelowReorderLevel)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate SKU", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		repo.On("FindBySKU", ctx, "GLV-M").Return(createTestItem(t, 0), nil)

		_, err := service.Create(ctx, testActorID, CreateSupplyItemRequest{
			SKU: "GLV-M", Name: "Nitrile gloves M", Unit: "box",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplyService_ReceiveAndConsume(t *testing.T) {
	t.Run("receive stock", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		item := createTestItem(t, 0)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("SaveWithLock", ctx, item).Return(nil)

		result, err := service.Receive(ctx, item.ID, ReceiveStockRequest{Quantity: 25})

		require.NoError(t, err)
		assert.Equal(t, int64(25), result.QuantityOnHand)
		assert.False(t, result.BelowReorderLevel)
		assert.NotNil(t, result.LastRestockAt)
	})

	t.Run("consume beyond stock", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		item := createTestItem(t, 5)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := service.Consume(ctx, item.ID, ConsumeStockRequest{Quantity: 6})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("concurrent consumption cannot overdraw stock", func(t *testing.T) {
		// Two consumers take 6 of 10. The loser conflicts, re-reads the
		// state with 4 remaining and fails validation.
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		stale := createTestItem(t, 10)
		fresh := createTestItem(t, 10)
		fresh.ID = stale.ID
		require.NoError(t, fresh.Consume(6))
		fresh.ClearDomainEvents()

		repo.On("FindByID", ctx, stale.ID).Return(stale, nil).Once()
		repo.On("SaveWithLock", ctx, stale).Return(shared.ErrConcurrentModification).Once()
		repo.On("FindByID", ctx, stale.ID).Return(fresh, nil).Once()

		_, err := service.Consume(ctx, stale.ID, ConsumeStockRequest{Quantity: 6})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		repo.AssertExpectations(t)
	})
}

func TestSupplyService_Adjust(t *testing.T) {
	repo := new(MockSupplyItemRepository)
	service := NewSupplyService(repo, zap.NewNop())
	ctx := context.Background()

	item := createTestItem(t, 25)
	repo.On("FindByID", ctx, item.ID).Return(item, nil)
	repo.On("SaveWithLock", ctx, item).Return(nil)

	result, err := service.Adjust(ctx, item.ID, AdjustStockRequest{Quantity: 22, Reason: "quarterly count"})

	require.NoError(t, err)
	assert.Equal(t, int64(22), result.QuantityOnHand)
}

func TestSupplyService_List(t *testing.T) {
	t.Run("below reorder shortcut", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		items := []inventory.SupplyItem{*createTestItem(t, 2)}
		repo.On("FindBelowReorderLevel", ctx).Return(items, nil)

		result, total, err := service.List(ctx, SupplyItemListFilter{BelowReorder: true})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, result, 1)
		assert.True(t, result[0].BelowReorderLevel)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("stock value in response", func(t *testing.T) {
		repo := new(MockSupplyItemRepository)
		service := NewSupplyService(repo, zap.NewNop())
		ctx := context.Background()

		item := createTestItem(t, 4)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		result, err := service.GetByID(ctx, item.ID)

		require.NoError(t, err)
		assert.True(t, result.StockValue.Equal(decimal.RequireFromString("34.00")))
	})
}
