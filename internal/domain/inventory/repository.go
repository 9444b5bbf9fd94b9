package inventory

import (
	"context"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplyItemRepository defines persistence operations for supply items
type SupplyItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplyItem, error)
	FindBySKU(ctx context.Context, sku string) (*SupplyItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplyItem, error)
	FindBelowReorderLevel(ctx context.Context) ([]SupplyItem, error)
	Save(ctx context.Context, item *SupplyItem) error
	// SaveWithLock saves conditioned on an unchanged version, returning
	// ErrConcurrentModification when another writer got there first.
	SaveWithLock(ctx context.Context, item *SupplyItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
