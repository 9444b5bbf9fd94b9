package inventory

import (
	"context"
	"errors"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplyService handles medical supply tracking operations
type SupplyService struct {
	supplyRepo inventory.SupplyItemRepository
	logger     *zap.Logger
}

// NewSupplyService creates a new SupplyService
func NewSupplyService(supplyRepo inventory.SupplyItemRepository, logger *zap.Logger) *SupplyService {
	return &SupplyService{
		supplyRepo: supplyRepo,
		logger:     logger,
	}
}

// Create registers a new supply item with zero stock
func (s *SupplyService) Create(ctx context.Context, actorID uuid.UUID, req CreateSupplyItemRequest) (*SupplyItemResponse, error) {
	existing, err := s.supplyRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	unitCost := valueobject.NewMoneyUSD(req.UnitCost)
	item, err := inventory.NewSupplyItem(req.SKU, req.Name, req.Category, req.Unit, req.ReorderLevel, unitCost, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.supplyRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	item.ClearDomainEvents()

	response := ToSupplyItemResponse(item)
	return &response, nil
}

// GetByID retrieves a supply item by ID
func (s *SupplyService) GetByID(ctx context.Context, itemID uuid.UUID) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToSupplyItemResponse(item)
	return &response, nil
}

// GetBySKU retrieves a supply item by SKU
func (s *SupplyService) GetBySKU(ctx context.Context, sku string) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToSupplyItemResponse(item)
	return &response, nil
}

// List retrieves supply items with filtering and pagination
func (s *SupplyService) List(ctx context.Context, filter SupplyItemListFilter) ([]SupplyItemResponse, int64, error) {
	if filter.BelowReorder {
		items, err := s.supplyRepo.FindBelowReorderLevel(ctx)
		if err != nil {
			return nil, 0, err
		}
		return ToSupplyItemResponses(items), int64(len(items)), nil
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	items, err := s.supplyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplyItemResponses(items), total, nil
}

// Update updates a supply item's reorder level and unit cost
func (s *SupplyService) Update(ctx context.Context, itemID uuid.UUID, req UpdateSupplyItemRequest) (*SupplyItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *inventory.SupplyItem) error {
		var unitCost *valueobject.Money
		if req.UnitCost != nil {
			cost := valueobject.NewMoneyUSD(*req.UnitCost)
			unitCost = &cost
		}
		return item.UpdateDetails(req.ReorderLevel, unitCost)
	})
}

// Receive records a stock receipt
func (s *SupplyService) Receive(ctx context.Context, itemID uuid.UUID, req ReceiveStockRequest) (*SupplyItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *inventory.SupplyItem) error {
		return item.Receive(req.Quantity)
	})
}

// Consume records a stock consumption. Consumption beyond the quantity on
// hand fails with INSUFFICIENT_STOCK; with two concurrent consumers the
// optimistic lock guarantees the decrements serialize instead of losing one.
func (s *SupplyService) Consume(ctx context.Context, itemID uuid.UUID, req ConsumeStockRequest) (*SupplyItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *inventory.SupplyItem) error {
		return item.Consume(req.Quantity)
	})
}

// Adjust corrects the stock level after a physical count
func (s *SupplyService) Adjust(ctx context.Context, itemID uuid.UUID, req AdjustStockRequest) (*SupplyItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *inventory.SupplyItem) error {
		return item.Adjust(req.Quantity, req.Reason)
	})
}

// Delete removes a supply item from the catalog
func (s *SupplyService) Delete(ctx context.Context, itemID uuid.UUID) error {
	return s.supplyRepo.Delete(ctx, itemID)
}

// mutate loads the item, applies op and saves with optimistic locking,
// retrying once against fresh state on a version conflict.
func (s *SupplyService) mutate(ctx context.Context, itemID uuid.UUID, op func(*inventory.SupplyItem) error) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := op(item); err != nil {
		return nil, err
	}

	if err := s.supplyRepo.SaveWithLock(ctx, item); err != nil {
		if !isConcurrentModification(err) {
			return nil, err
		}

		s.logger.Debug("version conflict on supply item save, retrying",
			zap.String("item_id", itemID.String()))

		item, err = s.supplyRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if err := op(item); err != nil {
			return nil, err
		}
		if err := s.supplyRepo.SaveWithLock(ctx, item); err != nil {
			return nil, err
		}
	}
	item.ClearDomainEvents()

	response := ToSupplyItemResponse(item)
	return &response, nil
}

func isConcurrentModification(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrConcurrentModification.Code
	}
	return false
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}
