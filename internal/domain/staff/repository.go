package staff

import (
	"context"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MemberRepository defines persistence operations for the staff directory
type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByStaffNumber(ctx context.Context, staffNumber string) (*Member, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Member, error)
	FindByRole(ctx context.Context, role Role, filter shared.Filter) ([]Member, error)
	Save(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
