package patient

import (
	"context"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PatientRepository defines the persistence contract for patients
type PatientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByMedicalRecordNumber(ctx context.Context, mrn string) (*Patient, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Patient], error)
	Save(ctx context.Context, patient *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
