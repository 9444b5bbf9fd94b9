package patient

import (
	"context"
	"testing"

	"github.com/clinicore/backend/internal/domain/patient"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByMedicalRecordNumber(ctx context.Context, mrn string) (*patient.Patient, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[patient.Patient], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[patient.Patient]), args.Error(1)
}

func (m *MockPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var testActorID = uuid.New()

func createTestPatient(t *testing.T) *patient.Patient {
	t.Helper()
	p, err := patient.NewPatient("MRN-00042", "Jane Doe", nil, "jane@example.com", "555-0101", testActorID)
	require.NoError(t, err)
	return p
}

func TestPatientService_Register(t *testing.T) {
	t.Run("register patient successfully", func(t *testing.T) {
		repo := new(MockPatientRepository)
		service := NewPatientService(repo, zap.NewNop())
		ctx := context.Background()

		repo.On("FindByMedicalRecordNumber", ctx, "MRN-00042").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*patient.Patient")).Return(nil)

		result, err := service.Register(ctx, testActorID, RegisterPatientRequest{
			MedicalRecordNumber: "MRN-00042",
			FullName:            "Jane Doe",
		})

		require.NoError(t, err)
		assert.Equal(t, "MRN-00042", result.MedicalRecordNumber)
		assert.Equal(t, "Jane Doe", result.FullName)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate MRN", func(t *testing.T) {
		repo := new(MockPatientRepository)
		service := NewPatientService(repo, zap.NewNop())
		ctx := context.Background()

		repo.On("FindByMedicalRecordNumber", ctx, "MRN-00042").Return(createTestPatient(t), nil)

		_, err := service.Register(ctx, testActorID, RegisterPatientRequest{
			MedicalRecordNumber: "MRN-00042",
			FullName:            "Jane Doe",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPatientService_Update(t *testing.T) {
	repo := new(MockPatientRepository)
	service := NewPatientService(repo, zap.NewNop())
	ctx := context.Background()

	p := createTestPatient(t)
	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Save", ctx, p).Return(nil)

	phone := "555-0199"
	result, err := service.Update(ctx, p.ID, UpdatePatientRequest{Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, "555-0199", result.Phone)
	assert.Equal(t, "jane@example.com", result.Email)
	assert.Equal(t, "Jane Doe", result.FullName)
}

func TestPatientService_List(t *testing.T) {
	repo := new(MockPatientRepository)
	service := NewPatientService(repo, zap.NewNop())
	ctx := context.Background()

	page := shared.NewPaginated([]patient.Patient{*createTestPatient(t)}, 1, 1, 20)
	repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	result, total, err := service.List(ctx, PatientListFilter{Search: "Jane"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
}
