package patient

import (
	"context"
	"errors"

	"github.com/clinicore/backend/internal/domain/patient"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PatientService handles patient registry operations
type PatientService struct {
	patientRepo patient.PatientRepository
	logger      *zap.Logger
}

// NewPatientService creates a new PatientService
func NewPatientService(patientRepo patient.PatientRepository, logger *zap.Logger) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// Register adds a new patient to the registry
func (s *PatientService) Register(ctx context.Context, actorID uuid.UUID, req RegisterPatientRequest) (*PatientResponse, error) {
	existing, err := s.patientRepo.FindByMedicalRecordNumber(ctx, req.MedicalRecordNumber)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	p, err := patient.NewPatient(req.MedicalRecordNumber, req.FullName, req.DateOfBirth, req.Email, req.Phone, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPatientResponse(p)
	return &response, nil
}

// GetByID retrieves a patient by ID
func (s *PatientService) GetByID(ctx context.Context, patientID uuid.UUID) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	response := ToPatientResponse(p)
	return &response, nil
}

// GetByMedicalRecordNumber retrieves a patient by MRN
func (s *PatientService) GetByMedicalRecordNumber(ctx context.Context, mrn string) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByMedicalRecordNumber(ctx, mrn)
	if err != nil {
		return nil, err
	}
	response := ToPatientResponse(p)
	return &response, nil
}

// List retrieves patients with filtering and pagination
func (s *PatientService) List(ctx context.Context, filter PatientListFilter) ([]PatientResponse, int64, error) {
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

	page, err := s.patientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPatientResponses(page.Items), page.Total, nil
}

// Update updates a patient's record
func (s *PatientService) Update(ctx context.Context, patientID uuid.UUID, req UpdatePatientRequest) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if err := p.Rename(*req.FullName); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		email := p.Email
		if req.Email != nil {
			email = *req.Email
		}
		phone := p.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		p.UpdateContact(email, phone)
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPatientResponse(p)
	return &response, nil
}

// Delete removes a patient from the registry
func (s *PatientService) Delete(ctx context.Context, patientID uuid.UUID) error {
	if _, err := s.patientRepo.FindByID(ctx, patientID); err != nil {
		return err
	}

	if err := s.patientRepo.Delete(ctx, patientID); err != nil {
		return err
	}

	s.logger.Info("patient deleted", zap.String("patient_id", patientID.String()))
	return nil
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}
