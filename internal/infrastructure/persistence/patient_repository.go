package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicore/backend/internal/domain/patient"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository implements PatientRepository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// FindByID finds a patient by ID
func (r *GormPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMedicalRecordNumber finds a patient by medical record number
func (r *GormPatientRepository) FindByMedicalRecordNumber(ctx context.Context, mrn string) (*patient.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).
		Where("medical_record_number = ?", mrn).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds patients with filtering, returning a paginated result
func (r *GormPatientRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[patient.Patient], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PatientModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var patientModels []models.PatientModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PatientModel{}), filter)
	query = r.applyPagination(query, filter)
	if err := query.Find(&patientModels).Error; err != nil {
		return nil, err
	}
	patients := make([]patient.Patient, len(patientModels))
	for i, model := range patientModels {
		patients[i] = *model.ToDomain()
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	result := shared.NewPaginated(patients, total, page, pageSize)
	return &result, nil
}

// Save creates or updates a patient
func (r *GormPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	model := models.PatientModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a patient
func (r *GormPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PatientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all patients
func (r *GormPatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PatientModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPatientRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "medical_record_number", "full_name":
	default:
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormPatientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("medical_record_number ILIKE ? OR full_name ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormPatientRepository implements PatientRepository
var _ patient.PatientRepository = (*GormPatientRepository)(nil)
