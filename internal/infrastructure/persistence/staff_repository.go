package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/staff"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Member, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStaffNumber finds a staff member by staff number
func (r *GormMemberRepository) FindByStaffNumber(ctx context.Context, staffNumber string) (*staff.Member, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).
		Where("staff_number = ?", staffNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds staff members with filtering
func (r *GormMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Member, error) {
	var memberModels []models.StaffMemberModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffMemberModel{}), filter)
	if err := query.Find(&memberModels).Error; err != nil {
		return nil, err
	}
	members := make([]staff.Member, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members, nil
}

// FindByRole finds staff members holding a given role
func (r *GormMemberRepository) FindByRole(ctx context.Context, role staff.Role, filter shared.Filter) ([]staff.Member, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["role"] = role
	return r.FindAll(ctx, filter)
}

// Save creates or updates a staff member
func (r *GormMemberRepository) Save(ctx context.Context, member *staff.Member) error {
	model := models.StaffMemberModelFromDomain(member)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a staff member
func (r *GormMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts staff members matching the filter
func (r *GormMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.StaffMemberModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMemberRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "staff_number", "full_name", "role", "department":
	default:
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormMemberRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("staff_number ILIKE ? OR full_name ILIKE ?", searchPattern, searchPattern)
	}
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if department, ok := filter.Filters["department"]; ok {
		query = query.Where("department = ?", department)
	}
	return query
}

// Ensure GormMemberRepository implements MemberRepository
var _ staff.MemberRepository = (*GormMemberRepository)(nil)
