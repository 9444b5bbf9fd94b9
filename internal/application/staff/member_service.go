package staff

import (
	"context"
	"errors"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/staff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemberService handles staff directory operations
type MemberService struct {
	memberRepo staff.MemberRepository
	logger     *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo staff.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// Create adds a new staff member to the directory
func (s *MemberService) Create(ctx context.Context, actorID uuid.UUID, req CreateMemberRequest) (*MemberResponse, error) {
	existing, err := s.memberRepo.FindByStaffNumber(ctx, req.StaffNumber)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	member, err := staff.NewMember(req.StaffNumber, req.FullName, staff.Role(req.Role), req.Department, req.Email, req.Phone, actorID)
	if err != nil {
		return nil, err
	}
	if req.HiredAt != nil {
		member.SetHiredAt(*req.HiredAt)
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	member.ClearDomainEvents()

	response := ToMemberResponse(member)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *MemberService) GetByID(ctx context.Context, memberID uuid.UUID) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	response := ToMemberResponse(member)
	return &response, nil
}

// GetByStaffNumber retrieves a staff member by staff number
func (s *MemberService) GetByStaffNumber(ctx context.Context, staffNumber string) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByStaffNumber(ctx, staffNumber)
	if err != nil {
		return nil, err
	}
	response := ToMemberResponse(member)
	return &response, nil
}

// List retrieves staff members with filtering and pagination
func (s *MemberService) List(ctx context.Context, filter MemberListFilter) ([]MemberResponse, int64, error) {
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
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	var members []staff.Member
	var err error
	if filter.Role != nil {
		role := staff.Role(*filter.Role)
		if !role.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ROLE", "Unknown staff role")
		}
		members, err = s.memberRepo.FindByRole(ctx, role, domainFilter)
	} else {
		members, err = s.memberRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.memberRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMemberResponses(members), total, nil
}

// Update updates a staff member's profile
func (s *MemberService) Update(ctx context.Context, memberID uuid.UUID, req UpdateMemberRequest) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	fullName := member.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	department := member.Department
	if req.Department != nil {
		department = *req.Department
	}
	email := member.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := member.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}

	if err := member.UpdateProfile(fullName, department, email, phone); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	response := ToMemberResponse(member)
	return &response, nil
}

// ChangeRole changes a staff member's role
func (s *MemberService) ChangeRole(ctx context.Context, memberID uuid.UUID, req ChangeRoleRequest) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := member.ChangeRole(staff.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	response := ToMemberResponse(member)
	return &response, nil
}

// Deactivate removes a staff member from active duty without deleting the record
func (s *MemberService) Deactivate(ctx context.Context, memberID uuid.UUID) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := member.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	member.ClearDomainEvents()

	response := ToMemberResponse(member)
	return &response, nil
}

// Activate restores a deactivated staff member
func (s *MemberService) Activate(ctx context.Context, memberID uuid.UUID) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := member.Activate(); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	member.ClearDomainEvents()

	response := ToMemberResponse(member)
	return &response, nil
}

// Delete removes a staff member record entirely. Prefer Deactivate for
// members with any service history.
func (s *MemberService) Delete(ctx context.Context, memberID uuid.UUID) error {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		return err
	}
	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		return err
	}
	s.logger.Info("staff member deleted", zap.String("member_id", memberID.String()))
	return nil
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}
