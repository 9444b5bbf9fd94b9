package staff

import (
	"fmt"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a staff member's role in the clinic
type Role string

const (
	RoleDoctor     Role = "DOCTOR"
	RoleNurse      Role = "NURSE"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Member represents a staff directory entry aggregate root
type Member struct {
	shared.AuditedAggregateRoot
	StaffNumber   string     `json:"staff_number"`
	FullName      string     `json:"full_name"`
	Role          Role       `json:"role"`
	Department    string     `json:"department"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Active        bool       `json:"active"`
	HiredAt       *time.Time `json:"hired_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// NewMember creates a new active staff member
func NewMember(staffNumber, fullName string, role Role, department, email, phone string, createdBy uuid.UUID) (*Member, error) {
	if staffNumber == "" {
		return nil, shared.NewDomainError("INVALID_STAFF_NUMBER", "Staff number cannot be empty")
	}
	if len(staffNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_STAFF_NUMBER", "Staff number cannot exceed 50 characters")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("Unknown staff role %q", role))
	}

	m := &Member{
		AuditedAggregateRoot: shared.NewAuditedAggregateRootWithActor(createdBy),
		StaffNumber:          staffNumber,
		FullName:             fullName,
		Role:                 role,
		Department:           department,
		Email:                email,
		Phone:                phone,
		Active:               true,
	}

	m.AddDomainEvent(NewMemberCreatedEvent(m))

	return m, nil
}

// UpdateProfile updates the member's directory details
func (m *Member) UpdateProfile(fullName, department, email, phone string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}

	m.FullName = fullName
	m.Department = department
	m.Email = email
	m.Phone = phone
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// ChangeRole changes the member's role
func (m *Member) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("Unknown staff role %q", role))
	}

	m.Role = role
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetHiredAt records when the member was hired
func (m *Member) SetHiredAt(hiredAt time.Time) {
	m.HiredAt = &hiredAt
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Deactivate removes the member from the active directory
func (m *Member) Deactivate() error {
	if !m.Active {
		return shared.NewDomainError("INVALID_STATE", "Staff member is already inactive")
	}

	now := time.Now()
	m.Active = false
	m.DeactivatedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberDeactivatedEvent(m))

	return nil
}

// Activate restores a deactivated member to the active directory
func (m *Member) Activate() error {
	if m.Active {
		return shared.NewDomainError("INVALID_STATE", "Staff member is already active")
	}

	m.Active = true
	m.DeactivatedAt = nil
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberActivatedEvent(m))

	return nil
}
