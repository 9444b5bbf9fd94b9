package staff

import (
	"time"

	"github.com/clinicore/backend/internal/domain/staff"
	"github.com/google/uuid"
)

// CreateMemberRequest represents a request to add a staff member to the directory
type CreateMemberRequest struct {
	StaffNumber string     `json:"staff_number" binding:"required,min=1,max=50"`
	FullName    string     `json:"full_name" binding:"required,min=1,max=200"`
	Role        string     `json:"role" binding:"required"`
	Department  string     `json:"department" binding:"max=100"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone" binding:"max=50"`
	HiredAt     *time.Time `json:"hired_at"`
}

// UpdateMemberRequest represents a request to update a staff member's profile
type UpdateMemberRequest struct {
	FullName   *string `json:"full_name"`
	Department *string `json:"department"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
}

// ChangeRoleRequest represents a request to change a staff member's role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// MemberListFilter represents filter options for the staff directory
type MemberListFilter struct {
	Search   string  `form:"search"`
	Role     *string `form:"role"`
	Active   *bool   `form:"active"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MemberResponse represents a staff member in API responses
type MemberResponse struct {
	ID            uuid.UUID  `json:"id"`
	StaffNumber   string     `json:"staff_number"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role"`
	Department    string     `json:"department,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Active        bool       `json:"active"`
	HiredAt       *time.Time `json:"hired_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToMemberResponse converts a domain member to a response DTO
func ToMemberResponse(m *staff.Member) MemberResponse {
	return MemberResponse{
		ID:            m.ID,
		StaffNumber:   m.StaffNumber,
		FullName:      m.FullName,
		Role:          string(m.Role),
		Department:    m.Department,
		Email:         m.Email,
		Phone:         m.Phone,
		Active:        m.Active,
		HiredAt:       m.HiredAt,
		DeactivatedAt: m.DeactivatedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToMemberResponses converts a slice of domain members to response DTOs
func ToMemberResponses(members []staff.Member) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i := range members {
		responses[i] = ToMemberResponse(&members[i])
	}
	return responses
}
