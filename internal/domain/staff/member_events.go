package staff

import (
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MemberCreatedEvent is raised when a staff member joins the directory
type MemberCreatedEvent struct {
	shared.BaseDomainEvent
	MemberID    uuid.UUID `json:"member_id"`
	StaffNumber string    `json:"staff_number"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	Department  string    `json:"department"`
}

// EventType returns the event type name
func (e *MemberCreatedEvent) EventType() string {
	return "StaffMemberCreated"
}

// NewMemberCreatedEvent creates a new MemberCreatedEvent
func NewMemberCreatedEvent(m *Member) *MemberCreatedEvent {
	return &MemberCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StaffMemberCreated", "StaffMember", m.ID),
		MemberID:        m.ID,
		StaffNumber:     m.StaffNumber,
		FullName:        m.FullName,
		Role:            m.Role,
		Department:      m.Department,
	}
}

// MemberDeactivatedEvent is raised when a staff member is deactivated
type MemberDeactivatedEvent struct {
	shared.BaseDomainEvent
	MemberID    uuid.UUID `json:"member_id"`
	StaffNumber string    `json:"staff_number"`
}

// EventType returns the event type name
func (e *MemberDeactivatedEvent) EventType() string {
	return "StaffMemberDeactivated"
}

// NewMemberDeactivatedEvent creates a new MemberDeactivatedEvent
func NewMemberDeactivatedEvent(m *Member) *MemberDeactivatedEvent {
	return &MemberDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StaffMemberDeactivated", "StaffMember", m.ID),
		MemberID:        m.ID,
		StaffNumber:     m.StaffNumber,
	}
}

// MemberActivatedEvent is raised when a staff member is reactivated
type MemberActivatedEvent struct {
	shared.BaseDomainEvent
	MemberID    uuid.UUID `json:"member_id"`
	StaffNumber string    `json:"staff_number"`
}

// EventType returns the event type name
func (e *MemberActivatedEvent) EventType() string {
	return "StaffMemberActivated"
}

// NewMemberActivatedEvent creates a new MemberActivatedEvent
func NewMemberActivatedEvent(m *Member) *MemberActivatedEvent {
	return &MemberActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StaffMemberActivated", "StaffMember", m.ID),
		MemberID:        m.ID,
		StaffNumber:     m.StaffNumber,
	}
}
