package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/staff"
)

// StaffMemberModel is the persistence model for the staff directory.
type StaffMemberModel struct {
	AuditedAggregateModel
	StaffNumber   string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName      string     `gorm:"type:varchar(200);not null"`
	Role          staff.Role `gorm:"type:varchar(20);not null;index"`
	Department    string     `gorm:"type:varchar(100)"`
	Email         string     `gorm:"type:varchar(200)"`
	Phone         string     `gorm:"type:varchar(50)"`
	Active        bool       `gorm:"not null;default:true;index"`
	HiredAt       *time.Time
	DeactivatedAt *time.Time
}

// TableName returns the table name for GORM
func (StaffMemberModel) TableName() string {
	return "staff_members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *StaffMemberModel) ToDomain() *staff.Member {
	return &staff.Member{
		AuditedAggregateRoot: m.ToDomainAggregateRoot(),
		StaffNumber:          m.StaffNumber,
		FullName:             m.FullName,
		Role:                 m.Role,
		Department:           m.Department,
		Email:                m.Email,
		Phone:                m.Phone,
		Active:               m.Active,
		HiredAt:              m.HiredAt,
		DeactivatedAt:        m.DeactivatedAt,
	}
}

// FromDomain populates the persistence model from a domain Member entity.
func (m *StaffMemberModel) FromDomain(member *staff.Member) {
	m.FromDomainAggregateRoot(member.AuditedAggregateRoot)
	m.StaffNumber = member.StaffNumber
	m.FullName = member.FullName
	m.Role = member.Role
	m.Department = member.Department
	m.Email = member.Email
	m.Phone = member.Phone
	m.Active = member.Active
	m.HiredAt = member.HiredAt
	m.DeactivatedAt = member.DeactivatedAt
}

// StaffMemberModelFromDomain creates a new persistence model from a domain Member.
func StaffMemberModelFromDomain(member *staff.Member) *StaffMemberModel {
	m := &StaffMemberModel{}
	m.FromDomain(member)
	return m
}
