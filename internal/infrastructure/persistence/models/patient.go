package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/patient"
)

// PatientModel is the persistence model for the patient registry.
type PatientModel struct {
	AuditedAggregateModel
	MedicalRecordNumber string `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName            string `gorm:"type:varchar(200);not null;index"`
	DateOfBirth         *time.Time
	Email               string `gorm:"type:varchar(200)"`
	Phone               string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PatientModel) TableName() string {
	return "patients"
}

// ToDomain converts the persistence model to a domain Patient entity.
func (m *PatientModel) ToDomain() *patient.Patient {
	return &patient.Patient{
		AuditedAggregateRoot: m.ToDomainAggregateRoot(),
		MedicalRecordNumber:  m.MedicalRecordNumber,
		FullName:             m.FullName,
		DateOfBirth:          m.DateOfBirth,
		Email:                m.Email,
		Phone:                m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Patient entity.
func (m *PatientModel) FromDomain(p *patient.Patient) {
	m.FromDomainAggregateRoot(p.AuditedAggregateRoot)
	m.MedicalRecordNumber = p.MedicalRecordNumber
	m.FullName = p.FullName
	m.DateOfBirth = p.DateOfBirth
	m.Email = p.Email
	m.Phone = p.Phone
}

// PatientModelFromDomain creates a new persistence model from a domain Patient.
func PatientModelFromDomain(p *patient.Patient) *PatientModel {
	m := &PatientModel{}
	m.FromDomain(p)
	return m
}
