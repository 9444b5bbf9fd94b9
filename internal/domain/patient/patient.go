package patient

import (
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Patient represents a patient registry entry. Invoices reference patients
// by ID and carry a denormalized copy of the name.
type Patient struct {
	shared.AuditedAggregateRoot
	MedicalRecordNumber string     `json:"medical_record_number"`
	FullName            string     `json:"full_name"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
}

// NewPatient creates a new patient record
func NewPatient(mrn, fullName string, dateOfBirth *time.Time, email, phone string, createdBy uuid.UUID) (*Patient, error) {
	if mrn == "" {
		return nil, shared.NewDomainError("INVALID_MRN", "Medical record number cannot be empty")
	}
	if len(mrn) > 50 {
		return nil, shared.NewDomainError("INVALID_MRN", "Medical record number cannot exceed 50 characters")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Patient name cannot be empty")
	}

	return &Patient{
		AuditedAggregateRoot: shared.NewAuditedAggregateRootWithActor(createdBy),
		MedicalRecordNumber:  mrn,
		FullName:             fullName,
		DateOfBirth:          dateOfBirth,
		Email:                email,
		Phone:                phone,
	}, nil
}

// UpdateContact updates the patient's contact details
func (p *Patient) UpdateContact(email, phone string) {
	p.Email = email
	p.Phone = phone
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Rename corrects the patient's name
func (p *Patient) Rename(fullName string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Patient name cannot be empty")
	}

	p.FullName = fullName
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
