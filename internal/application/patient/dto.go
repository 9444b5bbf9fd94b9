package patient

import (
	"time"

	"github.com/clinicore/backend/internal/domain/patient"
	"github.com/google/uuid"
)

// RegisterPatientRequest represents a request to register a patient
type RegisterPatientRequest struct {
	MedicalRecordNumber string     `json:"medical_record_number" binding:"required,min=1,max=50"`
	FullName            string     `json:"full_name" binding:"required,min=1,max=200"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Email               string     `json:"email" binding:"omitempty,email"`
	Phone               string     `json:"phone" binding:"max=50"`
}

// UpdatePatientRequest represents a request to update a patient record
type UpdatePatientRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
}

// PatientListFilter represents filter options for patient queries
type PatientListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PatientResponse represents a patient in API responses
type PatientResponse struct {
	ID                  uuid.UUID  `json:"id"`
	MedicalRecordNumber string     `json:"medical_record_number"`
	FullName            string     `json:"full_name"`
	DateOfBirth         *time.Time `json:"date_of_birth,omitempty"`
	Email               string     `json:"email,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToPatientResponse converts a domain patient to a response DTO
func ToPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:                  p.ID,
		MedicalRecordNumber: p.MedicalRecordNumber,
		FullName:            p.FullName,
		DateOfBirth:         p.DateOfBirth,
		Email:               p.Email,
		Phone:               p.Phone,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToPatientResponses converts a slice of domain patients to response DTOs
func ToPatientResponses(patients []patient.Patient) []PatientResponse {
	responses := make([]PatientResponse, len(patients))
	for i := range patients {
		responses[i] = ToPatientResponse(&patients[i])
	}
	return responses
}
