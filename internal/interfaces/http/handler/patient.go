package handler

import (
	patientapp "github.com/clinicore/backend/internal/application/patient"
	"github.com/gin-gonic/gin"
)

// PatientHandler handles patient registry API endpoints
type PatientHandler struct {
	BaseHandler
	patientService *patientapp.PatientService
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(patientService *patientapp.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Register registers a new patient
// POST /api/v1/patients
func (h *PatientHandler) Register(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Actor identity required")
		return
	}

	var req patientapp.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	patient, err := h.patientService.Register(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, patient)
}

// List lists patients with search and pagination
// GET /api/v1/patients
func (h *PatientHandler) List(c *gin.Context) {
	var filter patientapp.PatientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	patients, total, err := h.patientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, patients, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a patient by ID
// GET /api/v1/patients/:id
func (h *PatientHandler) GetByID(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, patient)
}

// GetByMRN retrieves a patient by medical record number
// GET /api/v1/patients/mrn/:mrn
func (h *PatientHandler) GetByMRN(c *gin.Context) {
	patient, err := h.patientService.GetByMedicalRecordNumber(c.Request.Context(), c.Param("mrn"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, patient)
}

// Update updates a patient's record
// PUT /api/v1/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}

	var req patientapp.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, patient)
}

// Delete removes a patient from the registry
// DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), patientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
