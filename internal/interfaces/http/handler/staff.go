package handler

import (
	staffapp "github.com/clinicore/backend/internal/application/staff"
	"github.com/gin-gonic/gin"
)

// StaffHandler handles staff directory API endpoints
type StaffHandler struct {
	BaseHandler
	memberService *staffapp.MemberService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(memberService *staffapp.MemberService) *StaffHandler {
	return &StaffHandler{memberService: memberService}
}

// Create adds a new staff member to the directory
// POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Actor identity required")
		return
	}

	var req staffapp.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// List lists staff members with filtering
// GET /api/v1/staff
func (h *StaffHandler) List(c *gin.Context) {
	var filter staffapp.MemberListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	members, total, err := h.memberService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, members, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a staff member by ID
// GET /api/v1/staff/:id
func (h *StaffHandler) GetByID(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Update updates a staff member's profile
// PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	var req staffapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// ChangeRole changes a staff member's role
// PUT /api/v1/staff/:id/role
func (h *StaffHandler) ChangeRole(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	var req staffapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	member, err := h.memberService.ChangeRole(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Delete removes a staff member record
// DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), memberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate deactivates a staff member
// POST /api/v1/staff/:id/deactivate
func (h *StaffHandler) Deactivate(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	member, err := h.memberService.Deactivate(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Activate reactivates a deactivated staff member
// POST /api/v1/staff/:id/activate
func (h *StaffHandler) Activate(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff member ID")
		return
	}

	member, err := h.memberService.Activate(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}
