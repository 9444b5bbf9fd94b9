package handler

import (
	inventoryapp "github.com/clinicore/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles supply inventory API endpoints
type InventoryHandler struct {
	BaseHandler
	supplyService *inventoryapp.SupplyService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(supplyService *inventoryapp.SupplyService) *InventoryHandler {
	return &InventoryHandler{supplyService: supplyService}
}

// Create creates a new supply item
// POST /api/v1/supplies
func (h *InventoryHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Actor identity required")
		return
	}

	var req inventoryapp.CreateSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.supplyService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List lists supply items with filtering
// GET /api/v1/supplies
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.SupplyItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, total, err := h.supplyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a supply item by ID
// GET /api/v1/supplies/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	item, err := h.supplyService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// GetBySKU retrieves a supply item by SKU
// GET /api/v1/supplies/sku/:sku
func (h *InventoryHandler) GetBySKU(c *gin.Context) {
	item, err := h.supplyService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update updates a supply item's reorder level or unit cost
// PUT /api/v1/supplies/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	var req inventoryapp.UpdateSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.supplyService.Update(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Receive records received stock
// POST /api/v1/supplies/:id/receive
func (h *InventoryHandler) Receive(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.supplyService.Receive(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Consume records consumed stock
// POST /api/v1/supplies/:id/consume
func (h *InventoryHandler) Consume(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	var req inventoryapp.ConsumeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.supplyService.Consume(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Adjust corrects the quantity on hand after a physical count
// POST /api/v1/supplies/:id/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.supplyService.Adjust(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete deletes a supply item
// DELETE /api/v1/supplies/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply item ID")
		return
	}

	if err := h.supplyService.Delete(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
