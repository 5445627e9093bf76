package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/infrastructure/importer"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
)

// maxSheetSize bounds uploaded delivery sheets
const maxSheetSize = 10 << 20

// ReceivingHandler handles the goods-receipt staging desk of a location
type ReceivingHandler struct {
	receivingService *service.ReceivingService
}

// NewReceivingHandler creates a new receiving handler
func NewReceivingHandler(receivingService *service.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receivingService: receivingService}
}

// Open starts or resumes the location's receiving session
// @Summary Open receiving session
// @Tags receiving
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/open [post]
func (h *ReceivingHandler) Open(c *gin.Context) {
	view, err := h.receivingService.Open(c.Request.Context(), GetLocationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receiving session opened", view)
}

// Get returns the current draft with its live settlement
// @Summary Get draft
// @Tags receiving
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving [get]
func (h *ReceivingHandler) Get(c *gin.Context) {
	view, err := h.receivingService.Open(c.Request.Context(), GetLocationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved successfully", view)
}

// ResolveRecovery accepts or declines the persisted draft offered on open
// @Summary Resolve draft recovery
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.RecoveryRequest true "Decision"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/recovery [post]
func (h *ReceivingHandler) ResolveRecovery(c *gin.Context) {
	var req request.RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.receivingService.ResolveRecovery(c.Request.Context(), GetLocationID(c), *req.Accept)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Draft recovery declined"
	if *req.Accept {
		message = "Draft recovered"
	}
	response.OK(c, message, view)
}

// AddItem adds a catalog item by id or SKU
// @Summary Add item to draft
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.AddItemRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/items [post]
func (h *ReceivingHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Either item_id or sku is required")
		return
	}

	ctx := c.Request.Context()
	locationID := GetLocationID(c)

	var (
		view *service.DraftView
		err  error
	)
	if req.ItemID != nil {
		view, err = h.receivingService.AddItem(ctx, locationID, *req.ItemID)
	} else {
		view, err = h.receivingService.AddBySKU(ctx, locationID, req.SKU)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

// CreateItem creates a catalog item and adds it to the draft
// @Summary Create item and add to draft
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.NewItemRequest true "New item"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/items/new [post]
func (h *ReceivingHandler) CreateItem(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.NewItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.receivingService.CreateAndAddItem(c.Request.Context(), GetLocationID(c), actor, receiving.NewItemSpec{
		Name:           req.Name,
		SKU:            req.SKU,
		CategoryID:     req.CategoryID,
		CostPrice:      req.CostPrice,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created and added", view)
}

// ImportSheet applies an uploaded supplier delivery sheet to the draft
// @Summary Import delivery sheet
// @Tags receiving
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param file formData file true "XLSX delivery sheet"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/items/import [post]
func (h *ReceivingHandler) ImportSheet(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A delivery sheet file is required")
		return
	}
	if header.Size > maxSheetSize {
		response.BadRequest(c, "Delivery sheet is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	sheet, err := importer.Parse(file)
	if err != nil {
		_ = c.Error(err)
		response.BadRequest(c, "Could not parse delivery sheet: "+err.Error())
		return
	}

	result, err := h.receivingService.ImportSheet(c.Request.Context(), GetLocationID(c), sheet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery sheet imported", result)
}

// UpdateLine edits one field of a draft line
// @Summary Update draft line
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param item_id path string true "Item ID"
// @Param request body request.UpdateLineRequest true "Field and value"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/items/{item_id} [patch]
func (h *ReceivingHandler) UpdateLine(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.receivingService.UpdateLine(c.Request.Context(), GetLocationID(c), itemID, receiving.Field(req.Field), *req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line updated", view)
}

// RemoveLine removes a line from the draft
// @Summary Remove draft line
// @Tags receiving
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/items/{item_id} [delete]
func (h *ReceivingHandler) RemoveLine(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	view, err := h.receivingService.RemoveLine(c.Request.Context(), GetLocationID(c), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", view)
}

// SetSupplier selects or clears the draft supplier
// @Summary Select supplier
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.SetSupplierRequest true "Supplier"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/supplier [put]
func (h *ReceivingHandler) SetSupplier(c *gin.Context) {
	var req request.SetSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.receivingService.SetSupplier(c.Request.Context(), GetLocationID(c), req.SupplierID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier updated", view)
}

// CreateSupplier creates a supplier and selects it for the draft
// @Summary Create and select supplier
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.CreateSupplierRequest true "Supplier"
// @Success 201 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/supplier [post]
func (h *ReceivingHandler) CreateSupplier(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	supplier, view, err := h.receivingService.CreateAndSelectSupplier(c.Request.Context(), GetLocationID(c), actor, receiving.NewSupplierSpec{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Type:  enum.SupplierType(req.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created and selected", gin.H{
		"supplier": supplier,
		"draft":    view,
	})
}

// SetDiscount sets the draft discount
// @Summary Set discount
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.DiscountRequest true "Discount"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/discount [put]
func (h *ReceivingHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mode := enum.DiscountMode(req.Mode)
	if mode == "" {
		mode = enum.DiscountModeAmount
	}
	view, err := h.receivingService.SetDiscount(c.Request.Context(), GetLocationID(c), req.Value, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated", view)
}

// SetSettlement sets the payment choices
// @Summary Set settlement
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param request body request.SettlementRequest true "Payment choices"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/settlement [put]
func (h *ReceivingHandler) SetSettlement(c *gin.Context) {
	var req request.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.receivingService.SetPayment(c.Request.Context(), GetLocationID(c), receiving.SettlementInput{
		PaymentMethod:     enum.PaymentMethod(req.PaymentMethod),
		PaymentType:       enum.PaymentType(req.PaymentType),
		PartialAmountPaid: req.PartialAmountPaid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settlement updated", view)
}

// Commit finalizes the draft into a goods receipt
// @Summary Commit draft
// @Tags receiving
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CommitRequest false "Note"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /locations/{location_id}/receiving/commit [post]
func (h *ReceivingHandler) Commit(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CommitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	receipt, err := h.receivingService.Commit(c.Request.Context(), GetLocationID(c), actor, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Goods receipt saved", receipt)
}

// Close leaves the desk; the draft stays persisted for recovery
// @Summary Close receiving session
// @Tags receiving
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Success 204
// @Router /locations/{location_id}/receiving/close [post]
func (h *ReceivingHandler) Close(c *gin.Context) {
	h.receivingService.Close(c.Request.Context(), GetLocationID(c))
	response.NoContent(c)
}

// Discard throws the draft away
// @Summary Discard draft
// @Tags receiving
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Success 204
// @Router /locations/{location_id}/receiving [delete]
func (h *ReceivingHandler) Discard(c *gin.Context) {
	h.receivingService.Discard(c.Request.Context(), GetLocationID(c))
	response.NoContent(c)
}
