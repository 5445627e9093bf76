package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-receiving/pkg/pagination"
)

// ReceiptHandler handles committed goods receipts
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing a location's goods receipts
// @Summary List goods receipts
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.GoodsReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Unpaid: filter.Unpaid,
	}

	if filter.SupplierID != "" {
		if supplierID, err := uuid.Parse(filter.SupplierID); err == nil {
			params.SupplierID = &supplierID
		}
	}

	if filter.StartDate != "" {
		if startDate, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &startDate
		}
	}

	if filter.EndDate != "" {
		if endDate, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Goods receipts retrieved successfully", result)
}

// Get handles retrieving one goods receipt with its lines
// @Summary Get goods receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receipt ID or receipt number (GRN-...)"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Goods receipt retrieved successfully", receipt)
}
