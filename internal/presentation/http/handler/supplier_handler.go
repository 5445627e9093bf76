package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
)

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suppliers retrieved successfully", suppliers)
}

// Create handles supplier creation
// @Summary Create supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateSupplierRequest true "Supplier"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
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

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), receiving.NewSupplierSpec{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Type:      enum.SupplierType(req.Type),
		CreatedBy: actor.ID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created successfully", supplier)
}
