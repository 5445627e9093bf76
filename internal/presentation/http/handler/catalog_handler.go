package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/presentation/http/dto/response"
)

// CatalogHandler serves the location-priced catalog the desk picks from
type CatalogHandler struct {
	catalogService  *service.CatalogService
	categoryService *service.CategoryService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, categoryService *service.CategoryService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		categoryService: categoryService,
	}
}

// List returns the catalog priced for the location
// @Summary List catalog
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param location_id path string true "Location ID"
// @Param sku query string false "Exact SKU lookup"
// @Success 200 {object} response.APIResponse
// @Router /locations/{location_id}/catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	locationID := GetLocationID(c)

	if sku := c.Query("sku"); sku != "" {
		item, err := h.catalogService.FindBySKU(ctx, locationID, sku)
		if err != nil {
			response.Error(c, err)
			return
		}
		if item == nil {
			response.NotFound(c, "Catalog item not found")
			return
		}
		response.OK(c, "Catalog item retrieved successfully", item)
		return
	}

	items, err := h.catalogService.Items(ctx, locationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog retrieved successfully", items)
}

// Categories lists the categories a new item can be filed under
// @Summary List categories
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}
