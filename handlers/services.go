package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/catalog"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	CatalogService catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: svc}
}

// ListActiveServices handles GET /api/services.
func (h *CatalogHandler) ListActiveServices(c *gin.Context) {
	items, err := h.CatalogService.ListActive(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAllServices handles GET /api/admin/services.
func (h *CatalogHandler) ListAllServices(c *gin.Context) {
	items, err := h.CatalogService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateService handles POST /api/admin/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.CatalogService.CreateService(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService handles PUT /api/admin/services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.CatalogService.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteService handles DELETE /api/admin/services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.CatalogService.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
