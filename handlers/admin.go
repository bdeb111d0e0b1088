package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/pet"
	"okclinic/services/user"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AdminHandler serves the staff console's account and pet tables.
// Bookings, invoices, feedback and services have their own handlers.
type AdminHandler struct {
	UserService user.UserService
	PetService  pet.PetService
	AuthCache   *redis.Client
}

func NewAdminHandler(userSvc user.UserService, petSvc pet.PetService, authCache *redis.Client) *AdminHandler {
	return &AdminHandler{UserService: userSvc, PetService: petSvc, AuthCache: authCache}
}

func (h *AdminHandler) invalidate(c *gin.Context, userID string) {
	if err := utils.InvalidateAuthIdentity(c.Request.Context(), h.AuthCache, userID); err != nil {
		getLogger(c).Warn("Failed to invalidate auth cache", zap.String("userID", userID), zap.Error(err))
	}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req models.AdminUserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.UserService.AdminUpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.invalidate(c, updated.ID)
	c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	h.invalidate(c, id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListPets handles GET /api/admin/pets.
func (h *AdminHandler) ListPets(c *gin.Context) {
	pets, err := h.PetService.ListAllPets(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// UpdatePet handles PUT /api/admin/pets/:id.
func (h *AdminHandler) UpdatePet(c *gin.Context) {
	var req models.PetRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.PetService.UpdatePet(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePet handles DELETE /api/admin/pets/:id.
func (h *AdminHandler) DeletePet(c *gin.Context) {
	if err := h.PetService.DeletePet(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
