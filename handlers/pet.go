package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/pet"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

type PetHandler struct {
	PetService pet.PetService
}

func NewPetHandler(svc pet.PetService) *PetHandler {
	return &PetHandler{PetService: svc}
}

// ListPets handles GET /api/pets.
func (h *PetHandler) ListPets(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	pets, err := h.PetService.ListOwnerPets(c.Request.Context(), current.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// CreatePet handles POST /api/pets.
func (h *PetHandler) CreatePet(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.PetRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.PetService.AddPet(c.Request.Context(), current.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
