package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type MeHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewMeHandler(db *gorm.DB, audit Auditor) *MeHandler {
	return &MeHandler{db: db, audit: audit}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, actor.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	out := gin.H{"user": userView(&user)}

	if actor.ClientID != nil {
		var client models.Client
		if err := h.db.Preload("Pets").First(&client, *actor.ClientID).Error; err == nil {
			out["client"] = client
		}
	}

	c.JSON(http.StatusOK, out)
}

func (h *MeHandler) ListPets(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if actor.ClientID == nil {
		respondError(c, httperr.ErrBusiness("client_profile_missing"))
		return
	}

	var pets []models.Pet
	if err := h.db.
		Where("client_id = ?", *actor.ClientID).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, pets)
}

func (h *MeHandler) CreatePet(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if actor.ClientID == nil {
		respondError(c, httperr.ErrBusiness("client_profile_missing"))
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pet := req.toModel(*actor.ClientID)
	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	writeAudit(h.audit, &actor, "pet_created", "pet", uintID(pet.ID), nil)
	c.JSON(http.StatusCreated, pet)
}
