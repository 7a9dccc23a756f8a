package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewClientHandler(db *gorm.DB, audit Auditor) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
	Email string `json:"email" binding:"omitempty,email"`
}

type PetRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Species               string  `json:"species"`
	Breed                 string  `json:"breed"`
	LastGroomingDate      *string `json:"last_grooming_date" binding:"omitempty,iso_date"`
	ReminderFrequencyDays *int    `json:"reminder_frequency_days" binding:"omitempty,min=1,max=365"`
}

// PetUpdateRequest: campos ausentes ficam como estão.
type PetUpdateRequest struct {
	Name                  *string `json:"name"`
	Species               *string `json:"species"`
	Breed                 *string `json:"breed"`
	LastGroomingDate      *string `json:"last_grooming_date" binding:"omitempty,iso_date"`
	ReminderFrequencyDays *int    `json:"reminder_frequency_days" binding:"omitempty,min=1,max=365"`
}

func (r PetRequest) toModel(clientID uint) models.Pet {
	return models.Pet{
		ClientID:              clientID,
		Name:                  strings.TrimSpace(r.Name),
		Species:               strings.TrimSpace(r.Species),
		Breed:                 strings.TrimSpace(r.Breed),
		LastGroomingDate:      r.LastGroomingDate,
		ReminderFrequencyDays: r.ReminderFrequencyDays,
	}
}

// ======================================================
// LIST CLIENTS (EQUIPE)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Preload("Pets")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, clients)
}

// Create cadastra cliente de balcão, sem usuário no portal.
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	client := models.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: validators.NormalizePhone(req.Phone),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	writeAudit(h.audit, &actor, "client_created", "client", uintID(client.ID), nil)
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) CreatePet(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	clientID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var client models.Client
	if err := h.db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	pet := req.toModel(client.ID)
	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	writeAudit(h.audit, &actor, "pet_created", "pet", uintID(pet.ID), nil)
	c.JSON(http.StatusCreated, pet)
}

// UpdatePet também é onde a equipe registra o último banho e a frequência
// do lembrete.
func (h *ClientHandler) UpdatePet(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	petID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req PetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var pet models.Pet
	if err := h.db.First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
			return
		}
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	if req.Name != nil {
		pet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		pet.Species = strings.TrimSpace(*req.Species)
	}
	if req.Breed != nil {
		pet.Breed = strings.TrimSpace(*req.Breed)
	}
	if req.LastGroomingDate != nil {
		pet.LastGroomingDate = req.LastGroomingDate
	}
	if req.ReminderFrequencyDays != nil {
		pet.ReminderFrequencyDays = req.ReminderFrequencyDays
	}

	if err := h.db.Save(&pet).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	writeAudit(h.audit, &actor, "pet_updated", "pet", uintID(pet.ID), nil)
	c.JSON(http.StatusOK, pet)
}

// PetWeights devolve o histórico de peso, mais recente primeiro.
func (h *ClientHandler) PetWeights(c *gin.Context) {
	petID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var records []models.WeightRecord
	if err := h.db.
		Where("pet_id = ?", petID).
		Order("recorded_at DESC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "persistence_failed", err.Error())
		return
	}

	httpresp.List(c, records)
}

