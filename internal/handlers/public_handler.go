package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
)

type PublicHandler struct {
	catalog  domain.SlotCatalog
	timezone string
}

func NewPublicHandler(catalog domain.SlotCatalog, tz string) *PublicHandler {
	return &PublicHandler{
		catalog:  catalog,
		timezone: tz,
	}
}

// Slots devolve o catálogo que o cliente pode reservar.
func (h *PublicHandler) Slots(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"slots":    h.catalog.Times(),
		"timezone": h.timezone,
	})
}
