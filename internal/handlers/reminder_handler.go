package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/dashboard"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/reminder"
)

type ReminderHandler struct {
	due       *reminder.ListDuePets
	dashboard *dashboard.GetCounts
}

func NewReminderHandler(due *reminder.ListDuePets, counts *dashboard.GetCounts) *ReminderHandler {
	return &ReminderHandler{
		due:       due,
		dashboard: counts,
	}
}

func (h *ReminderHandler) Due(c *gin.Context) {
	list, err := h.due.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

// Dashboard nunca falha: contadores indisponíveis vêm em "degraded".
func (h *ReminderHandler) Dashboard(c *gin.Context) {
	httpresp.OK(c, h.dashboard.Execute(c.Request.Context()))
}
