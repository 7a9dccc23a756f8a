package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/blockedslot"
)

type BlockedSlotHandler struct {
	svc *blockedslot.Service
}

func NewBlockedSlotHandler(svc *blockedslot.Service) *BlockedSlotHandler {
	return &BlockedSlotHandler{svc: svc}
}

type BlockSlotRequest struct {
	Date   string `json:"date" binding:"required,iso_date"`
	Time   string `json:"time" binding:"required,slot_time"`
	Reason string `json:"reason"`
}

// GET ?from=AAAA-MM-DD&to=AAAA-MM-DD (to exclusivo)
func (h *BlockedSlotHandler) List(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = c.Query("date")
	}

	list, err := h.svc.List(c.Request.Context(), from, c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BlockedSlotHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, created, err := h.svc.Block(c.Request.Context(), actor, req.Date, req.Time, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, b)
}

// Delete aceita o par no corpo JSON ou em ?date=&time=.
func (h *BlockedSlotHandler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	date, hm := c.Query("date"), c.Query("time")
	if c.Request.ContentLength > 0 {
		var req BlockSlotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		date, hm = req.Date, req.Time
	}

	removed, err := h.svc.Unblock(c.Request.Context(), actor, date, hm)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"removed": removed})
}
