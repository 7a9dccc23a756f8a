package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	CreateCustomer *ucAppointment.CreateCustomerAppointment
	CreateStaff    *ucAppointment.CreateStaffAppointment
	Confirm        *ucAppointment.ConfirmAppointment
	Reject         *ucAppointment.RejectAppointment
	Cancel         *ucAppointment.CancelAppointment
	Reschedule     *ucAppointment.RescheduleAppointment
	SaveProgress   *ucAppointment.SaveProgress
	AttachPhoto    *ucAppointment.AttachPhoto
	Complete       *ucAppointment.CompleteAppointment
	Delete         *ucAppointment.DeleteAppointment
	Availability   *ucAppointment.GetAvailability
	List           *ucAppointment.ListAppointments
	Detail         *ucAppointment.GetAppointmentDetail
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PetID   uint   `json:"pet_id" binding:"required"`
	Date    string `json:"date" binding:"required,iso_date"`
	Time    string `json:"time" binding:"required,slot_time"`
	Service string `json:"service"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required,iso_date"`
	Time string `json:"time" binding:"required,slot_time"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ProgressRequest struct {
	Observations  *string  `json:"observations"`
	FinalWeight   *float64 `json:"final_weight"`
	ServicePrice  *float64 `json:"service_price" binding:"omitempty,gte=0"`
	PaymentMethod *string  `json:"payment_method"`
	ShampooType   *string  `json:"shampoo_type"`
	InvoiceRef    *string  `json:"invoice_ref"`
}

func (r ProgressRequest) details() domain.CompletionDetails {
	return domain.CompletionDetails{
		Observations:  r.Observations,
		FinalWeight:   r.FinalWeight,
		ServicePrice:  r.ServicePrice,
		PaymentMethod: r.PaymentMethod,
		ShampooType:   r.ShampooType,
		InvoiceRef:    r.InvoiceRef,
	}
}

func (r CreateAppointmentRequest) input() ucAppointment.CreateInput {
	return ucAppointment.CreateInput{
		PetID:   r.PetID,
		Date:    r.Date,
		Time:    r.Time,
		Service: strings.TrimSpace(r.Service),
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) StaffAvailability(c *gin.Context) {
	h.availability(c, ucAppointment.ViewStaff)
}

func (h *AppointmentHandler) PublicAvailability(c *gin.Context) {
	h.availability(c, ucAppointment.ViewCustomer)
}

func (h *AppointmentHandler) availability(c *gin.Context, view ucAppointment.View) {
	day, err := h.uc.Availability.Execute(c.Request.Context(), c.Query("date"), view)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, day)
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) CustomerCreate(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.uc.CreateCustomer.Execute(c.Request.Context(), actor, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	list, err := h.uc.List.ForCustomer(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), actor, c.Param("id"), ucAppointment.RescheduleInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// Detail serve a equipe e o próprio cliente.
func (h *AppointmentHandler) Detail(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	out, err := h.uc.Detail.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// STAFF
// ======================================================

func (h *AppointmentHandler) StaffCreate(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.uc.CreateStaff.Execute(c.Request.Context(), actor, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

// List aceita ?date=AAAA-MM-DD e ?status=pendiente,confirmada.
func (h *AppointmentHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	list, err := h.uc.List.Execute(c.Request.Context(), ucAppointment.ListQuery{
		Date:     c.Query("date"),
		Statuses: queryList(c, "status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListMonth(c *gin.Context) {
	year, ok := queryInt(c, "year", 0)
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", 0)
	if !ok {
		return
	}

	list, err := h.uc.List.Month(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	ap, err := h.uc.Confirm.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	ap, err := h.uc.Reject.Execute(c.Request.Context(), actor, c.Param("id"), strings.TrimSpace(req.Reason))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) SaveProgress(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.uc.SaveProgress.Execute(c.Request.Context(), actor, c.Param("id"), req.details())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// AttachPhoto: PUT multipart com o arquivo no campo "photo".
func (h *AppointmentHandler) AttachPhoto(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	kind, err := domain.ParsePhotoType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	up, closeFn, err := formUpload(c, "photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_upload", err.Error())
		return
	}
	if up == nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo photo.")
		return
	}
	defer closeFn()

	photo, err := h.uc.AttachPhoto.Execute(c.Request.Context(), actor, c.Param("id"), kind, *up)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, photo)
}

// Complete aceita multipart (campos + arrival_photo, departure_photo,
// receipt) ou JSON só com os campos.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var in ucAppointment.CompleteInput

	if c.ContentType() == "application/json" {
		var req ProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		in.Details = req.details()
	} else {
		details, err := formDetails(c)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
		in.Details = details

		var closers []func()
		defer func() {
			for _, fn := range closers {
				fn()
			}
		}()

		for field, dst := range map[string]**domain.Upload{
			"arrival_photo":   &in.ArrivalPhoto,
			"departure_photo": &in.DeparturePhoto,
			"receipt":         &in.Receipt,
		} {
			up, closeFn, err := formUpload(c, field)
			if err != nil {
				httperr.BadRequest(c, "invalid_upload", err.Error())
				return
			}
			if up != nil {
				*dst = up
				closers = append(closers, closeFn)
			}
		}
	}

	ap, err := h.uc.Complete.Execute(c.Request.Context(), actor, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// MULTIPART HELPERS
// ======================================================

// formUpload devolve nil quando o campo não veio.
func formUpload(c *gin.Context, field string) (*domain.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &domain.Upload{
		Filename:    fh.Filename,
		ContentType: contentTypeOf(fh),
		Body:        f,
	}, func() { f.Close() }, nil
}

func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func formDetails(c *gin.Context) (domain.CompletionDetails, error) {
	var d domain.CompletionDetails

	optString := func(key string) *string {
		v, ok := c.GetPostForm(key)
		if !ok {
			return nil
		}
		v = strings.TrimSpace(v)
		return &v
	}
	optFloat := func(key string) (*float64, error) {
		raw, ok := c.GetPostForm(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
		if err != nil {
			return nil, errors.New(key + " inválido")
		}
		return &v, nil
	}

	var err error
	if d.FinalWeight, err = optFloat("final_weight"); err != nil {
		return d, err
	}
	if d.ServicePrice, err = optFloat("service_price"); err != nil {
		return d, err
	}
	d.Observations = optString("observations")
	d.PaymentMethod = optString("payment_method")
	d.ShampooType = optString("shampoo_type")
	d.InvoiceRef = optString("invoice_ref")

	return d, nil
}
