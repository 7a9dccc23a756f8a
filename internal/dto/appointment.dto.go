package dto

import (
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// AppointmentSummary é a linha enxuta usada nas listas e no calendário.
type AppointmentSummary struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Service     string `json:"service"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StatusStyle string `json:"status_style"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	PetID       uint   `json:"pet_id"`
	PetName     string `json:"pet_name"`
}

type PhotoDTO struct {
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentDetail traz os campos de fechamento e as fotos.
type AppointmentDetail struct {
	AppointmentSummary

	Observations  string   `json:"observations"`
	FinalWeight   *float64 `json:"final_weight"`
	ServicePrice  *float64 `json:"service_price"`
	PaymentMethod string   `json:"payment_method"`
	ShampooType   string   `json:"shampoo_type"`
	InvoiceRef    string   `json:"invoice_ref"`
	InvoiceURL    string   `json:"invoice_url"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Photos []PhotoDTO `json:"photos"`
}

func SummaryOf(ap models.Appointment) AppointmentSummary {
	p := domain.PresentationOf(domain.Status(ap.Status))
	return AppointmentSummary{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Service:     ap.Service,
		Status:      ap.Status,
		StatusLabel: p.Label,
		StatusStyle: p.Style,
		ClientID:    ap.ClientID,
		ClientName:  ap.ClientName,
		PetID:       ap.PetID,
		PetName:     ap.PetName,
	}
}

func SummariesOf(list []models.Appointment) []AppointmentSummary {
	out := make([]AppointmentSummary, 0, len(list))
	for _, ap := range list {
		out = append(out, SummaryOf(ap))
	}
	return out
}

func DetailOf(ap models.Appointment, photos []models.AppointmentPhoto) AppointmentDetail {
	out := AppointmentDetail{
		AppointmentSummary: SummaryOf(ap),
		Observations:       ap.Observations,
		FinalWeight:        ap.FinalWeight,
		ServicePrice:       ap.ServicePrice,
		PaymentMethod:      ap.PaymentMethod,
		ShampooType:        ap.ShampooType,
		InvoiceRef:         ap.InvoiceRef,
		InvoiceURL:         ap.InvoiceURL,
		ConfirmedAt:        ap.ConfirmedAt,
		CompletedAt:        ap.CompletedAt,
		CancelledAt:        ap.CancelledAt,
		CreatedAt:          ap.CreatedAt,
		UpdatedAt:          ap.UpdatedAt,
		Photos:             make([]PhotoDTO, 0, len(photos)),
	}

	for _, ph := range photos {
		out.Photos = append(out.Photos, PhotoDTO{
			Type:      ph.Type,
			URL:       ph.URL,
			UpdatedAt: ph.UpdatedAt,
		})
	}
	return out
}
