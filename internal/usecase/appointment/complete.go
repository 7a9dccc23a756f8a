package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

type CompleteInput struct {
	Details        domain.CompletionDetails
	ArrivalPhoto   *domain.Upload
	DeparturePhoto *domain.Upload
	Receipt        *domain.Upload
}

// CompleteAppointment fecha o atendimento.
//
// Nada é enviado ao storage nem gravado antes de CheckCompletion passar.
// Depois disso a ordem é fixa: fotos, recibo, status, histórico de peso.
// Um passo com erro interrompe o fluxo e os anteriores permanecem.
type CompleteAppointment struct {
	repo  domain.Repository
	store domain.FileStore
	audit Auditor
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	store domain.FileStore,
	audit Auditor,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		store: store,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
	in CompleteInput,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	next := *ap
	in.Details.ApplyTo(&next)

	stored, err := uc.repo.ListPhotos(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	state := domain.CompletionState{
		HasArrivalPhoto:   in.ArrivalPhoto != nil || hasPhoto(stored, domain.PhotoArrival),
		HasDeparturePhoto: in.DeparturePhoto != nil || hasPhoto(stored, domain.PhotoDeparture),
		Weight:            next.FinalWeight,
	}
	if err := domain.CheckCompletion(state); err != nil {
		return nil, err
	}

	// -------- uploads --------
	if in.ArrivalPhoto != nil {
		if _, err := storePhoto(ctx, uc.repo, uc.store, ap.ID, domain.PhotoArrival, *in.ArrivalPhoto); err != nil {
			return nil, err
		}
	}
	if in.DeparturePhoto != nil {
		if _, err := storePhoto(ctx, uc.repo, uc.store, ap.ID, domain.PhotoDeparture, *in.DeparturePhoto); err != nil {
			return nil, err
		}
	}
	if in.Receipt != nil {
		file, err := uc.store.SaveReceipt(ctx, ap.ID, *in.Receipt)
		if err != nil {
			return nil, err
		}
		next.InvoiceURL = file.URL
	}

	// -------- status --------
	now := uc.now()
	if err := domain.Complete(&next, now, state); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	// -------- histórico de peso --------
	if err := uc.repo.CreateWeightRecord(ctx, &models.WeightRecord{
		PetID:         next.PetID,
		AppointmentID: next.ID,
		Weight:        *next.FinalWeight,
		RecordedBy:    actor.UserID,
		RecordedAt:    now,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_completed", &next, map[string]any{
		"final_weight": *next.FinalWeight,
	}))

	return &next, nil
}

func hasPhoto(photos []models.AppointmentPhoto, kind domain.PhotoType) bool {
	for _, p := range photos {
		if p.Type == string(kind) && p.URL != "" {
			return true
		}
	}
	return false
}
