package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

// SaveProgress grava os campos de fechamento sem mudar o status.
type SaveProgress struct {
	repo  domain.Repository
	audit Auditor
}

func NewSaveProgress(
	repo domain.Repository,
	audit Auditor,
) *SaveProgress {
	return &SaveProgress{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SaveProgress) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
	details domain.CompletionDetails,
) (*models.Appointment, error) {

	if details.FinalWeight != nil && !domain.ValidWeight(details.FinalWeight) {
		return nil, httperr.ErrBusiness("invalid_weight")
	}

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}

	next := *ap
	if err := domain.SaveProgress(&next, details); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_progress_saved", &next, nil))

	return &next, nil
}
