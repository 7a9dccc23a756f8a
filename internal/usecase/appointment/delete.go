package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

// DeleteAppointment remove o agendamento em qualquer status.
// Arquivos no storage não são apagados.
type DeleteAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit Auditor,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
) error {

	if !actor.IsOwner() {
		return httperr.ErrBusiness("owner_only")
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_deleted", &models.Appointment{ID: appointmentID}, nil))

	return nil
}
