package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

// CancelAppointment: cliente cancela um agendamento próprio.
type CancelAppointment struct {
	repo     domain.Repository
	settings Settings
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	settings Settings,
	audit Auditor,
	notifier Notifier,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := loadOwnAppointment(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	next := *ap
	if err := domain.Cancel(&next, uc.now()); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_cancelled", &next, nil))

	uc.notifier.Dispatch(notify.Message{
		To: uc.settings.BusinessPhone,
		Body: fmt.Sprintf(
			"Cita cancelada: %s (%s) el %s a las %s.",
			next.PetName, next.ClientName, next.Date, next.Time,
		),
	})

	return &next, nil
}
