package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit Auditor,
	notifier Notifier,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}

	next := *ap
	if err := domain.Confirm(&next, uc.now()); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_confirmed", &next, nil))

	notifyClient(ctx, uc.repo, uc.notifier, next.ClientID, func(c *models.Client) string {
		return fmt.Sprintf(
			"Hola %s, tu cita para %s el %s a las %s fue confirmada.",
			c.Name, next.PetName, next.Date, next.Time,
		)
	})

	return &next, nil
}
