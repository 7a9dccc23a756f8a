package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

type RejectAppointment struct {
	repo     domain.Repository
	audit    Auditor
	notifier Notifier
}

func NewRejectAppointment(
	repo domain.Repository,
	audit Auditor,
	notifier Notifier,
) *RejectAppointment {
	return &RejectAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
	reason string,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}

	next := *ap
	if err := domain.Reject(&next); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	var meta map[string]any
	if reason != "" {
		meta = map[string]any{"reason": reason}
	}
	uc.audit.Dispatch(actorEvent(actor, "appointment_rejected", &next, meta))

	notifyClient(ctx, uc.repo, uc.notifier, next.ClientID, func(c *models.Client) string {
		return fmt.Sprintf(
			"Hola %s, no podremos atender a %s el %s a las %s. Elige otro horario en el portal.",
			c.Name, next.PetName, next.Date, next.Time,
		)
	})

	return &next, nil
}
