package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

type RescheduleInput struct {
	Date string
	Time string
}

// RescheduleAppointment move o agendamento do cliente e o devolve para
// pendente, à espera de nova confirmação.
type RescheduleAppointment struct {
	repo     domain.Repository
	settings Settings
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	settings Settings,
	audit Auditor,
	notifier Notifier,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := loadOwnAppointment(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	date, hm, err := parseSlot(uc.settings.PublicCatalog, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if date < uc.settings.today(uc.now()) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	if err := ensureBookable(ctx, uc.repo, uc.settings.customerCalculator(), date, hm, ap.ID); err != nil {
		return nil, err
	}

	pet, client, err := loadNames(ctx, uc.repo, ap.PetID)
	if err != nil {
		return nil, err
	}

	prevDate, prevTime := ap.Date, ap.Time

	next := *ap
	names := domain.Names{Client: client.Name, Pet: pet.Name}
	if err := domain.Reschedule(&next, date, hm, names); err != nil {
		return nil, err
	}

	if err := saveAppointment(ctx, uc.repo, &next); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_rescheduled", &next, map[string]any{
		"from_date": prevDate,
		"from_time": prevTime,
		"to_date":   next.Date,
		"to_time":   next.Time,
	}))

	uc.notifier.Dispatch(notify.Message{
		To: uc.settings.BusinessPhone,
		Body: fmt.Sprintf(
			"Cita reprogramada: %s (%s) pasó del %s %s al %s %s.",
			next.PetName, next.ClientName, prevDate, prevTime, next.Date, next.Time,
		),
	})

	return &next, nil
}
