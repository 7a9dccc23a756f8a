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

// CreateStaffAppointment: agendamento feito pela equipe, já confirmado.
type CreateStaffAppointment struct {
	repo     domain.Repository
	settings Settings
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

func NewCreateStaffAppointment(
	repo domain.Repository,
	settings Settings,
	audit Auditor,
	notifier Notifier,
) *CreateStaffAppointment {
	return &CreateStaffAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *CreateStaffAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	date, hm, err := parseSlot(uc.settings.StaffCatalog, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	pet, client, err := loadNames(ctx, uc.repo, in.PetID)
	if err != nil {
		return nil, err
	}

	if err := ensureBookable(ctx, uc.repo, uc.settings.staffCalculator(), date, hm, ""); err != nil {
		return nil, err
	}

	now := uc.now()
	userID := actor.UserID
	ap := &models.Appointment{
		ClientID:    client.ID,
		PetID:       pet.ID,
		UserID:      &userID,
		Date:        date,
		Time:        hm,
		Service:     in.Service,
		Status:      string(domain.InitialStatus(true)),
		ConfirmedAt: &now,
	}
	domain.Names{Client: client.Name, Pet: pet.Name}.ApplyTo(ap)

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_created", ap, map[string]any{
		"date": ap.Date,
		"time": ap.Time,
	}))

	uc.notifier.Dispatch(notify.Message{
		To: client.Phone,
		Body: fmt.Sprintf(
			"Hola %s, agendamos a %s el %s a las %s.",
			client.Name, pet.Name, ap.Date, ap.Time,
		),
	})

	return ap, nil
}
