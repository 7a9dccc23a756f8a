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

type CreateInput struct {
	PetID   uint
	Date    string
	Time    string
	Service string
}

// CreateCustomerAppointment: pedido feito pelo portal, nasce pendente.
type CreateCustomerAppointment struct {
	repo     domain.Repository
	settings Settings
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

func NewCreateCustomerAppointment(
	repo domain.Repository,
	settings Settings,
	audit Auditor,
	notifier Notifier,
) *CreateCustomerAppointment {
	return &CreateCustomerAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *CreateCustomerAppointment) Execute(
	ctx context.Context,
	actor session.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	if actor.ClientID == nil {
		return nil, httperr.ErrBusiness("client_profile_missing")
	}

	date, hm, err := parseSlot(uc.settings.PublicCatalog, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	if date < uc.settings.today(uc.now()) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	pet, client, err := loadNames(ctx, uc.repo, in.PetID)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsClient(pet.ClientID) {
		return nil, httperr.ErrBusiness("pet_not_found")
	}

	if err := ensureBookable(ctx, uc.repo, uc.settings.customerCalculator(), date, hm, ""); err != nil {
		return nil, err
	}

	userID := actor.UserID
	ap := &models.Appointment{
		ClientID: client.ID,
		PetID:    pet.ID,
		UserID:   &userID,
		Date:     date,
		Time:     hm,
		Service:  in.Service,
		Status:   string(domain.InitialStatus(false)),
	}
	domain.Names{Client: client.Name, Pet: pet.Name}.ApplyTo(ap)

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_requested", ap, map[string]any{
		"date": ap.Date,
		"time": ap.Time,
	}))

	uc.notifier.Dispatch(notify.Message{
		To: uc.settings.BusinessPhone,
		Body: fmt.Sprintf(
			"Nueva solicitud de cita: %s (%s) el %s a las %s.",
			ap.PetName, ap.ClientName, ap.Date, ap.Time,
		),
	})

	return ap, nil
}

