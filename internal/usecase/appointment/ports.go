package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Dispatch(msg notify.Message)
}

// Settings são as regras de agenda vindas da configuração.
type Settings struct {
	Timezone      string
	StaffCatalog  domain.SlotCatalog
	PublicCatalog domain.SlotCatalog
	SlotCapacity  int
	BusinessPhone string
}

func (s Settings) staffCalculator() domain.Calculator {
	return domain.NewStaffCalculator(s.StaffCatalog, s.SlotCapacity)
}

func (s Settings) customerCalculator() domain.Calculator {
	return domain.NewCustomerCalculator(s.PublicCatalog)
}

func (s Settings) today(now time.Time) string {
	return timezone.DateOf(now, s.Timezone)
}

// ======================================================
// HELPERS
// ======================================================

func loadAppointment(
	ctx context.Context,
	repo domain.Repository,
	id string,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return ap, nil
}

// saveAppointment traduz a linha sumida entre leitura e escrita.
func saveAppointment(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
) error {

	if err := repo.UpdateAppointment(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}
	return nil
}

// loadOwnAppointment esconde agendamentos de outros clientes.
func loadOwnAppointment(
	ctx context.Context,
	repo domain.Repository,
	actor session.Actor,
	id string,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && !actor.OwnsClient(ap.ClientID) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

// loadNames busca pet e cliente para as cópias desnormalizadas.
func loadNames(
	ctx context.Context,
	repo domain.Repository,
	petID uint,
) (*models.Pet, *models.Client, error) {

	pet, err := repo.GetPet(ctx, petID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrBusiness("pet_not_found")
		}
		return nil, nil, err
	}

	client, err := repo.GetClient(ctx, pet.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, nil, err
	}

	return pet, client, nil
}

func parseSlot(
	catalog domain.SlotCatalog,
	date string,
	hm string,
) (string, string, error) {

	if !timezone.IsDate(date) {
		return "", "", httperr.ErrBusiness("invalid_date")
	}

	t, err := domain.NormalizeTime(hm)
	if err != nil {
		return "", "", httperr.ErrBusiness("invalid_time")
	}

	if !catalog.Contains(t) {
		return "", "", httperr.ErrBusiness("slot_not_in_catalog")
	}

	return date, t, nil
}

// ensureBookable recalcula o dia e recusa horário lotado ou bloqueado.
// excludeID ignora o próprio agendamento numa remarcação.
func ensureBookable(
	ctx context.Context,
	repo domain.Repository,
	calc domain.Calculator,
	date string,
	hm string,
	excludeID string,
) error {

	day, err := computeDay(ctx, repo, calc, date, excludeID)
	if err != nil {
		return err
	}

	if !day.IsAvailable(hm) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func computeDay(
	ctx context.Context,
	repo domain.Repository,
	calc domain.Calculator,
	date string,
	excludeID string,
) (domain.DayAvailability, error) {

	occupying, err := repo.ListOccupyingForDay(ctx, date)
	if err != nil {
		return domain.DayAvailability{}, err
	}

	if excludeID != "" {
		kept := occupying[:0:0]
		for _, ap := range occupying {
			if ap.ID != excludeID {
				kept = append(kept, ap)
			}
		}
		occupying = kept
	}

	next, err := timezone.AddDays(date, 1)
	if err != nil {
		return domain.DayAvailability{}, httperr.ErrBusiness("invalid_date")
	}

	blocks, err := repo.ListBlockedSlots(ctx, date, next)
	if err != nil {
		return domain.DayAvailability{}, err
	}

	return calc.Compute(date, occupying, blocks), nil
}

func actorEvent(actor session.Actor, action string, ap *models.Appointment, meta any) audit.Event {
	userID := actor.UserID
	return audit.Event{
		ActorID:   &userID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    "appointment",
		EntityID:  ap.ID,
		Metadata:  meta,
	}
}

// notifyClient é best-effort: sem cliente ou telefone, nada é enviado.
func notifyClient(
	ctx context.Context,
	repo domain.Repository,
	n Notifier,
	clientID uint,
	body func(c *models.Client) string,
) {
	client, err := repo.GetClient(ctx, clientID)
	if err != nil || client.Phone == "" {
		return
	}
	n.Dispatch(notify.Message{To: client.Phone, Body: body(client)})
}
