package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type ListQuery struct {
	Date     string
	Statuses []string
	Limit    int
	Offset   int
}

const maxListLimit = 500

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lista para a equipe, por dia e/ou status.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	q ListQuery,
) ([]dto.AppointmentSummary, error) {

	f := domain.ListFilter{Limit: q.Limit, Offset: q.Offset}
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}

	if q.Date != "" {
		next, err := timezone.AddDays(q.Date, 1)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		f.From, f.To = q.Date, next
	}

	for _, raw := range q.Statuses {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		f.Statuses = append(f.Statuses, st)
	}

	list, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.SummariesOf(list), nil
}

// Month devolve o calendário do mês inteiro.
func (uc *ListAppointments) Month(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentSummary, error) {

	if year < 2000 || year > 9999 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	from, to := timezone.MonthRange(year, month)
	list, err := uc.repo.ListAppointments(ctx, domain.ListFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return dto.SummariesOf(list), nil
}

// ForCustomer lista apenas os agendamentos do próprio cliente.
func (uc *ListAppointments) ForCustomer(
	ctx context.Context,
	actor session.Actor,
) ([]dto.AppointmentSummary, error) {

	if actor.ClientID == nil {
		return nil, httperr.ErrBusiness("client_profile_missing")
	}

	clientID := *actor.ClientID
	list, err := uc.repo.ListAppointments(ctx, domain.ListFilter{ClientID: &clientID})
	if err != nil {
		return nil, err
	}
	return dto.SummariesOf(list), nil
}

type GetAppointmentDetail struct {
	repo domain.Repository
}

func NewGetAppointmentDetail(
	repo domain.Repository,
) *GetAppointmentDetail {
	return &GetAppointmentDetail{
		repo: repo,
	}
}

func (uc *GetAppointmentDetail) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
) (*dto.AppointmentDetail, error) {

	ap, err := loadOwnAppointment(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	photos, err := uc.repo.ListPhotos(ctx, ap.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	out := dto.DetailOf(*ap, photos)
	return &out, nil
}
