// Package blockedslot trata dos horários fechados manualmente pela equipe.
package blockedslot

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Service struct {
	repo    domain.BlockedSlotRepository
	catalog domain.SlotCatalog
	audit   Auditor
}

func NewService(
	repo domain.BlockedSlotRepository,
	catalog domain.SlotCatalog,
	audit Auditor,
) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		audit:   audit,
	}
}

func (s *Service) parse(date, hm string) (string, string, error) {
	if !timezone.IsDate(date) {
		return "", "", httperr.ErrBusiness("invalid_date")
	}
	t, err := domain.NormalizeTime(hm)
	if err != nil {
		return "", "", httperr.ErrBusiness("invalid_time")
	}
	if !s.catalog.Contains(t) {
		return "", "", httperr.ErrBusiness("slot_not_in_catalog")
	}
	return date, t, nil
}

// Block é idempotente: bloquear de novo o mesmo par não cria linha nova.
func (s *Service) Block(
	ctx context.Context,
	actor session.Actor,
	date string,
	hm string,
	reason string,
) (*models.BlockedSlot, bool, error) {

	date, t, err := s.parse(date, hm)
	if err != nil {
		return nil, false, err
	}

	b := &models.BlockedSlot{
		Date:   date,
		Time:   t,
		Reason: strings.TrimSpace(reason),
	}

	created, err := s.repo.CreateBlockedSlot(ctx, b)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.audit.Dispatch(event(actor, "slot_blocked", b))
	}
	return b, created, nil
}

// Unblock não falha quando o par não existe.
func (s *Service) Unblock(
	ctx context.Context,
	actor session.Actor,
	date string,
	hm string,
) (bool, error) {

	date, t, err := s.parse(date, hm)
	if err != nil {
		return false, err
	}

	removed, err := s.repo.DeleteBlockedSlot(ctx, date, t)
	if err != nil {
		return false, err
	}

	if removed {
		s.audit.Dispatch(event(actor, "slot_unblocked", &models.BlockedSlot{Date: date, Time: t}))
	}
	return removed, nil
}

// List devolve os bloqueios em [from, to). to vazio = só o dia from.
func (s *Service) List(
	ctx context.Context,
	from string,
	to string,
) ([]models.BlockedSlot, error) {

	if !timezone.IsDate(from) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if to == "" {
		next, err := timezone.AddDays(from, 1)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		to = next
	}
	if !timezone.IsDate(to) || to < from {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	return s.repo.ListBlockedSlots(ctx, from, to)
}

func event(actor session.Actor, action string, b *models.BlockedSlot) audit.Event {
	userID := actor.UserID
	return audit.Event{
		ActorID:   &userID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    "blocked_slot",
		EntityID:  b.Date + " " + b.Time,
		Metadata:  map[string]any{"reason": b.Reason},
	}
}
