// Package dashboard monta os contadores do painel da equipe.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type AppointmentCounter interface {
	CountAppointments(ctx context.Context, f domain.ListFilter) (int64, error)
}

type DirectoryCounter interface {
	CountClients(ctx context.Context) (int64, error)
	CountPets(ctx context.Context) (int64, error)
}

type DueLister interface {
	Execute(ctx context.Context) ([]reminder.DuePet, error)
}

type Counts struct {
	Pending        int64    `json:"pending"`
	ConfirmedToday int64    `json:"confirmed_today"`
	Clients        int64    `json:"clients"`
	Pets           int64    `json:"pets"`
	RemindersDue   int64    `json:"reminders_due"`
	Degraded       []string `json:"degraded"`
}

type GetCounts struct {
	appointments AppointmentCounter
	directory    DirectoryCounter
	reminders    DueLister
	timezone     string
	log          *zap.Logger
	now          func() time.Time
}

func NewGetCounts(
	appointments AppointmentCounter,
	directory DirectoryCounter,
	reminders DueLister,
	tz string,
	log *zap.Logger,
) *GetCounts {
	if log == nil {
		log = zap.NewNop()
	}
	return &GetCounts{
		appointments: appointments,
		directory:    directory,
		reminders:    reminders,
		timezone:     tz,
		log:          log,
		now:          time.Now,
	}
}

// Execute nunca falha: um contador com erro vira 0 e entra em Degraded.
func (uc *GetCounts) Execute(ctx context.Context) Counts {
	out := Counts{Degraded: []string{}}
	today := timezone.DateOf(uc.now(), uc.timezone)
	tomorrow, _ := timezone.AddDays(today, 1)

	badge := func(name string, dst *int64, fn func() (int64, error)) {
		n, err := fn()
		if err != nil {
			uc.log.Warn("dashboard badge degraded", zap.String("badge", name), zap.Error(err))
			out.Degraded = append(out.Degraded, name)
			return
		}
		*dst = n
	}

	badge("pending", &out.Pending, func() (int64, error) {
		return uc.appointments.CountAppointments(ctx, domain.ListFilter{
			Statuses: []domain.Status{domain.StatusPending},
		})
	})

	badge("confirmed_today", &out.ConfirmedToday, func() (int64, error) {
		return uc.appointments.CountAppointments(ctx, domain.ListFilter{
			From:     today,
			To:       tomorrow,
			Statuses: []domain.Status{domain.StatusConfirmed},
		})
	})

	badge("clients", &out.Clients, func() (int64, error) {
		return uc.directory.CountClients(ctx)
	})

	badge("pets", &out.Pets, func() (int64, error) {
		return uc.directory.CountPets(ctx)
	})

	badge("reminders_due", &out.RemindersDue, func() (int64, error) {
		due, err := uc.reminders.Execute(ctx)
		return int64(len(due)), err
	})

	return out
}
