// Package jobs agenda as tarefas periódicas do servidor.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/reminder"
)

type DueLister interface {
	Execute(ctx context.Context) ([]reminder.DuePet, error)
}

// ReminderDigest registra no log os pets com banho vencido.
// Não envia mensagens: o contato continua manual pela equipe.
type ReminderDigest struct {
	due     DueLister
	log     *zap.Logger
	timeout time.Duration
}

func NewReminderDigest(due DueLister, log *zap.Logger) *ReminderDigest {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReminderDigest{
		due:     due,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// Run devolve quantos pets estavam vencidos.
func (j *ReminderDigest) Run() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	list, err := j.due.Execute(ctx)
	if err != nil {
		j.log.Warn("reminder digest failed", zap.Error(err))
		return 0
	}

	for _, d := range list {
		j.log.Info("bath reminder due",
			zap.Uint("pet_id", d.Pet.ID),
			zap.String("pet", d.Pet.Name),
			zap.String("next_due_date", d.NextDueDate),
			zap.Int("days_overdue", d.DaysOverdue),
		)
	}
	j.log.Info("reminder digest done", zap.Int("due", len(list)))
	return len(list)
}

// Schedule registra o job no cron do fuso configurado.
// Expressão vazia desliga o digest e devolve nil.
func Schedule(expr, tz string, job *ReminderDigest) (*cron.Cron, error) {
	if expr == "" {
		return nil, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(expr, func() { job.Run() }); err != nil {
		return nil, err
	}
	return c, nil
}
