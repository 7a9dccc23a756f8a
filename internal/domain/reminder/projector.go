// Package reminder projeta quando cada pet deve voltar para um novo banho.
//
// O resultado serve apenas para exibição e contato; nada aqui agenda ou
// envia mensagens.
package reminder

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type PetRepository interface {
	// ListPetsWithReminder devolve pets com data do último banho e frequência preenchidas.
	ListPetsWithReminder(ctx context.Context) ([]models.Pet, error)
}

type DuePet struct {
	Pet         models.Pet `json:"pet"`
	NextDueDate string     `json:"next_due_date"`
	DaysOverdue int        `json:"days_overdue"`
}

// NextDue = último banho + frequência em dias.
func NextDue(last string, days int) (string, error) {
	return timezone.AddDays(last, days)
}

// Due filtra os pets cujo próximo banho é hoje ou já passou.
// Pets sem data ou sem frequência nunca entram; frequência 0 vence no
// próprio dia do último banho.
func Due(pets []models.Pet, today string) []DuePet {
	todayDate, err := timezone.ParseDate(today)
	if err != nil {
		return nil
	}

	out := make([]DuePet, 0)
	for _, p := range pets {
		if p.LastGroomingDate == nil || p.ReminderFrequencyDays == nil {
			continue
		}
		next, err := NextDue(*p.LastGroomingDate, *p.ReminderFrequencyDays)
		if err != nil {
			continue
		}
		nextDate, _ := timezone.ParseDate(next)
		if todayDate.Before(nextDate) {
			continue
		}

		out = append(out, DuePet{
			Pet:         p,
			NextDueDate: next,
			DaysOverdue: int(todayDate.Sub(nextDate) / (24 * time.Hour)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDueDate < out[j].NextDueDate
	})

	return out
}
