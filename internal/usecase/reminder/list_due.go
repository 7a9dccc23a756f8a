package reminder

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type ListDuePets struct {
	repo     reminder.PetRepository
	timezone string
	now      func() time.Time
}

func NewListDuePets(
	repo reminder.PetRepository,
	tz string,
) *ListDuePets {
	return &ListDuePets{
		repo:     repo,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *ListDuePets) Execute(ctx context.Context) ([]reminder.DuePet, error) {
	pets, err := uc.repo.ListPetsWithReminder(ctx)
	if err != nil {
		return nil, err
	}

	today := timezone.DateOf(uc.now(), uc.timezone)
	return reminder.Due(pets, today), nil
}
