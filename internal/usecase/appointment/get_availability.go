package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type View int

const (
	ViewCustomer View = iota
	ViewStaff
)

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(
	repo domain.Repository,
	settings Settings,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	view View,
) (domain.DayAvailability, error) {

	if !timezone.IsDate(date) {
		return domain.DayAvailability{}, httperr.ErrBusiness("invalid_date")
	}

	calc := uc.settings.customerCalculator()
	if view == ViewStaff {
		calc = uc.settings.staffCalculator()
	}

	return computeDay(ctx, uc.repo, calc, date, "")
}
