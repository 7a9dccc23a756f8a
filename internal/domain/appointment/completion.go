package appointment

import (
	"math"
	"strings"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type PhotoType string

const (
	PhotoArrival   PhotoType = "arrival"
	PhotoDeparture PhotoType = "departure"
)

func ParsePhotoType(raw string) (PhotoType, error) {
	switch PhotoType(raw) {
	case PhotoArrival, PhotoDeparture:
		return PhotoType(raw), nil
	}
	return "", httperr.ErrBusiness("invalid_photo_type")
}

// Requirement é um item obrigatório para concluir o atendimento.
type Requirement string

const (
	RequirementArrivalPhoto   Requirement = "arrival photo"
	RequirementDeparturePhoto Requirement = "departure photo"
	RequirementWeight         Requirement = "weight"
)

type CompletionState struct {
	HasArrivalPhoto   bool
	HasDeparturePhoto bool
	Weight            *float64
}

// IncompleteError lista, em ordem fixa, o que falta para concluir.
type IncompleteError struct {
	Missing []Requirement
}

func (e *IncompleteError) Error() string {
	return "completion_incomplete: missing " + strings.Join(e.Items(), ", ")
}

func (e *IncompleteError) Items() []string {
	out := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		out[i] = string(m)
	}
	return out
}

func ValidWeight(w *float64) bool {
	if w == nil {
		return false
	}
	v := *w
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func CheckCompletion(st CompletionState) error {
	var missing []Requirement
	if !st.HasArrivalPhoto {
		missing = append(missing, RequirementArrivalPhoto)
	}
	if !st.HasDeparturePhoto {
		missing = append(missing, RequirementDeparturePhoto)
	}
	if !ValidWeight(st.Weight) {
		missing = append(missing, RequirementWeight)
	}
	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// CompletionDetails carrega os campos de fechamento; nil = não alterar.
type CompletionDetails struct {
	Observations  *string
	FinalWeight   *float64
	ServicePrice  *float64
	PaymentMethod *string
	ShampooType   *string
	InvoiceRef    *string
}

func (d CompletionDetails) ApplyTo(ap *models.Appointment) {
	if d.Observations != nil {
		ap.Observations = *d.Observations
	}
	if d.FinalWeight != nil {
		w := *d.FinalWeight
		ap.FinalWeight = &w
	}
	if d.ServicePrice != nil {
		p := *d.ServicePrice
		ap.ServicePrice = &p
	}
	if d.PaymentMethod != nil {
		ap.PaymentMethod = *d.PaymentMethod
	}
	if d.ShampooType != nil {
		ap.ShampooType = *d.ShampooType
	}
	if d.InvoiceRef != nil {
		ap.InvoiceRef = *d.InvoiceRef
	}
}
