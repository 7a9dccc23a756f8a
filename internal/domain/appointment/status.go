package appointment

import "github.com/BruksfildServices01/groomer-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmada"
	StatusCompleted Status = "completada"
	StatusCancelled Status = "cancelada"
	StatusRejected  Status = "rechazada"
)

// OccupyingStatuses ocupam vaga no cálculo de disponibilidade.
var OccupyingStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

func (s Status) Occupies() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete vale também para salvar progresso e anexar fotos.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: qualquer estado vivo (pendente ou confirmado).
func CanCancel(current Status) error {
	if !current.Valid() || current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !current.Valid() || current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus: cliente entra como pendente, equipe já confirma.
func InitialStatus(byStaff bool) Status {
	if byStaff {
		return StatusConfirmed
	}
	return StatusPending
}
