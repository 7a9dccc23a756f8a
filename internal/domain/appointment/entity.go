package appointment

import (
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Names são as cópias desnormalizadas gravadas no agendamento.
type Names struct {
	Client string
	Pet    string
}

func (n Names) ApplyTo(ap *models.Appointment) {
	ap.ClientName = n.Client
	ap.PetName = n.Pet
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Reject(ap *models.Appointment) error {
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Reschedule sobrescreve data/hora e sempre volta para pendente.
// Pet e cliente nunca mudam.
func Reschedule(ap *models.Appointment, date, hm string, names Names) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.Date = date
	ap.Time = hm
	ap.Status = string(StatusPending)
	ap.ConfirmedAt = nil
	names.ApplyTo(ap)
	return nil
}

func SaveProgress(ap *models.Appointment, details CompletionDetails) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	details.ApplyTo(ap)
	return nil
}

func Complete(ap *models.Appointment, now time.Time, st CompletionState) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if err := CheckCompletion(st); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
