package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

// AttachPhoto envia a foto e substitui a anterior do mesmo tipo.
type AttachPhoto struct {
	repo  domain.Repository
	store domain.FileStore
	audit Auditor
}

func NewAttachPhoto(
	repo domain.Repository,
	store domain.FileStore,
	audit Auditor,
) *AttachPhoto {
	return &AttachPhoto{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

func (uc *AttachPhoto) Execute(
	ctx context.Context,
	actor session.Actor,
	appointmentID string,
	kind domain.PhotoType,
	up domain.Upload,
) (*models.AppointmentPhoto, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	photo, err := storePhoto(ctx, uc.repo, uc.store, ap.ID, kind, up)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(actor, "appointment_photo_attached", ap, map[string]any{
		"type": string(kind),
	}))

	return photo, nil
}

func storePhoto(
	ctx context.Context,
	repo domain.Repository,
	store domain.FileStore,
	appointmentID string,
	kind domain.PhotoType,
	up domain.Upload,
) (*models.AppointmentPhoto, error) {

	file, err := store.SavePhoto(ctx, appointmentID, kind, up)
	if err != nil {
		return nil, err
	}

	photo := &models.AppointmentPhoto{
		AppointmentID: appointmentID,
		Type:          string(kind),
		URL:           file.URL,
		ObjectKey:     file.Key,
	}
	if err := repo.UpsertPhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}
