package appointment

import (
	"context"
	"errors"
	"io"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// ErrNotFound é devolvido pelos repositórios quando a linha não existe.
var ErrNotFound = errors.New("record not found")

// ListFilter: intervalo de datas [From, To), vazio = sem limite.
type ListFilter struct {
	From     string
	To       string
	Statuses []Status
	ClientID *uint
	PetID    *uint
	Limit    int
	Offset   int
}

type Repository interface {
	// -------- Client / Pet --------
	GetClientByUser(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetPet(
		ctx context.Context,
		petID uint,
	) (*models.Pet, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// DeleteAppointment remove também fotos e histórico de peso.
	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Availability --------
	ListOccupyingForDay(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListBlockedSlots(
		ctx context.Context,
		from string,
		to string,
	) ([]models.BlockedSlot, error)

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)

	CountAppointments(
		ctx context.Context,
		f ListFilter,
	) (int64, error)

	// -------- Photos / weight --------
	ListPhotos(
		ctx context.Context,
		appointmentID string,
	) ([]models.AppointmentPhoto, error)

	UpsertPhoto(
		ctx context.Context,
		photo *models.AppointmentPhoto,
	) error

	CreateWeightRecord(
		ctx context.Context,
		rec *models.WeightRecord,
	) error
}

type BlockedSlotRepository interface {
	// CreateBlockedSlot não duplica: created=false se o par já existia.
	CreateBlockedSlot(
		ctx context.Context,
		b *models.BlockedSlot,
	) (bool, error)

	DeleteBlockedSlot(
		ctx context.Context,
		date string,
		hm string,
	) (bool, error)

	ListBlockedSlots(
		ctx context.Context,
		from string,
		to string,
	) ([]models.BlockedSlot, error)
}

// -------- Object storage --------

type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type StoredFile struct {
	Key string
	URL string
}

type FileStore interface {
	SavePhoto(
		ctx context.Context,
		appointmentID string,
		kind PhotoType,
		up Upload,
	) (StoredFile, error)

	SaveReceipt(
		ctx context.Context,
		appointmentID string,
		up Upload,
	) (StoredFile, error)
}
