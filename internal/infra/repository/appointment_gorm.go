package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Client / Pet
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByUser(
	ctx context.Context,
	userID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetPet(
	ctx context.Context,
	petID uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, petID).Error; err != nil {
		return nil, notFound(err)
	}
	return &pet, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

// UpdateAppointment grava a linha inteira: última escrita vence.
// Nunca insere: linha apagada devolve ErrNotFound.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(ap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentPhoto{}).Error; err != nil {
			return fmt.Errorf("delete photos: %w", err)
		}

		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.WeightRecord{}).Error; err != nil {
			return fmt.Errorf("delete weight records: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOccupyingForDay(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "time", "status").
		Where("date = ? AND status IN ?", date, statusStrings(domain.OccupyingStatuses)).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListBlockedSlots(
	ctx context.Context,
	from string,
	to string,
) ([]models.BlockedSlot, error) {
	return listBlockedSlots(r.db.WithContext(ctx), from, to)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) filtered(
	ctx context.Context,
	f domain.ListFilter,
) *gorm.DB {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date < ?", f.To)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(f.Statuses))
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.PetID != nil {
		q = q.Where("pet_id = ?", *f.PetID)
	}

	return q
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.filtered(ctx, f).Order("date ASC").Order("time ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountAppointments(
	ctx context.Context,
	f domain.ListFilter,
) (int64, error) {

	var count int64
	if err := r.filtered(ctx, f).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Photos / weight
// --------------------------------------------------

func (r *AppointmentGormRepository) ListPhotos(
	ctx context.Context,
	appointmentID string,
) ([]models.AppointmentPhoto, error) {

	var photos []models.AppointmentPhoto
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("type ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// UpsertPhoto substitui a URL quando o mesmo tipo é enviado de novo.
func (r *AppointmentGormRepository) UpsertPhoto(
	ctx context.Context,
	photo *models.AppointmentPhoto,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"url", "object_key", "updated_at"}),
		}).
		Create(photo).Error
}

func (r *AppointmentGormRepository) CreateWeightRecord(
	ctx context.Context,
	rec *models.WeightRecord,
) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func statusStrings(in []domain.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
