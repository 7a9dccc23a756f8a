package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type PetGormRepository struct {
	db *gorm.DB
}

func NewPetGormRepository(db *gorm.DB) *PetGormRepository {
	return &PetGormRepository{db: db}
}

func (r *PetGormRepository) ListPetsWithReminder(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).
		Where("last_grooming_date IS NOT NULL AND reminder_frequency_days IS NOT NULL").
		Order("id ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *PetGormRepository) CountPets(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&n).Error
	return n, err
}

func (r *PetGormRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error
	return n, err
}

var _ reminder.PetRepository = (*PetGormRepository)(nil)
