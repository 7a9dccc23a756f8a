package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type BlockedSlotGormRepository struct {
	db *gorm.DB
}

func NewBlockedSlotGormRepository(db *gorm.DB) *BlockedSlotGormRepository {
	return &BlockedSlotGormRepository{db: db}
}

func (r *BlockedSlotGormRepository) CreateBlockedSlot(
	ctx context.Context,
	b *models.BlockedSlot,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "time"}},
			DoNothing: true,
		}).
		Create(b)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BlockedSlotGormRepository) DeleteBlockedSlot(
	ctx context.Context,
	date string,
	hm string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", date, hm).
		Delete(&models.BlockedSlot{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BlockedSlotGormRepository) ListBlockedSlots(
	ctx context.Context,
	from string,
	to string,
) ([]models.BlockedSlot, error) {
	return listBlockedSlots(r.db.WithContext(ctx), from, to)
}

// listBlockedSlots: intervalo [from, to).
func listBlockedSlots(db *gorm.DB, from, to string) ([]models.BlockedSlot, error) {
	q := db.Model(&models.BlockedSlot{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date < ?", to)
	}

	var blocks []models.BlockedSlot
	if err := q.Order("date ASC").Order("time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

var _ domain.BlockedSlotRepository = (*BlockedSlotGormRepository)(nil)
