package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type BusinessHoursGormRepository struct {
	db *gorm.DB
}

func NewBusinessHoursGormRepository(db *gorm.DB) *BusinessHoursGormRepository {
	return &BusinessHoursGormRepository{db: db}
}

func (r *BusinessHoursGormRepository) GetBusinessHours(
	ctx context.Context,
	operatorID uint,
) ([]models.BusinessDayRule, error) {

	var rules []models.BusinessDayRule
	if err := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Order("day_of_week ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// SaveBusinessHours troca o conjunto inteiro numa transação.
func (r *BusinessHoursGormRepository) SaveBusinessHours(
	ctx context.Context,
	operatorID uint,
	rules []models.BusinessDayRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("operator_id = ?", operatorID).
			Delete(&models.BusinessDayRule{}).Error; err != nil {
			return err
		}

		toCreate := make([]models.BusinessDayRule, 0, len(rules))
		for _, d := range rules {
			toCreate = append(toCreate, models.BusinessDayRule{
				OperatorID: operatorID,
				DayOfWeek:  d.DayOfWeek,
				IsOpen:     d.IsOpen,
				OpenTime:   d.OpenTime,
				CloseTime:  d.CloseTime,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
}

// Compile-time check
var _ domain.BusinessHoursRepository = (*BusinessHoursGormRepository)(nil)
