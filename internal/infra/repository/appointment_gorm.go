package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	operatorID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	draft *models.Appointment,
) (*models.Appointment, error) {

	ap := *draft
	ap.ID = 0

	if err := r.db.WithContext(ctx).Create(&ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	operatorID uint,
	id uint,
	patch domain.Patch,
) (*models.Appointment, error) {

	updates := map[string]any{}
	if patch.StartTime != nil {
		updates["start_time"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		updates["end_time"] = *patch.EndTime
	}

	var ap models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND operator_id = ?", id, operatorID).
			First(&ap).Error; err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&ap).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&ap, ap.ID).Error
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	operatorID uint,
	id uint,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND operator_id = ?", id, operatorID).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	operatorID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND operator_id = ?", id, operatorID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) ListStaff(
	ctx context.Context,
	operatorID uint,
) ([]models.StaffResource, error) {

	var staff []models.StaffResource
	if err := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Order("display_name ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListPayments(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
) ([]models.PaymentRecord, error) {

	var payments []models.PaymentRecord
	if err := r.db.WithContext(ctx).
		Joins("JOIN appointments ON appointments.id = payment_records.appointment_id").
		Where("payment_records.appointment_id = ? AND appointments.operator_id = ?", appointmentID, operatorID).
		Order("payment_records.date ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
