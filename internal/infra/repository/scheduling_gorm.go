package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Provider / Patient
// --------------------------------------------------

func (r *SchedulingGormRepository) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.CodeProviderNotFound)
	}
	return &p, nil
}

func (r *SchedulingGormRepository) UpdateProviderTimezone(
	ctx context.Context,
	providerID uint,
	tz string,
) error {
	return updateTimezone(r.db.WithContext(ctx), providerID, tz)
}

func (r *SchedulingGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.CodePatientNotFound)
	}
	return &p, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWeeklyAvailability(
	ctx context.Context,
	providerID uint,
) ([]models.ProviderAvailability, error) {

	var rows []models.ProviderAvailability
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list weekly availability: %w", err)
	}
	return rows, nil
}

func (r *SchedulingGormRepository) ListAvailabilityExceptions(
	ctx context.Context,
	providerID uint,
	fromDate string,
	toDate string,
) ([]models.AvailabilityException, error) {

	var rows []models.AvailabilityException
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND exception_date >= ? AND exception_date <= ?",
			providerID, fromDate, toDate,
		).
		Order("exception_date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list availability exceptions: %w", err)
	}
	return rows, nil
}

// ReplaceWeeklyAvailability stores tz on the provider and swaps every weekly
// row in one transaction.
func (r *SchedulingGormRepository) ReplaceWeeklyAvailability(
	ctx context.Context,
	providerID uint,
	tz string,
	rows []models.ProviderAvailability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateTimezone(tx, providerID, tz); err != nil {
			return err
		}

		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.ProviderAvailability{}).Error; err != nil {
			return fmt.Errorf("clear weekly availability: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ProviderID = providerID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert weekly availability: %w", err)
		}
		return nil
	})
}

func (r *SchedulingGormRepository) ReplaceAvailabilityExceptions(
	ctx context.Context,
	providerID uint,
	rows []models.AvailabilityException,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.AvailabilityException{}).Error; err != nil {
			return fmt.Errorf("clear availability exceptions: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ProviderID = providerID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert availability exceptions: %w", err)
		}
		return nil
	})
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) ListProviderAppointments(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND datetime >= ? AND datetime <= ?",
			providerID, start.UTC(), end.UTC(),
		).
		Order("datetime ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list provider appointments: %w", err)
	}
	return apps, nil
}

func (r *SchedulingGormRepository) ListPatientAppointments(
	ctx context.Context,
	patientID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"patient_id = ? AND datetime >= ? AND datetime <= ?",
			patientID, start.UTC(), end.UTC(),
		).
		Order("datetime ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return apps, nil
}

// CreateAppointment serializes bookings per provider with a transaction-scoped
// advisory lock, refuses the insert when an overlapping row exists and lets
// the (provider_id, datetime) unique index catch the rest. Row locks alone
// cannot stop two overlapping inserts with different starts, since neither
// row exists yet when the other transaction looks.
func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.Datetime = ap.Datetime.UTC()
	end := ap.End()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			int64(ap.ProviderID),
		).Error; err != nil {
			return fmt.Errorf("lock provider bookings: %w", err)
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"provider_id = ? AND datetime < ? AND datetime + (duration * interval '1 minute') > ?",
				ap.ProviderID, end, ap.Datetime,
			).
			Find(&conflicts).Error; err != nil {
			return fmt.Errorf("lock overlapping appointments: %w", err)
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness(domain.CodeSlotTaken)
			}
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	})
}

func (r *SchedulingGormRepository) GetAppointmentForProvider(
	ctx context.Context,
	appointmentID uint,
	providerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, appointmentID)
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func updateTimezone(db *gorm.DB, providerID uint, tz string) error {
	res := db.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("timezone", tz)
	if res.Error != nil {
		return fmt.Errorf("update provider timezone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeProviderNotFound)
	}
	return nil
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
