package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

// memoryRepository is an in-memory domain.Repository. Setting errs[op]
// makes that operation fail.
type memoryRepository struct {
	mu sync.Mutex

	providers    map[uint]*models.Provider
	patients     map[uint]*models.Patient
	weekly       map[uint][]models.ProviderAvailability
	exceptions   map[uint][]models.AvailabilityException
	appointments []models.Appointment
	nextID       uint

	errs map[string]error
}

var _ domain.Repository = (*memoryRepository)(nil)

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		providers:  map[uint]*models.Provider{},
		patients:   map[uint]*models.Patient{},
		weekly:     map[uint][]models.ProviderAvailability{},
		exceptions: map[uint][]models.AvailabilityException{},
		nextID:     1,
		errs:       map[string]error{},
	}
}

func (r *memoryRepository) addAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, ap)
	return ap
}

func (r *memoryRepository) GetProvider(_ context.Context, id uint) (*models.Provider, error) {
	if err := r.errs["GetProvider"]; err != nil {
		return nil, err
	}
	p, ok := r.providers[id]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeProviderNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepository) UpdateProviderTimezone(_ context.Context, providerID uint, tz string) error {
	p, ok := r.providers[providerID]
	if !ok {
		return httperr.ErrBusiness(domain.CodeProviderNotFound)
	}
	p.Timezone = tz
	return nil
}

func (r *memoryRepository) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodePatientNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepository) ListWeeklyAvailability(_ context.Context, providerID uint) ([]models.ProviderAvailability, error) {
	if err := r.errs["ListWeeklyAvailability"]; err != nil {
		return nil, err
	}
	return append([]models.ProviderAvailability(nil), r.weekly[providerID]...), nil
}

func (r *memoryRepository) ListAvailabilityExceptions(_ context.Context, providerID uint, fromDate, toDate string) ([]models.AvailabilityException, error) {
	if err := r.errs["ListAvailabilityExceptions"]; err != nil {
		return nil, err
	}
	var out []models.AvailabilityException
	for _, e := range r.exceptions[providerID] {
		if e.ExceptionDate >= fromDate && e.ExceptionDate <= toDate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepository) ReplaceWeeklyAvailability(_ context.Context, providerID uint, tz string, rows []models.ProviderAvailability) error {
	if err := r.errs["ReplaceWeeklyAvailability"]; err != nil {
		return err
	}
	p, ok := r.providers[providerID]
	if !ok {
		return httperr.ErrBusiness(domain.CodeProviderNotFound)
	}
	p.Timezone = tz
	r.weekly[providerID] = append([]models.ProviderAvailability(nil), rows...)
	return nil
}

func (r *memoryRepository) ReplaceAvailabilityExceptions(_ context.Context, providerID uint, rows []models.AvailabilityException) error {
	r.exceptions[providerID] = append([]models.AvailabilityException(nil), rows...)
	return nil
}

func (r *memoryRepository) ListProviderAppointments(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	if err := r.errs["ListProviderAppointments"]; err != nil {
		return nil, err
	}
	return r.filter(func(ap models.Appointment) bool {
		return ap.ProviderID == providerID && !ap.Datetime.Before(start) && !ap.Datetime.After(end)
	}), nil
}

func (r *memoryRepository) ListPatientAppointments(_ context.Context, patientID uint, start, end time.Time) ([]models.Appointment, error) {
	if err := r.errs["ListPatientAppointments"]; err != nil {
		return nil, err
	}
	return r.filter(func(ap models.Appointment) bool {
		return ap.PatientID == patientID && !ap.Datetime.Before(start) && !ap.Datetime.After(end)
	}), nil
}

func (r *memoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if err := r.errs["CreateAppointment"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appointments {
		if existing.ProviderID == ap.ProviderID &&
			ap.Datetime.Before(existing.End()) && ap.End().After(existing.Datetime) {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}
	}
	ap.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memoryRepository) GetAppointmentForProvider(_ context.Context, appointmentID, providerID uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.ProviderID == providerID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
}

func (r *memoryRepository) DeleteAppointment(_ context.Context, appointmentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ap := range r.appointments {
		if ap.ID == appointmentID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
}

func (r *memoryRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out
}
