package availability

import (
	"errors"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"gorm.io/gorm"
)

// GormStore reads schedule templates and booked appointments from postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) TemplateFor(doctorID uint, weekday time.Weekday) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	err := s.db.Where("doctor_id = ? AND day_of_week = ?", doctorID, int(weekday)).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *GormStore) ActiveAppointments(doctorID uint, date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("doctor_id = ? AND appointment_date = ? AND status NOT IN ?",
		doctorID, date.Format("2006-01-02"), models.TerminalStatuses).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
