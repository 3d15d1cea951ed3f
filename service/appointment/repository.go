package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
	"gorm.io/gorm"
)

var (
	// ErrSlotTaken means a non-terminal appointment already overlaps the
	// requested interval.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNotFound means a referenced patient or doctor does not exist.
	ErrNotFound = errors.New("not found")
)

// Store is the persistence contract of the booking flow. CreateIfFree is
// the only write and carries the atomicity requirement: the conflict check
// and the insert happen inside one isolation boundary, so two concurrent
// bookings of the same slot can never both succeed.
type Store interface {
	HasConflict(doctorID uint, date time.Time, interval slots.Interval) (bool, error)
	CreateIfFree(appt *models.Appointment) error
	GetPatient(id uint) (*models.User, error)
	GetDoctor(id uint) (*models.Doctor, error)
}

// GormStore implements Store on postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) HasConflict(doctorID uint, date time.Time, interval slots.Interval) (bool, error) {
	var existing []models.Appointment
	err := s.db.Where("doctor_id = ? AND appointment_date = ? AND status NOT IN ?",
		doctorID, date.Format("2006-01-02"), models.TerminalStatuses).
		Find(&existing).Error
	if err != nil {
		return false, err
	}
	return anyOverlap(interval, existing)
}

// CreateIfFree re-checks for conflicts and inserts in one transaction. A
// postgres advisory transaction lock keyed on (doctor, date) serializes
// concurrent bookings for the same doctor and day, so the check cannot be
// invalidated between the query and the insert.
func (s *GormStore) CreateIfFree(appt *models.Appointment) error {
	requested, err := intervalOf(appt.StartTime, appt.EndTime)
	if err != nil {
		return err
	}
	date := appt.AppointmentDate.Format("2006-01-02")

	return s.db.Transaction(func(tx *gorm.DB) error {
		lockKey := fmt.Sprintf("booking:%d:%s", appt.DoctorID, date)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
			return err
		}

		var existing []models.Appointment
		err := tx.Where("doctor_id = ? AND appointment_date = ? AND status NOT IN ?",
			appt.DoctorID, date, models.TerminalStatuses).
			Find(&existing).Error
		if err != nil {
			return err
		}
		conflict, err := anyOverlap(requested, existing)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotTaken
		}

		return tx.Create(appt).Error
	})
}

func (s *GormStore) GetPatient(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetDoctor(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func anyOverlap(requested slots.Interval, existing []models.Appointment) (bool, error) {
	for _, appt := range existing {
		iv, err := intervalOf(appt.StartTime, appt.EndTime)
		if err != nil {
			return false, fmt.Errorf("appointment %d: %w", appt.ID, err)
		}
		if slots.Overlaps(requested, iv) {
			return true, nil
		}
	}
	return false, nil
}

func intervalOf(startTime, endTime string) (slots.Interval, error) {
	start, err := slots.ParseTimeOfDay(startTime)
	if err != nil {
		return slots.Interval{}, err
	}
	end, err := slots.ParseTimeOfDay(endTime)
	if err != nil {
		return slots.Interval{}, err
	}
	return slots.Interval{Start: start, End: end}, nil
}
