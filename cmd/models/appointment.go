package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentStatusBooked    = "booked"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"

	AppointmentTypeOnline   = "online"
	AppointmentTypeInPerson = "in-person"
)

type Appointment struct {
	gorm.Model
	PatientID        uint      `gorm:"column:patient_id;not null" json:"patient_id"`
	DoctorID         uint      `gorm:"column:doctor_id;not null;index:idx_doctor_date" json:"doctor_id"`
	SpecializationID uint      `gorm:"column:specialization_id;not null" json:"specialization_id"`
	AppointmentDate  time.Time `gorm:"column:appointment_date;type:date;not null;index:idx_doctor_date" json:"appointment_date"`
	StartTime        string    `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime          string    `gorm:"column:end_time;size:5;not null" json:"end_time"`
	Type             string    `gorm:"column:type;size:20;not null" json:"type"`
	MeetLink         string    `gorm:"column:meet_link;size:512" json:"meet_link,omitempty"`
	PatientNotes     string    `gorm:"column:patient_notes;type:text" json:"patient_notes,omitempty"`
	Status           string    `gorm:"column:status;size:20;not null;default:booked" json:"status"`

	Patient *User   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TerminalStatuses are the statuses that free a slot for rebooking. An
// appointment in any other status still blocks its interval.
var TerminalStatuses = []string{AppointmentStatusCancelled, AppointmentStatusCompleted}

func (Appointment) TableName() string {
	return "appointments"
}
