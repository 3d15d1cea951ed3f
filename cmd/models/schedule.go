package models

import (
	"gorm.io/gorm"
)

// DoctorSchedule is a doctor's weekly working-hours template for one
// weekday (0=Sunday .. 6=Saturday). Times of day are stored as "HH:MM".
type DoctorSchedule struct {
	gorm.Model
	DoctorID     uint   `gorm:"column:doctor_id;not null;index:idx_doctor_weekday" json:"doctor_id"`
	DayOfWeek    int    `gorm:"column:day_of_week;not null;index:idx_doctor_weekday" json:"day_of_week"`
	StartTime    string `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime      string `gorm:"column:end_time;size:5;not null" json:"end_time"`
	SlotDuration int    `gorm:"column:slot_duration;not null" json:"slot_duration"`
	BreakStart   string `gorm:"column:break_start;size:5" json:"break_start,omitempty"`
	BreakEnd     string `gorm:"column:break_end;size:5" json:"break_end,omitempty"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}
