package availability

import (
	"fmt"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
)

// HorizonDays is the rolling booking window: today plus six more days.
const HorizonDays = 7

// ScheduleStore provides the read side of slot computation.
type ScheduleStore interface {
	// TemplateFor returns the doctor's working-hours template for a
	// weekday, or nil when the doctor does not work that day.
	TemplateFor(doctorID uint, weekday time.Weekday) (*models.DoctorSchedule, error)
	// ActiveAppointments returns the doctor's appointments on a date whose
	// status still blocks the slot (not cancelled, not completed).
	ActiveAppointments(doctorID uint, date time.Time) ([]models.Appointment, error)
}

// DaySlots is one day of free slots in an availability response.
type DaySlots struct {
	Date string       `json:"date"`
	Free []slots.Slot `json:"free"`
}

// Builder computes a doctor's free slots over the rolling horizon.
type Builder struct {
	store ScheduleStore
}

func NewBuilder(store ScheduleStore) *Builder {
	return &Builder{store: store}
}

// FreeSlots walks the horizon starting at from (server-local date). Days
// without a template or without any free slot are omitted. Any store error
// aborts the whole computation; partial results are never returned.
func (b *Builder) FreeSlots(doctorID uint, from time.Time) ([]DaySlots, error) {
	result := []DaySlots{}
	for i := 0; i < HorizonDays; i++ {
		date := from.AddDate(0, 0, i)
		schedule, err := b.store.TemplateFor(doctorID, date.Weekday())
		if err != nil {
			return nil, fmt.Errorf("loading schedule template: %w", err)
		}
		if schedule == nil {
			continue
		}

		candidates, err := generateFromTemplate(schedule)
		if err != nil {
			return nil, fmt.Errorf("schedule template for doctor %d weekday %d: %w", doctorID, int(date.Weekday()), err)
		}

		booked, err := b.store.ActiveAppointments(doctorID, date)
		if err != nil {
			return nil, fmt.Errorf("loading booked appointments: %w", err)
		}

		free, err := filterFree(candidates, booked)
		if err != nil {
			return nil, err
		}
		if len(free) > 0 {
			result = append(result, DaySlots{
				Date: date.Format("2006-01-02"),
				Free: free,
			})
		}
	}
	return result, nil
}

func generateFromTemplate(schedule *models.DoctorSchedule) ([]slots.Slot, error) {
	start, err := slots.ParseTimeOfDay(schedule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := slots.ParseTimeOfDay(schedule.EndTime)
	if err != nil {
		return nil, err
	}

	var brk *slots.Interval
	if schedule.BreakStart != "" && schedule.BreakEnd != "" {
		breakStart, err := slots.ParseTimeOfDay(schedule.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := slots.ParseTimeOfDay(schedule.BreakEnd)
		if err != nil {
			return nil, err
		}
		brk = &slots.Interval{Start: breakStart, End: breakEnd}
	}

	return slots.Generate(start, end, schedule.SlotDuration, brk), nil
}

// filterFree drops every candidate overlapping a booked interval, using
// the same half-open overlap predicate the booking conflict check uses.
func filterFree(candidates []slots.Slot, booked []models.Appointment) ([]slots.Slot, error) {
	taken := make([]slots.Interval, 0, len(booked))
	for _, appt := range booked {
		iv, err := appointmentInterval(appt)
		if err != nil {
			return nil, err
		}
		taken = append(taken, iv)
	}

	free := []slots.Slot{}
	for _, candidate := range candidates {
		iv := candidate.Interval()
		conflicting := false
		for _, t := range taken {
			if slots.Overlaps(iv, t) {
				conflicting = true
				break
			}
		}
		if !conflicting {
			free = append(free, candidate)
		}
	}
	return free, nil
}

func appointmentInterval(appt models.Appointment) (slots.Interval, error) {
	start, err := slots.ParseTimeOfDay(appt.StartTime)
	if err != nil {
		return slots.Interval{}, fmt.Errorf("appointment %d start time: %w", appt.ID, err)
	}
	end, err := slots.ParseTimeOfDay(appt.EndTime)
	if err != nil {
		return slots.Interval{}, fmt.Errorf("appointment %d end time: %w", appt.ID, err)
	}
	return slots.Interval{Start: start, End: end}, nil
}
