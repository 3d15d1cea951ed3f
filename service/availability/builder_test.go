package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
)

// memStore serves templates keyed by weekday and appointments keyed by
// date string, standing in for the database in builder tests.
type memStore struct {
	templates    map[time.Weekday]*models.DoctorSchedule
	appointments map[string][]models.Appointment
	failReads    bool
}

func (m *memStore) TemplateFor(doctorID uint, weekday time.Weekday) (*models.DoctorSchedule, error) {
	if m.failReads {
		return nil, errors.New("connection refused")
	}
	return m.templates[weekday], nil
}

func (m *memStore) ActiveAppointments(doctorID uint, date time.Time) ([]models.Appointment, error) {
	if m.failReads {
		return nil, errors.New("connection refused")
	}
	return m.appointments[date.Format("2006-01-02")], nil
}

func everyDayTemplate(start, end string, duration int) map[time.Weekday]*models.DoctorSchedule {
	templates := make(map[time.Weekday]*models.DoctorSchedule)
	for d := time.Sunday; d <= time.Saturday; d++ {
		templates[d] = &models.DoctorSchedule{
			DoctorID:     1,
			DayOfWeek:    int(d),
			StartTime:    start,
			EndTime:      end,
			SlotDuration: duration,
		}
	}
	return templates
}

func TestFreeSlotsExcludesBookedOverlaps(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	store := &memStore{
		templates: everyDayTemplate("09:00", "12:00", 30),
		appointments: map[string][]models.Appointment{
			"2026-03-02": {
				{DoctorID: 1, StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentStatusBooked},
			},
		},
	}

	days, err := NewBuilder(store).FreeSlots(1, from)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(days) != HorizonDays {
		t.Fatalf("got %d days, want %d", len(days), HorizonDays)
	}

	monday := days[0]
	if monday.Date != "2026-03-02" {
		t.Fatalf("first day is %s", monday.Date)
	}
	if len(monday.Free) != 5 {
		t.Errorf("Monday has %d free slots, want 5", len(monday.Free))
	}
	for _, s := range monday.Free {
		if s.StartTime == "10:00" {
			t.Error("booked 10:00-10:30 slot still offered")
		}
	}
	// Touching slots on either side of the booking stay available.
	hasStart := map[string]bool{}
	for _, s := range monday.Free {
		hasStart[s.StartTime] = true
	}
	if !hasStart["09:30"] || !hasStart["10:30"] {
		t.Errorf("adjacent slots should remain free, got %v", monday.Free)
	}

	// Other days carry the full template.
	if len(days[1].Free) != 6 {
		t.Errorf("Tuesday has %d free slots, want 6", len(days[1].Free))
	}
}

func TestFreeSlotsSkipsCancelledAndCompleted(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	store := &memStore{
		templates: everyDayTemplate("09:00", "10:00", 30),
		appointments: map[string][]models.Appointment{
			"2026-03-02": {
				// The store contract already filters terminal statuses;
				// this test seeds only active rows and expects both slots
				// of a fully booked morning to disappear.
				{DoctorID: 1, StartTime: "09:00", EndTime: "09:30", Status: models.AppointmentStatusBooked},
				{DoctorID: 1, StartTime: "09:30", EndTime: "10:00", Status: models.AppointmentStatusConfirmed},
			},
		},
	}

	days, err := NewBuilder(store).FreeSlots(1, from)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	for _, day := range days {
		if day.Date == "2026-03-02" {
			t.Errorf("fully booked day should be omitted, got %v", day.Free)
		}
	}
}

func TestFreeSlotsLateEveningOverrun(t *testing.T) {
	// 30-minute slots in a 23:00-23:45 window: the second slot runs past
	// midnight and renders its end as "24:00". The computation must still
	// succeed and offer both slots.
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	store := &memStore{templates: everyDayTemplate("23:00", "23:45", 30)}

	days, err := NewBuilder(store).FreeSlots(1, from)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(days) != HorizonDays {
		t.Fatalf("got %d days, want %d", len(days), HorizonDays)
	}
	if len(days[0].Free) != 2 {
		t.Fatalf("got %d free slots, want 2: %v", len(days[0].Free), days[0].Free)
	}
	if days[0].Free[1].EndTime != "24:00" {
		t.Errorf("overrun slot ends %q, want 24:00", days[0].Free[1].EndTime)
	}

	// A booking spanning the overrun slot still suppresses it.
	store.appointments = map[string][]models.Appointment{
		"2026-03-02": {
			{DoctorID: 1, StartTime: "23:30", EndTime: "23:59", Status: models.AppointmentStatusBooked},
		},
	}
	days, err = NewBuilder(store).FreeSlots(1, from)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(days[0].Free) != 1 || days[0].Free[0].StartTime != "23:00" {
		t.Errorf("late booking should leave only the 23:00 slot, got %v", days[0].Free)
	}
}

func TestFreeSlotsNoTemplates(t *testing.T) {
	store := &memStore{templates: map[time.Weekday]*models.DoctorSchedule{}}
	days, err := NewBuilder(store).FreeSlots(1, time.Now())
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("doctor without templates produced %d days", len(days))
	}
}

func TestFreeSlotsStoreErrorAborts(t *testing.T) {
	store := &memStore{failReads: true}
	if _, err := NewBuilder(store).FreeSlots(1, time.Now()); err == nil {
		t.Fatal("store failure must abort the computation")
	}
}

func TestFreeSlotsHonorsBreakWindow(t *testing.T) {
	templates := everyDayTemplate("09:00", "17:00", 30)
	for _, tpl := range templates {
		tpl.BreakStart = "13:00"
		tpl.BreakEnd = "13:30"
	}
	store := &memStore{templates: templates}

	days, err := NewBuilder(store).FreeSlots(1, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	for _, s := range days[0].Free {
		if s.StartTime == "13:00" && s.EndTime == "13:30" {
			t.Error("break slot offered as free")
		}
	}
}
