package notification

import (
	"strings"
	"testing"
)

func TestConfirmationBodiesOnline(t *testing.T) {
	text, html := ConfirmationBodies(AppointmentDetails{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "09:30",
		Online:    true,
		MeetLink:  "https://meet.google.com/abc-defg-hij",
		Notes:     "first visit",
	})

	for _, want := range []string{"2026-03-02", "09:00 - 09:30", "https://meet.google.com/abc-defg-hij", "first visit"} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q", want)
		}
		if !strings.Contains(html, want) {
			t.Errorf("html body missing %q", want)
		}
	}
	if strings.Contains(text, "Location:") {
		t.Error("online confirmation should not carry a location")
	}
}

func TestConfirmationBodiesInPerson(t *testing.T) {
	text, _ := ConfirmationBodies(AppointmentDetails{
		Date:      "2026-03-02",
		StartTime: "10:00",
		EndTime:   "10:30",
		Address:   "Bole Road, Addis Ababa",
	})
	if !strings.Contains(text, "Location: Bole Road, Addis Ababa") {
		t.Errorf("in-person confirmation missing address:\n%s", text)
	}
	if strings.Contains(text, "Meeting Link") {
		t.Error("in-person confirmation should not carry a meeting link")
	}
}

func TestApprovalBodiesAddressOrganizer(t *testing.T) {
	text, html := ApprovalBodies(AppointmentDetails{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "09:30",
		Online:    true,
		MeetLink:  "https://meet.google.com/abc-defg-hij",
	})
	if !strings.Contains(text, "Dear Organizer") {
		t.Error("approval text must address the organizer")
	}
	if !strings.Contains(html, "Appointment Approval Required") {
		t.Error("approval html missing heading")
	}
}
