package meeting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ErrProvisioning marks any failure to create an online meeting, whether
// from bad input or the upstream calendar API.
var ErrProvisioning = errors.New("meeting provisioning failed")

// Request describes the meeting to create for an online appointment.
type Request struct {
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	DoctorName   string
	PatientEmail string
	DoctorEmail  string
	Notes        string
}

// Provisioner creates a joinable meeting link for an appointment.
type Provisioner interface {
	Provision(ctx context.Context, req Request) (string, error)
}

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate rejects malformed requests before any API call is made.
func (r Request) Validate() error {
	if !dateRe.MatchString(r.Date) {
		return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrProvisioning, r.Date)
	}
	start, err := slots.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvisioning, err)
	}
	end, err := slots.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvisioning, err)
	}
	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", ErrProvisioning)
	}
	if !emailRe.MatchString(r.PatientEmail) {
		return fmt.Errorf("%w: valid patient email is required", ErrProvisioning)
	}
	if !emailRe.MatchString(r.DoctorEmail) {
		return fmt.Errorf("%w: valid doctor email is required", ErrProvisioning)
	}
	return nil
}

// GoogleMeetProvisioner creates Google Meet links through the Calendar API
// using a single service account's OAuth refresh token.
type GoogleMeetProvisioner struct {
	clientID     string
	clientSecret string
	refreshToken string
	timezone     string
	timeout      time.Duration
}

func NewGoogleMeetProvisioner() *GoogleMeetProvisioner {
	timezone := os.Getenv("MEET_TIMEZONE")
	if timezone == "" {
		timezone = "Africa/Addis_Ababa"
	}
	timeout := 15 * time.Second
	if raw := os.Getenv("MEET_TIMEOUT_SECONDS"); raw != "" {
		if parsed, err := time.ParseDuration(raw + "s"); err == nil {
			timeout = parsed
		}
	}
	return &GoogleMeetProvisioner{
		clientID:     os.Getenv("GOOGLE_CALENDAR_CLIENT_ID"),
		clientSecret: os.Getenv("GOOGLE_CALENDAR_CLIENT_SECRET"),
		refreshToken: os.Getenv("GOOGLE_CALENDAR_REFRESH_TOKEN"),
		timezone:     timezone,
		timeout:      timeout,
	}
}

// Provision inserts a calendar event with a Meet conference attached and
// returns the hangout link. The call is bounded by the configured timeout
// so a stalled upstream cannot hang a booking.
func (p *GoogleMeetProvisioner) Provision(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if p.refreshToken == "" {
		return "", fmt.Errorf("%w: calendar refresh token not configured", ErrProvisioning)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conf := &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
	}
	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})

	svc, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("Appointment with Dr. %s", req.DoctorName),
		Description: req.Notes,
		Start: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", req.Date, req.StartTime),
			TimeZone: p.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", req.Date, req.EndTime),
			TimeZone: p.timezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: req.PatientEmail},
			{Email: req.DoctorEmail},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             "meet-" + uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := svc.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioning, err)
	}
	if created.HangoutLink == "" {
		return "", fmt.Errorf("%w: no meet link in calendar response", ErrProvisioning)
	}
	return created.HangoutLink, nil
}
