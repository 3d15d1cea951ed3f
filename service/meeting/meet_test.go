package meeting

import (
	"context"
	"errors"
	"testing"
	"time"
)

func validRequest() Request {
	return Request{
		Date:         "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "09:30",
		DoctorName:   "Abebe",
		PatientEmail: "patient@example.com",
		DoctorEmail:  "doctor@example.com",
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"bad date", func(r *Request) { r.Date = "02-03-2026" }},
		{"bad start time", func(r *Request) { r.StartTime = "9am" }},
		{"end before start", func(r *Request) { r.EndTime = "08:00" }},
		{"end equals start", func(r *Request) { r.EndTime = r.StartTime }},
		{"bad patient email", func(r *Request) { r.PatientEmail = "not-an-email" }},
		{"bad doctor email", func(r *Request) { r.DoctorEmail = "doctor@nodot" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(&req)
			err := req.Validate()
			if !errors.Is(err, ErrProvisioning) {
				t.Errorf("Validate() err = %v, want ErrProvisioning", err)
			}
		})
	}
}

func TestProvisionFailsWithoutRefreshToken(t *testing.T) {
	p := &GoogleMeetProvisioner{timezone: "UTC", timeout: time.Second}
	_, err := p.Provision(context.Background(), validRequest())
	if !errors.Is(err, ErrProvisioning) {
		t.Fatalf("Provision err = %v, want ErrProvisioning", err)
	}
}
