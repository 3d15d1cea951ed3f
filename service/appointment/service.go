package appointment

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/meeting"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/notification"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
	"github.com/sirupsen/logrus"
)

// BookingRequest is a patient's request for one slot.
type BookingRequest struct {
	PatientID        uint
	DoctorID         uint   `json:"doctor_id"`
	SpecializationID uint   `json:"specialization_id"`
	AppointmentDate  string `json:"appointment_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Type             string `json:"type"`
	Notes            string `json:"notes"`
}

// BookingService runs the booking workflow: conflict re-check, identity
// resolution, optional meeting provisioning, atomic insert, and
// best-effort notifications.
type BookingService struct {
	store       Store
	provisioner meeting.Provisioner
	mailer      notification.Mailer
	logger      *logrus.Logger
}

func NewBookingService(store Store, provisioner meeting.Provisioner, mailer notification.Mailer, logger *logrus.Logger) *BookingService {
	return &BookingService{
		store:       store,
		provisioner: provisioner,
		mailer:      mailer,
		logger:      logger,
	}
}

// Book validates and persists a booking. Nothing is committed when the
// meeting side channel or the insert fails; notification failures are
// logged and never affect the result.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", slots.ErrFormat, req.AppointmentDate)
	}
	requested, err := intervalOf(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if requested.End <= requested.Start {
		return nil, fmt.Errorf("%w: end time must be after start time", slots.ErrFormat)
	}
	if req.Type != models.AppointmentTypeOnline && req.Type != models.AppointmentTypeInPerson {
		return nil, fmt.Errorf("%w: unknown appointment type %q", slots.ErrFormat, req.Type)
	}

	// Availability was computed from a possibly-stale read, so the slot is
	// re-checked here before spending a meeting resource on it. The
	// authoritative check happens again inside CreateIfFree.
	conflict, err := s.store.HasConflict(req.DoctorID, date, requested)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	patient, err := s.store.GetPatient(req.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.store.GetDoctor(req.DoctorID)
	if err != nil {
		return nil, err
	}

	var meetLink string
	if req.Type == models.AppointmentTypeOnline {
		meetLink, err = s.provisioner.Provision(ctx, meeting.Request{
			Date:         req.AppointmentDate,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			DoctorName:   doctor.Name,
			PatientEmail: patient.Email,
			DoctorEmail:  doctor.Email,
			Notes:        req.Notes,
		})
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"doctorId":  req.DoctorID,
				"patientId": req.PatientID,
				"error":     err,
			}).Error("Meeting provisioning failed, aborting booking")
			return nil, err
		}
	}

	appt := &models.Appointment{
		PatientID:        req.PatientID,
		DoctorID:         req.DoctorID,
		SpecializationID: req.SpecializationID,
		AppointmentDate:  date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Type:             req.Type,
		MeetLink:         meetLink,
		PatientNotes:     req.Notes,
		Status:           models.AppointmentStatusBooked,
	}
	if err := s.store.CreateIfFree(appt); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"appointmentId": appt.ID,
		"doctorId":      appt.DoctorID,
		"patientId":     appt.PatientID,
		"date":          req.AppointmentDate,
		"type":          appt.Type,
	}).Info("Appointment booked")

	s.notify(appt, patient, doctor)
	return appt, nil
}

func (s *BookingService) notify(appt *models.Appointment, patient *models.User, doctor *models.Doctor) {
	details := notification.AppointmentDetails{
		Date:      appt.AppointmentDate.Format("2006-01-02"),
		StartTime: appt.StartTime,
		EndTime:   appt.EndTime,
		Online:    appt.Type == models.AppointmentTypeOnline,
		MeetLink:  appt.MeetLink,
		Notes:     appt.PatientNotes,
	}
	if !details.Online {
		details.Address = os.Getenv("HOSPITAL_ADDRESS")
	}

	text, html := notification.ConfirmationBodies(details)
	for _, to := range []string{patient.Email, doctor.Email} {
		if err := s.mailer.Send(to, notification.SubjectBooked, text, html); err != nil {
			s.logger.WithFields(logrus.Fields{
				"appointmentId": appt.ID,
				"to":            to,
				"error":         err,
			}).Warn("Confirmation email failed")
		}
	}

	if details.Online {
		approvalText, approvalHTML := notification.ApprovalBodies(details)
		organizer := notification.OrganizerAddress()
		if err := s.mailer.Send(organizer, notification.SubjectBooked, approvalText, approvalHTML); err != nil {
			s.logger.WithFields(logrus.Fields{
				"appointmentId": appt.ID,
				"to":            organizer,
				"error":         err,
			}).Warn("Organizer approval email failed")
		}
	}
}
