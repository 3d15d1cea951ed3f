package notification

import (
	"fmt"
	"strings"
)

// SubjectBooked is the subject line for every booking notification.
const SubjectBooked = "Appointment Booked"

// AppointmentDetails carries the fields interpolated into notification
// bodies. Exactly one of MeetLink (online) or Address (in-person) is set.
type AppointmentDetails struct {
	Date      string
	StartTime string
	EndTime   string
	Online    bool
	MeetLink  string
	Address   string
	Notes     string
}

// ConfirmationBodies renders the text and HTML bodies sent to the patient
// and the doctor after a successful booking.
func ConfirmationBodies(d AppointmentDetails) (string, string) {
	var text strings.Builder
	text.WriteString("Dear Participant,\n\n")
	text.WriteString("Your appointment has been successfully scheduled.\n\n")
	fmt.Fprintf(&text, "Date: %s\n", d.Date)
	fmt.Fprintf(&text, "Time: %s - %s\n", d.StartTime, d.EndTime)
	if d.Online {
		fmt.Fprintf(&text, "Meeting Link: %s\n", d.MeetLink)
		text.WriteString("\nPlease join the meeting using the link above at the scheduled time.")
	} else {
		fmt.Fprintf(&text, "Location: %s\n", d.Address)
	}
	if d.Notes != "" {
		fmt.Fprintf(&text, "\nAdditional Notes: %s\n", d.Notes)
	}
	text.WriteString("\nWe look forward to your participation.\n\nBest regards,\nHospital Appointment System")

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">`)
	html.WriteString(`<h2 style="color: #2c3e50; text-align: center;">Appointment Confirmation</h2>`)
	html.WriteString(`<p>Dear Participant,</p>`)
	html.WriteString(`<p>Your appointment has been successfully scheduled. Please find the details below:</p>`)
	html.WriteString(`<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	fmt.Fprintf(&html, `<p><strong>Date:</strong> %s</p>`, d.Date)
	fmt.Fprintf(&html, `<p><strong>Time:</strong> %s - %s</p>`, d.StartTime, d.EndTime)
	if d.Online {
		fmt.Fprintf(&html, `<p><strong>Meeting Link:</strong> <a href="%s">%s</a></p>`, d.MeetLink, d.MeetLink)
	} else {
		fmt.Fprintf(&html, `<p><strong>Location:</strong> %s</p>`, d.Address)
	}
	if d.Notes != "" {
		fmt.Fprintf(&html, `<p><strong>Additional Notes:</strong> %s</p>`, d.Notes)
	}
	html.WriteString(`</div>`)
	if d.Online {
		html.WriteString(`<p>Please join the meeting using the link above at the scheduled time.</p>`)
	} else {
		html.WriteString(`<p>Please arrive at the location at the scheduled time.</p>`)
	}
	html.WriteString(`<p style="margin-top: 20px;">We look forward to your participation.<br>Best regards,<br>Hospital Appointment System</p>`)
	html.WriteString(`</div>`)

	return text.String(), html.String()
}

// ApprovalBodies renders the organizer notice asking to open the meeting
// for both participants of an online appointment.
func ApprovalBodies(d AppointmentDetails) (string, string) {
	var text strings.Builder
	text.WriteString("Dear Organizer,\n\n")
	text.WriteString("You are requested to approve the upcoming appointment by joining the meeting session and enabling access for both the Doctor and the Patient.\n\n")
	text.WriteString("Appointment Details:\n")
	fmt.Fprintf(&text, "- Date: %s\n", d.Date)
	fmt.Fprintf(&text, "- Time: %s - %s\n", d.StartTime, d.EndTime)
	if d.Online {
		fmt.Fprintf(&text, "- Meeting Link: %s\n", d.MeetLink)
	} else {
		fmt.Fprintf(&text, "- Address: %s\n", d.Address)
	}
	if d.Notes != "" {
		fmt.Fprintf(&text, "- Notes: %s\n", d.Notes)
	}
	text.WriteString("\nPlease ensure the meeting is opened so the participants can join without delay.\n\nThank you,\nHospital Appointment System")

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">`)
	html.WriteString(`<h2 style="color: #2c3e50; text-align: center;">Appointment Approval Required</h2>`)
	html.WriteString(`<p>Dear Organizer,</p>`)
	html.WriteString(`<p>You are requested to approve the upcoming appointment by joining the meeting session and making it accessible for both the Doctor and the Patient.</p>`)
	html.WriteString(`<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	fmt.Fprintf(&html, `<p><strong>Date:</strong> %s</p>`, d.Date)
	fmt.Fprintf(&html, `<p><strong>Time:</strong> %s - %s</p>`, d.StartTime, d.EndTime)
	if d.Online {
		fmt.Fprintf(&html, `<p><strong>Meeting Link:</strong> <a href="%s">%s</a></p>`, d.MeetLink, d.MeetLink)
	} else {
		fmt.Fprintf(&html, `<p><strong>Address:</strong> %s</p>`, d.Address)
	}
	if d.Notes != "" {
		fmt.Fprintf(&html, `<p><strong>Notes:</strong> %s</p>`, d.Notes)
	}
	html.WriteString(`</div>`)
	if d.Online {
		html.WriteString(`<p><em>Please join the meeting using the link above and ensure it is opened for the Doctor and the Patient.</em></p>`)
	}
	html.WriteString(`<p style="margin-top: 20px;">Thank you,<br>Hospital Appointment System</p>`)
	html.WriteString(`</div>`)

	return text.String(), html.String()
}
