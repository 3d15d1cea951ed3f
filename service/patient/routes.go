package patient

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// RegisterRoutes registers patient-facing routes with Gorilla Mux
func (h *PatientHandler) RegisterRoutes(router *mux.Router) {
	patientRouter := router.PathPrefix("/patient").Subrouter()
	patientRouter.Use(func(next http.Handler) http.Handler {
		return utils.AuthMiddleware(utils.RequireRole(models.RolePatient, next))
	})

	patientRouter.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	patientRouter.HandleFunc("/appointments/{id}/cancel", h.CancelAppointment).Methods("POST")
}

type DashboardResponse struct {
	Upcoming []models.Appointment `json:"upcoming"`
	History  []models.Appointment `json:"history"`
}

// GetDashboard splits the patient's appointments into upcoming ones
// (today or later, still live) and everything else.
func (h *PatientHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	today := time.Now().Format("2006-01-02")

	var response DashboardResponse
	if err := h.db.Preload("Doctor").Preload("Doctor.Specialization").
		Where("patient_id = ? AND appointment_date >= ? AND status NOT IN ?",
			patientID, today, models.TerminalStatuses).
		Order("appointment_date, start_time").
		Find(&response.Upcoming).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	if err := h.db.Preload("Doctor").Preload("Doctor.Specialization").
		Where("patient_id = ? AND (appointment_date < ? OR status IN ?)",
			patientID, today, models.TerminalStatuses).
		Order("appointment_date DESC, start_time DESC").
		Find(&response.History).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CancelAppointment marks one of the patient's own appointments
// cancelled, which frees its slot for rebooking.
func (h *PatientHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	apptID := mux.Vars(r)["id"]

	var appt models.Appointment
	if err := h.db.Where("id = ? AND patient_id = ?", apptID, patientID).First(&appt).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	for _, terminal := range models.TerminalStatuses {
		if appt.Status == terminal {
			http.Error(w, "Appointment already closed", http.StatusBadRequest)
			return
		}
	}

	appt.Status = models.AppointmentStatusCancelled
	if err := h.db.Save(&appt).Error; err != nil {
		http.Error(w, "Error cancelling appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Appointment cancelled"})
}
