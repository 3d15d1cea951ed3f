package appointment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/utils"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/meeting"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/notification"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	db      *gorm.DB
	booking *BookingService
}

func NewAppointmentHandler(db *gorm.DB, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		db: db,
		booking: NewBookingService(
			NewGormStore(db),
			meeting.NewGoogleMeetProvisioner(),
			notification.NewSMTPMailer(),
			logger,
		),
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments/specializations", h.GetSpecializations).Methods("GET")
	router.Handle("/appointments/doctors/{specializationId}",
		utils.AuthMiddleware(utils.RequireRole(models.RolePatient, http.HandlerFunc(h.GetDoctorsBySpecialization)))).Methods("GET")
	router.Handle("/appointments/book",
		utils.AuthMiddleware(utils.RequireRole(models.RolePatient, http.HandlerFunc(h.BookAppointment)))).Methods("POST")
}

func (h *AppointmentHandler) GetSpecializations(w http.ResponseWriter, r *http.Request) {
	var specializations []models.Specialization
	if err := h.db.Find(&specializations).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Error retrieving specializations", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(specializations)
}

func (h *AppointmentHandler) GetDoctorsBySpecialization(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specializationID, err := strconv.ParseUint(vars["specializationId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid specialization ID", "")
		return
	}

	var doctors []models.Doctor
	if err := h.db.Where("specialization_id = ? AND is_active = ?", specializationID, true).
		Find(&doctors).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Error retrieving doctors", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctors)
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	req.PatientID = patientID

	appt, err := h.booking.Book(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			writeError(w, http.StatusBadRequest, "Slot already booked", "")
		case errors.Is(err, slots.ErrFormat):
			writeError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "User/Doctor not found", "")
		case errors.Is(err, meeting.ErrProvisioning):
			writeError(w, http.StatusBadGateway, "Failed to generate online meeting link", err.Error())
		default:
			log.Printf("Error booking appointment: %v", err)
			writeError(w, http.StatusInternalServerError, "Error booking appointment", "")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": message}
	if detail != "" {
		body["detail"] = detail
	}
	json.NewEncoder(w).Encode(body)
}
