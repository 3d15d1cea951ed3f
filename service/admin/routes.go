package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/utils"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/slots"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// RegisterRoutes registers admin-only routes with Gorilla Mux
func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(func(next http.Handler) http.Handler {
		return utils.AuthMiddleware(utils.RequireRole(models.RoleAdmin, next))
	})

	adminRouter.HandleFunc("/specializations", h.CreateSpecialization).Methods("POST")
	adminRouter.HandleFunc("/doctors", h.CreateDoctor).Methods("POST")
	adminRouter.HandleFunc("/doctors", h.GetDoctors).Methods("GET")
	adminRouter.HandleFunc("/doctors/{id}", h.UpdateDoctor).Methods("PUT")
	adminRouter.HandleFunc("/doctors/{id}", h.DeactivateDoctor).Methods("DELETE")
	adminRouter.HandleFunc("/doctors/{id}/schedules", h.GetSchedules).Methods("GET")
	adminRouter.HandleFunc("/doctors/{id}/schedules", h.UpsertSchedule).Methods("PUT")
	adminRouter.HandleFunc("/doctors/{id}/schedules/{day}", h.DeleteSchedule).Methods("DELETE")
	adminRouter.HandleFunc("/analytics", h.GetAnalytics).Methods("GET")
}

func (h *AdminHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	specialization := models.Specialization{Name: req.Name, Description: req.Description}
	if err := h.db.Create(&specialization).Error; err != nil {
		http.Error(w, "Error creating specialization", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(specialization)
}

func (h *AdminHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string   `json:"name"`
		Email            string   `json:"email"`
		SpecializationID uint     `json:"specialization_id"`
		LicenseNumber    string   `json:"license_number"`
		Phone            string   `json:"phone"`
		Bio              string   `json:"bio"`
		Languages        []string `json:"languages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.SpecializationID == 0 {
		http.Error(w, "Name, email and specialization_id are required", http.StatusBadRequest)
		return
	}

	var specialization models.Specialization
	if err := h.db.First(&specialization, req.SpecializationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Specialization not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error looking up specialization", http.StatusInternalServerError)
		return
	}

	doctor := models.Doctor{
		Name:             req.Name,
		Email:            req.Email,
		SpecializationID: req.SpecializationID,
		LicenseNumber:    req.LicenseNumber,
		Phone:            req.Phone,
		Bio:              req.Bio,
		IsActive:         true,
		Languages:        pq.StringArray(req.Languages),
	}
	if err := h.db.Create(&doctor).Error; err != nil {
		http.Error(w, "Error creating doctor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doctor)
}

func (h *AdminHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize := 20

	query := h.db.Model(&models.Doctor{}).Preload("Specialization")
	if active := r.URL.Query().Get("active"); active != "" {
		isActive, parseErr := strconv.ParseBool(active)
		if parseErr != nil {
			http.Error(w, "Invalid value for 'active'", http.StatusBadRequest)
			return
		}
		query = query.Where("is_active = ?", isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		http.Error(w, "Error counting doctors", http.StatusInternalServerError)
		return
	}

	var doctors []models.Doctor
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&doctors).Error; err != nil {
		http.Error(w, "Error retrieving doctors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"doctors": doctors,
		"total":   total,
		"page":    page,
	})
}

func (h *AdminHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, doctorID).Error; err != nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Phone         *string  `json:"phone"`
		Bio           *string  `json:"bio"`
		LicenseNumber *string  `json:"license_number"`
		IsActive      *bool    `json:"is_active"`
		Languages     []string `json:"languages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}
	if req.Languages != nil {
		doctor.Languages = pq.StringArray(req.Languages)
	}

	if err := h.db.Save(&doctor).Error; err != nil {
		http.Error(w, "Error updating doctor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctor)
}

// DeactivateDoctor hides the doctor from booking flows without touching
// existing appointments.
func (h *AdminHandler) DeactivateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result := h.db.Model(&models.Doctor{}).Where("id = ?", doctorID).Update("is_active", false)
	if result.Error != nil {
		http.Error(w, "Error deactivating doctor", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Doctor deactivated"})
}

func (h *AdminHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var schedules []models.DoctorSchedule
	if err := h.db.Where("doctor_id = ?", doctorID).Order("day_of_week").Find(&schedules).Error; err != nil {
		http.Error(w, "Error retrieving schedules", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

type scheduleRequest struct {
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
	BreakStart   string `json:"break_start"`
	BreakEnd     string `json:"break_end"`
}

func (req *scheduleRequest) validate() error {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return errors.New("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	start, err := slots.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return errors.New("invalid start_time")
	}
	end, err := slots.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return errors.New("invalid end_time")
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}
	if req.SlotDuration <= 0 {
		return errors.New("slot_duration must be positive")
	}
	if (req.BreakStart == "") != (req.BreakEnd == "") {
		return errors.New("break_start and break_end must be set together")
	}
	if req.BreakStart != "" {
		breakStart, err := slots.ParseTimeOfDay(req.BreakStart)
		if err != nil {
			return errors.New("invalid break_start")
		}
		breakEnd, err := slots.ParseTimeOfDay(req.BreakEnd)
		if err != nil {
			return errors.New("invalid break_end")
		}
		if breakEnd <= breakStart {
			return errors.New("break_end must be after break_start")
		}
	}
	return nil
}

// UpsertSchedule replaces the doctor's template for one weekday.
func (h *AdminHandler) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, doctorID).Error; err != nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	var schedule models.DoctorSchedule
	err := h.db.Where("doctor_id = ? AND day_of_week = ?", doctorID, req.DayOfWeek).First(&schedule).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Error looking up schedule", http.StatusInternalServerError)
		return
	}

	schedule.DoctorID = uint(doctorID)
	schedule.DayOfWeek = req.DayOfWeek
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.SlotDuration = req.SlotDuration
	schedule.BreakStart = req.BreakStart
	schedule.BreakEnd = req.BreakEnd

	if err := h.db.Save(&schedule).Error; err != nil {
		http.Error(w, "Error saving schedule", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *AdminHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 0 || day > 6 {
		http.Error(w, "Invalid day of week", http.StatusBadRequest)
		return
	}

	result := h.db.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		Delete(&models.DoctorSchedule{})
	if result.Error != nil {
		http.Error(w, "Error deleting schedule", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Schedule deleted"})
}

type AnalyticsStats struct {
	TotalPatients     int64 `json:"total_patients"`
	TotalDoctors      int64 `json:"total_doctors"`
	TotalAppointments int64 `json:"total_appointments"`
	UpcomingWeek      int64 `json:"upcoming_week"`
}

func (h *AdminHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	var stats AnalyticsStats

	h.db.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&stats.TotalPatients)
	h.db.Model(&models.Doctor{}).Where("is_active = ?", true).Count(&stats.TotalDoctors)
	h.db.Model(&models.Appointment{}).Count(&stats.TotalAppointments)

	today := time.Now().Format("2006-01-02")
	weekOut := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	h.db.Model(&models.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ? AND status NOT IN ?",
			today, weekOut, models.TerminalStatuses).
		Count(&stats.UpcomingWeek)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
