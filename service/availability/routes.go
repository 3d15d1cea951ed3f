package availability

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// NoSlotsMessage is returned when every day in the horizon is empty. The
// caller gets a 200 with this message instead of an empty list.
const NoSlotsMessage = "No free slots in next 7 days. Please check later."

type AvailabilityHandler struct {
	builder *Builder
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{builder: NewBuilder(NewGormStore(db))}
}

func (h *AvailabilityHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/appointments/slots/{doctorId}",
		utils.AuthMiddleware(utils.RequireRole(models.RolePatient, http.HandlerFunc(h.GetFreeSlots)))).Methods("GET")
}

func (h *AvailabilityHandler) GetFreeSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["doctorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
		return
	}

	free, err := h.builder.FreeSlots(uint(doctorID), time.Now())
	if err != nil {
		log.Printf("Error computing free slots for doctor %d: %v", doctorID, err)
		http.Error(w, "Error retrieving free slots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(free) == 0 {
		json.NewEncoder(w).Encode(map[string]string{"message": NoSlotsMessage})
		return
	}
	json.NewEncoder(w).Encode(free)
}
