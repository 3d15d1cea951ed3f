package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/utils"
	"github.com/gorilla/mux"
)

func newTestRouter(store ScheduleStore) *mux.Router {
	router := mux.NewRouter()
	handler := &AvailabilityHandler{builder: NewBuilder(store)}
	handler.RegisterRoutes(router)
	return router
}

func patientToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(1, models.RolePatient)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestGetFreeSlotsRequiresPatientToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := newTestRouter(&memStore{templates: everyDayTemplate("09:00", "10:00", 30)})

	req := httptest.NewRequest("GET", "/appointments/slots/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}

	adminToken, err := utils.GenerateToken(2, models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req = httptest.NewRequest("GET", "/appointments/slots/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin token: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest("GET", "/appointments/slots/1", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("patient token: status = %d, want 200", rec.Code)
	}
}

func TestGetFreeSlotsEmptyHorizonMessage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := newTestRouter(&memStore{templates: map[time.Weekday]*models.DoctorSchedule{}})

	req := httptest.NewRequest("GET", "/appointments/slots/1", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["message"] != NoSlotsMessage {
		t.Errorf("message = %q, want %q", body["message"], NoSlotsMessage)
	}
}

func TestGetFreeSlotsPayload(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := newTestRouter(&memStore{templates: everyDayTemplate("09:00", "10:00", 30)})

	req := httptest.NewRequest("GET", "/appointments/slots/1", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var days []DaySlots
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(days) != HorizonDays {
		t.Fatalf("got %d days, want %d", len(days), HorizonDays)
	}
	if len(days[0].Free) != 2 {
		t.Errorf("first day has %d slots, want 2: %v", len(days[0].Free), days[0].Free)
	}
}
