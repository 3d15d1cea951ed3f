package api

import (
	"net/http"
	"os"

	"github.com/Tofikoabdu1/doctor-appointment-backend/service/admin"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/appointment"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/availability"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/notification"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/patient"
	"github.com/Tofikoabdu1/doctor-appointment-backend/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
	logger  *logrus.Logger
}

func NewApiServer(address string, db *gorm.DB, logger *logrus.Logger) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
		logger:  logger,
	}
}

func (s *APIServer) Handler() http.Handler {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	mailer := notification.NewSMTPMailer()

	userHandler := user.NewHandler(s.db, mailer)
	userHandler.RegisterRoutes(subrouter)

	appointmentHandler := appointment.NewAppointmentHandler(s.db, s.logger)
	appointmentHandler.RegisterRoutes(subrouter)

	availabilityHandler := availability.NewAvailabilityHandler(s.db)
	availabilityHandler.RegisterRoutes(subrouter)

	patientHandler := patient.NewPatientHandler(s.db)
	patientHandler.RegisterRoutes(subrouter)

	adminHandler := admin.NewAdminHandler(s.db)
	adminHandler.RegisterRoutes(subrouter)

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{frontend}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return cors(router)
}

func (s *APIServer) Run() error {
	s.logger.WithField("address", s.address).Info("server listening")
	return http.ListenAndServe(s.address, s.Handler())
}
