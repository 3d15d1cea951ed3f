package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/api"
	"github.com/Tofikoabdu1/doctor-appointment-backend/cmd/models"
	"github.com/Tofikoabdu1/doctor-appointment-backend/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations(logger)
			return
		case "clear-db":
			runDatabaseClear(logger)
			return
		default:
			logger.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer(logger)
}

func runMigrations(logger *logrus.Logger) {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		logger.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		logger.Info("Database connection closed")
	}()
	logger.Info("Connected to the database for migrations")

	if err := performMigrations(DB, logger); err != nil {
		logger.Fatalf("Migration error: %v", err)
	}
	logger.Info("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB, logger *logrus.Logger) error {
	migrations := []struct {
		model interface{}
		name  string
	}{
		{&models.User{}, "User"},
		{&models.PasswordResetToken{}, "PasswordResetToken"},
		{&models.Specialization{}, "Specialization"},
		{&models.Doctor{}, "Doctor"},
		{&models.DoctorSchedule{}, "DoctorSchedule"},
		{&models.Appointment{}, "Appointment"},
	}

	logger.Info("Starting database migrations...")
	for _, m := range migrations {
		logger.Infof("Migrating %s table...", m.name)
		if err := DB.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
		logger.Infof("%s migration successful", m.name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

func startServer(logger *logrus.Logger) {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		logger.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		logger.Info("Database connection closed")
	}()
	logger.Info("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewApiServer(":"+port, DB, logger)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	}()
	logger.Infof("Server running on port %s", port)

	<-quit
	logger.Info("Shutting down server...")
}

func clearDatabase(DB *gorm.DB, tables []interface{}, logger *logrus.Logger) error {
	if len(tables) == 0 {
		// Drop order respects foreign keys: appointments and schedules
		// reference doctors, doctors reference specializations.
		tables = []interface{}{
			&models.Appointment{},
			&models.DoctorSchedule{},
			&models.Doctor{},
			&models.Specialization{},
			&models.PasswordResetToken{},
			&models.User{},
		}
	}

	logger.Info("Dropping tables...")

	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			logger.Warnf("Warning dropping table %T: %v", table, err)
		} else {
			logger.Infof("Table %T dropped", table)
		}
	}

	return nil
}

func runDatabaseClear(logger *logrus.Logger) {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		logger.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		logger.Info("Database connection closed")
	}()

	logger.Info("Preparing to clear database...")

	var confirmation string
	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	fmt.Scanln(&confirmation)

	if confirmation != "yes" {
		logger.Info("Database clearing cancelled.")
		return
	}

	var tableNames string
	fmt.Print("Enter table names to clear (comma separated) or leave blank to clear all: ")
	fmt.Scanln(&tableNames)

	var tables []interface{}
	if tableNames != "" {
		for _, table := range strings.Split(tableNames, ",") {
			switch strings.TrimSpace(table) {
			case "User":
				tables = append(tables, &models.User{})
			case "PasswordResetToken":
				tables = append(tables, &models.PasswordResetToken{})
			case "Specialization":
				tables = append(tables, &models.Specialization{})
			case "Doctor":
				tables = append(tables, &models.Doctor{})
			case "DoctorSchedule":
				tables = append(tables, &models.DoctorSchedule{})
			case "Appointment":
				tables = append(tables, &models.Appointment{})
			default:
				logger.Warnf("Unknown table: %s", table)
			}
		}
	}

	if err := clearDatabase(DB, tables, logger); err != nil {
		logger.Fatalf("Error clearing database: %v", err)
	}

	logger.Info("Database cleared successfully")
}
