package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers understood by main.
const (
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
	DriverSheets   = "sheets"
	DriverMemory   = "memory"
)

type Config struct {
	Environment   string
	ServerPort    string
	StorageDriver string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	BoltPath string

	SpreadsheetID         string
	GoogleCredentialsFile string
	SheetAttendance       string
	SheetSummary          string

	// Admission window as offsets from local midnight.
	WindowStart time.Duration
	WindowEnd   time.Duration
	Location    *time.Location

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "absensi"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BoltPath: getEnv("BOLT_PATH", "absensi.bolt"),

		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		SheetAttendance:       getEnv("SHEET_ABSENSI", "absensi"),
		SheetSummary:          getEnv("SHEET_BULANAN", "rekap_bulanan"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.DBPort = port

	if cfg.WindowStart, err = ParseClock(getEnv("JAM_MULAI", "07:00")); err != nil {
		return nil, fmt.Errorf("invalid JAM_MULAI: %w", err)
	}
	if cfg.WindowEnd, err = ParseClock(getEnv("JAM_SELESAI", "16:00")); err != nil {
		return nil, fmt.Errorf("invalid JAM_SELESAI: %w", err)
	}
	if cfg.WindowEnd < cfg.WindowStart {
		return nil, errors.New("JAM_SELESAI must not be before JAM_MULAI")
	}

	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Asia/Jakarta")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	switch cfg.StorageDriver {
	case DriverPostgres, DriverBolt, DriverMemory:
	case DriverSheets:
		if cfg.SpreadsheetID == "" {
			return nil, errors.New("SPREADSHEET_ID is required for the sheets driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// ParseClock parses a time of day as "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (time.Duration, error) {
	var t time.Time
	var err error
	if strings.Count(s, ":") == 2 {
		t, err = time.Parse("15:04:05", s)
	} else {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
