package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"absensi_qr/models"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Postgres stores both tables in PostgreSQL. The (npm, tanggal) unique
// constraint makes AppendIfAbsent atomic across processes.
type Postgres struct {
	db *sql.DB
}

// Initialize opens a connection, verifies it and applies the schema.
func Initialize(cfg Config) (*Postgres, error) {
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	psqlInfo := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	log.Printf("Connecting to postgres at %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)

	return Open(psqlInfo)
}

// Open connects using a ready-made connection string.
func Open(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if err = InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT npm, nama, prodi,
               to_char(tanggal, 'YYYY-MM-DD'),
               to_char(jam, 'HH24:MI:SS')
        FROM absensi
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("error fetching attendance: %w", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Program, &rec.Date, &rec.Time); err != nil {
			return nil, fmt.Errorf("error scanning attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (p *Postgres) AttendanceExists(ctx context.Context, id, date string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM absensi
            WHERE npm = $1 AND tanggal = $2::date
        )
    `, id, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking attendance: %w", err)
	}
	return exists, nil
}

func (p *Postgres) AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	result, err := p.db.ExecContext(ctx, `
        INSERT INTO absensi (npm, nama, prodi, tanggal, jam)
        VALUES ($1, $2, $3, $4::date, $5::time)
        ON CONFLICT (npm, tanggal) DO NOTHING
    `, rec.ID, rec.Name, rec.Program, rec.Date, rec.Time)
	if err != nil {
		return false, fmt.Errorf("error appending attendance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error verifying append: %w", err)
	}

	return rowsAffected == 1, nil
}

func (p *Postgres) ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT npm, nama, bulan, jumlah_hadir
        FROM rekap_bulanan
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("error fetching summary: %w", err)
	}
	defer rows.Close()

	summary := []models.MonthlySummaryRow{}
	for rows.Next() {
		var row models.MonthlySummaryRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Month, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning summary: %w", err)
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}
