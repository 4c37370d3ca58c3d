package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Attendance log, append-only
CREATE TABLE IF NOT EXISTS absensi (
    id SERIAL PRIMARY KEY,
    npm VARCHAR(50) NOT NULL,
    nama VARCHAR(255) NOT NULL,
    prodi VARCHAR(255) NOT NULL,
    tanggal DATE NOT NULL,
    jam TIME NOT NULL,
    UNIQUE(npm, tanggal)
);

-- Monthly rollup, rewritten on every rebuild
CREATE TABLE IF NOT EXISTS rekap_bulanan (
    id SERIAL PRIMARY KEY,
    npm VARCHAR(50) NOT NULL,
    nama VARCHAR(255) NOT NULL,
    bulan CHAR(7) NOT NULL,
    jumlah_hadir INTEGER NOT NULL CHECK (jumlah_hadir >= 0)
);
`

// InitSchema initializes the database schema
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
