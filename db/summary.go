package db

import (
	"context"
	"fmt"

	"absensi_qr/models"
)

// ReplaceSummary clears rekap_bulanan and writes rows in one transaction.
func (p *Postgres) ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error {
	// Start a transaction
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	// Concurrent rebuilds must not see each other's rows; the lock is held
	// until commit.
	if _, err = tx.ExecContext(ctx, "LOCK TABLE rekap_bulanan IN EXCLUSIVE MODE"); err != nil {
		tx.Rollback()
		return fmt.Errorf("error locking summary: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM rekap_bulanan"); err != nil {
		tx.Rollback()
		return fmt.Errorf("error clearing summary: %w", err)
	}

	for _, row := range rows {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO rekap_bulanan (npm, nama, bulan, jumlah_hadir) VALUES ($1, $2, $3, $4)",
			row.ID, row.Name, row.Month, row.Count)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error writing summary: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
