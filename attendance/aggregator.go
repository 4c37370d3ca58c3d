package attendance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"absensi_qr/models"
)

// Rollup counts records per (id, name) whose date falls in month (YYYY-MM).
// Rows are ordered by id, then name.
func Rollup(log []models.AttendanceRecord, month string) []models.MonthlySummaryRow {
	type key struct{ id, name string }

	counts := make(map[key]int)
	for _, rec := range log {
		if !strings.HasPrefix(rec.Date, month) {
			continue
		}
		counts[key{NormalizeID(rec.ID), rec.Name}]++
	}

	rows := make([]models.MonthlySummaryRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, models.MonthlySummaryRow{ID: k.id, Name: k.name, Month: month, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ID != rows[j].ID {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}

// Aggregator rewrites the monthly summary table from the log.
type Aggregator struct {
	table SummaryTable
}

func NewAggregator(table SummaryTable) *Aggregator {
	return &Aggregator{table: table}
}

// Rebuild replaces the summary table with the rollup of log for month.
// An empty log leaves the table untouched and returns nil rows.
func (a *Aggregator) Rebuild(ctx context.Context, log []models.AttendanceRecord, month string) ([]models.MonthlySummaryRow, error) {
	if len(log) == 0 {
		return nil, nil
	}

	rows := Rollup(log, month)
	if err := a.table.ReplaceSummary(ctx, rows); err != nil {
		return nil, fmt.Errorf("%w: replace summary: %w", ErrStorageUnavailable, err)
	}

	return rows, nil
}
