package attendance

import (
	"context"
	"errors"
	"testing"

	"absensi_qr/db"
	"absensi_qr/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleLog() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{ID: "001", Name: "Ana", Date: "2024-05-01"},
		{ID: "001", Name: "Ana", Date: "2024-05-02"},
		{ID: "002", Name: "Bo", Date: "2024-05-01"},
		{ID: "001", Name: "Ana", Date: "2024-06-01"},
	}
}

func TestRollup(t *testing.T) {
	rows := Rollup(sampleLog(), "2024-05")

	assert.Equal(t, []models.MonthlySummaryRow{
		{ID: "001", Name: "Ana", Month: "2024-05", Count: 2},
		{ID: "002", Name: "Bo", Month: "2024-05", Count: 1},
	}, rows)
}

func TestRollup_GroupsByIDAndName(t *testing.T) {
	log := []models.AttendanceRecord{
		{ID: "010", Name: "Cy", Date: "2024-05-03"},
		{ID: "007", Name: "Bond", Date: "2024-05-01"},
		{ID: "007", Name: "James Bond", Date: "2024-05-02"},
		{ID: "7", Name: "Bond", Date: "2024-05-02"},
	}

	rows := Rollup(log, "2024-05")

	assert.Equal(t, []models.MonthlySummaryRow{
		{ID: "007", Name: "Bond", Month: "2024-05", Count: 1},
		{ID: "007", Name: "James Bond", Month: "2024-05", Count: 1},
		{ID: "010", Name: "Cy", Month: "2024-05", Count: 1},
		{ID: "7", Name: "Bond", Month: "2024-05", Count: 1},
	}, rows)
}

func TestRollup_NoRowsForMonth(t *testing.T) {
	rows := Rollup(sampleLog(), "2023-01")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAggregator_Rebuild(t *testing.T) {
	t.Run("should replace the summary table", func(t *testing.T) {
		store := db.NewMemory()
		require.NoError(t, store.ReplaceSummary(context.Background(), []models.MonthlySummaryRow{{ID: "stale", Month: "2024-04", Count: 9}}))

		rows, err := NewAggregator(store).Rebuild(context.Background(), sampleLog(), "2024-05")
		require.NoError(t, err)

		stored, err := store.ListSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, rows, stored)
		assert.Len(t, stored, 2)
	})

	t.Run("should leave the table untouched for an empty log", func(t *testing.T) {
		summary := new(MockSummary)

		rows, err := NewAggregator(summary).Rebuild(context.Background(), nil, "2024-05")

		require.NoError(t, err)
		assert.Nil(t, rows)
		summary.AssertNotCalled(t, "ReplaceSummary", mock.Anything, mock.Anything)
	})

	t.Run("should clear the table when the month has no records", func(t *testing.T) {
		summary := new(MockSummary)
		summary.On("ReplaceSummary", mock.Anything, []models.MonthlySummaryRow{}).Return(nil).Once()

		rows, err := NewAggregator(summary).Rebuild(context.Background(), sampleLog(), "2023-01")

		require.NoError(t, err)
		assert.Empty(t, rows)
		summary.AssertExpectations(t)
	})

	t.Run("should wrap storage failures", func(t *testing.T) {
		summary := new(MockSummary)
		summary.On("ReplaceSummary", mock.Anything, mock.Anything).Return(errors.New("quota exceeded")).Once()

		_, err := NewAggregator(summary).Rebuild(context.Background(), sampleLog(), "2024-05")

		assert.ErrorIs(t, err, ErrStorageUnavailable)
		summary.AssertExpectations(t)
	})
}
