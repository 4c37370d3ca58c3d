package db

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"absensi_qr/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValues mimics the Sheets values endpoint over in-memory worksheets.
type fakeValues struct {
	mu     sync.Mutex
	sheets map[string][][]interface{}
	err    error
	calls  []string
}

func newFakeValues() *fakeValues {
	return &fakeValues{sheets: map[string][][]interface{}{}}
}

func sheetName(rng string) string {
	if i := strings.Index(rng, "!"); i >= 0 {
		return rng[:i]
	}
	return rng
}

func (f *fakeValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get "+rng)
	if f.err != nil {
		return nil, f.err
	}
	return append([][]interface{}(nil), f.sheets[sheetName(rng)]...), nil
}

func (f *fakeValues) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "append "+rng)
	if f.err != nil {
		return f.err
	}
	f.sheets[sheetName(rng)] = append(f.sheets[sheetName(rng)], rows...)
	return nil
}

func (f *fakeValues) Clear(ctx context.Context, rng string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "clear "+rng)
	if f.err != nil {
		return f.err
	}
	delete(f.sheets, sheetName(rng))
	return nil
}

func newTestSheets(values *fakeValues) *Sheets {
	return newSheets(values, SheetsConfig{AttendanceSheet: "absensi", SummarySheet: "rekap_bulanan"})
}

func TestSheets_Contract(t *testing.T) {
	runStoreContract(t, newTestSheets(newFakeValues()))
}

func TestSheets_WritesHeaderOnEmptySheet(t *testing.T) {
	values := newFakeValues()
	store := newTestSheets(values)

	_, err := store.AppendIfAbsent(context.Background(), models.AttendanceRecord{ID: "007", Name: "Ana", Program: "TI", Date: "2024-05-01", Time: "07:00:00"})
	require.NoError(t, err)

	rows := values.sheets["absensi"]
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"NPM", "Nama", "Prodi", "Tanggal", "Jam"}, rows[0])
	assert.Equal(t, "007", rows[1][0])
}

func TestSheets_ReadsNumericCells(t *testing.T) {
	values := newFakeValues()
	values.sheets["absensi"] = [][]interface{}{
		{"NPM", "Nama", "Prodi", "Tanggal", "Jam"},
		{float64(2110), "Bo", "SI", "2024-05-01", "08:00:00"},
		{"0042", "Cy"},
	}
	store := newTestSheets(values)

	log, err := store.ListAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "2110", log[0].ID)
	assert.Equal(t, models.AttendanceRecord{ID: "0042", Name: "Cy"}, log[1])
}

func TestSheets_ReplaceSummaryWritesHeaderFirst(t *testing.T) {
	values := newFakeValues()
	store := newTestSheets(values)

	err := store.ReplaceSummary(context.Background(), []models.MonthlySummaryRow{{ID: "001", Name: "Ana", Month: "2024-05", Count: 2}})
	require.NoError(t, err)

	assert.Equal(t, []string{"clear rekap_bulanan", "append rekap_bulanan"}, values.calls)
	assert.Equal(t, [][]interface{}{
		{"NPM", "Nama", "Bulan", "Jumlah Hadir"},
		{"001", "Ana", "2024-05", 2},
	}, values.sheets["rekap_bulanan"])
}

func TestSheets_PropagatesErrors(t *testing.T) {
	values := newFakeValues()
	values.err = errors.New("403 forbidden")
	store := newTestSheets(values)
	ctx := context.Background()

	_, err := store.ListAttendance(ctx)
	assert.ErrorIs(t, err, values.err)

	_, err = store.AppendIfAbsent(ctx, models.AttendanceRecord{ID: "1", Date: "2024-05-01"})
	assert.ErrorIs(t, err, values.err)

	assert.ErrorIs(t, store.ReplaceSummary(ctx, nil), values.err)
	assert.Error(t, store.Ping(ctx))
}

func TestSheets_BadCount(t *testing.T) {
	values := newFakeValues()
	values.sheets["rekap_bulanan"] = [][]interface{}{
		{"NPM", "Nama", "Bulan", "Jumlah Hadir"},
		{"001", "Ana", "2024-05", "lots"},
	}

	_, err := newTestSheets(values).ListSummary(context.Background())
	assert.Error(t, err)
}

func TestSheets_SkipsBlankSummaryRows(t *testing.T) {
	values := newFakeValues()
	values.sheets["rekap_bulanan"] = [][]interface{}{
		{"NPM", "Nama", "Bulan", "Jumlah Hadir"},
		{"001", "Ana", "2024-05", float64(2)},
		{"", "", "", ""},
		{},
		{"002", "Bo", "2024-05", ""},
	}
	values.sheets["absensi"] = [][]interface{}{
		{"NPM", "Nama", "Prodi", "Tanggal", "Jam"},
		{"", "", "", "", ""},
		{"001", "Ana", "TI", "2024-05-01", "07:10:00"},
	}
	store := newTestSheets(values)

	rows, err := store.ListSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.MonthlySummaryRow{
		{ID: "001", Name: "Ana", Month: "2024-05", Count: 2},
		{ID: "002", Name: "Bo", Month: "2024-05", Count: 0},
	}, rows)

	log, err := store.ListAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "001", log[0].ID)
}

// slowClear widens the gap between clearing and rewriting a worksheet.
type slowClear struct {
	*fakeValues
}

func (s slowClear) Clear(ctx context.Context, rng string) error {
	err := s.fakeValues.Clear(ctx, rng)
	time.Sleep(20 * time.Millisecond)
	return err
}

func TestSheets_ConcurrentReplaceSummary(t *testing.T) {
	values := newFakeValues()
	store := newSheets(slowClear{values}, SheetsConfig{AttendanceSheet: "absensi", SummarySheet: "rekap_bulanan"})
	rows := []models.MonthlySummaryRow{{ID: "001", Name: "Ana", Month: "2024-05", Count: 2}}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.ReplaceSummary(context.Background(), rows))
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{
		"clear rekap_bulanan", "append rekap_bulanan",
		"clear rekap_bulanan", "append rekap_bulanan",
	}, values.calls)
	assert.Equal(t, [][]interface{}{
		{"NPM", "Nama", "Bulan", "Jumlah Hadir"},
		{"001", "Ana", "2024-05", 2},
	}, values.sheets["rekap_bulanan"])

	got, err := store.ListSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
