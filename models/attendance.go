package models

// AttendanceRecord is one row of the attendance log (sheet "absensi").
// ID is kept as a string so NPMs like "007" keep their leading zeros.
type AttendanceRecord struct {
	ID      string `json:"npm"`
	Name    string `json:"nama"`
	Program string `json:"prodi"`
	Date    string `json:"tanggal"` // YYYY-MM-DD
	Time    string `json:"jam"`     // HH:MM:SS
}

// MonthlySummaryRow is one row of the monthly rollup (sheet "rekap_bulanan").
type MonthlySummaryRow struct {
	ID    string `json:"npm"`
	Name  string `json:"nama"`
	Month string `json:"bulan"`
	Count int    `json:"jumlah_hadir"`
}

// Column headers of the two durable tables.
var (
	AttendanceHeader = []string{"NPM", "Nama", "Prodi", "Tanggal", "Jam"}
	SummaryHeader    = []string{"NPM", "Nama", "Bulan", "Jumlah Hadir"}
)

type ScanRequest struct {
	Payload string `json:"payload"`
}

type ScanResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Record  *AttendanceRecord   `json:"record,omitempty"`
	Summary []MonthlySummaryRow `json:"summary,omitempty"`
}

type StatusResponse struct {
	Date        string `json:"tanggal"`
	Month       string `json:"bulan"`
	WindowStart string `json:"jam_mulai"`
	WindowEnd   string `json:"jam_selesai"`
	Open        bool   `json:"open"`
}

type TodayResponse struct {
	Date    string             `json:"tanggal"`
	Records []AttendanceRecord `json:"records"`
}

type SummaryResponse struct {
	Rows []MonthlySummaryRow `json:"rows"`
}
