package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"absensi_qr/attendance"
	"absensi_qr/middleware"
	"absensi_qr/models"

	"github.com/gin-gonic/gin"
)

// KioskService is the attendance pass the handlers drive.
type KioskService interface {
	Scan(ctx context.Context, payload string) (attendance.Result, error)
	Status() attendance.KioskStatus
	Today(ctx context.Context) (string, []models.AttendanceRecord, error)
	Summary(ctx context.Context) ([]models.MonthlySummaryRow, error)
	Rebuild(ctx context.Context, month string) ([]models.MonthlySummaryRow, error)
}

type AttendanceHandler struct {
	svc KioskService
}

func NewAttendanceHandler(svc KioskService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

var scanStatusCodes = map[attendance.Status]int{
	attendance.StatusRecorded:       http.StatusCreated,
	attendance.StatusAlreadyPresent: http.StatusOK,
	attendance.StatusNoCode:         http.StatusOK,
	attendance.StatusInvalidFormat:  http.StatusBadRequest,
	attendance.StatusOutOfWindow:    http.StatusForbidden,
}

func storageError(c *gin.Context, err error, msg string) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(c), msg, err)
	if errors.Is(err, attendance.ErrStorageUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Scan(c.Request.Context(), req.Payload)
	if err != nil {
		storageError(c, err, "Failed to record attendance")
		return
	}

	out := res.Outcome
	if out.Status == attendance.StatusRecorded {
		log.Printf("[%s] Recorded attendance for %s on %s", middleware.GetRequestID(c), out.Record.ID, out.Record.Date)
	}

	code, ok := scanStatusCodes[out.Status]
	if !ok {
		code = http.StatusInternalServerError
	}

	c.JSON(code, models.ScanResponse{
		Status:  out.Status.String(),
		Message: out.Message(),
		Record:  out.Record,
		Summary: res.Summary,
	})
}

func (h *AttendanceHandler) GetStatus(c *gin.Context) {
	st := h.svc.Status()
	c.JSON(http.StatusOK, models.StatusResponse{
		Date:        st.Date,
		Month:       st.Month,
		WindowStart: attendance.FormatClock(st.Window.Start),
		WindowEnd:   attendance.FormatClock(st.Window.End),
		Open:        st.Open,
	})
}

func (h *AttendanceHandler) GetToday(c *gin.Context) {
	date, records, err := h.svc.Today(c.Request.Context())
	if err != nil {
		storageError(c, err, "Failed to fetch attendance records")
		return
	}

	c.JSON(http.StatusOK, models.TodayResponse{Date: date, Records: records})
}

func (h *AttendanceHandler) GetSummary(c *gin.Context) {
	rows, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		storageError(c, err, "Failed to fetch monthly summary")
		return
	}

	if rows == nil {
		rows = []models.MonthlySummaryRow{}
	}
	c.JSON(http.StatusOK, models.SummaryResponse{Rows: rows})
}

func (h *AttendanceHandler) RebuildSummary(c *gin.Context) {
	rows, err := h.svc.Rebuild(c.Request.Context(), c.Query("month"))
	if errors.Is(err, attendance.ErrInvalidMonth) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		storageError(c, err, "Failed to rebuild monthly summary")
		return
	}

	if rows == nil {
		rows = []models.MonthlySummaryRow{}
	}
	c.JSON(http.StatusOK, models.SummaryResponse{Rows: rows})
}
