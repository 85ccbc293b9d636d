/*
handlers.go - HTTP request handlers

PURPOSE:
  Thin translation layer between HTTP and the report service:
  1. Parse query parameters
  2. Validate
  3. Call domain logic
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid window or filter input
  - 500: Internal errors
  Degraded metric families and truncated pools are NOT errors; they ride
  along in the 200 payload so the page can badge the data.

SECURITY NOTE:
  No authentication or authorization here; the service sits behind the
  dashboard's gateway, which owns both.

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
	"github.com/quantrinhansu123/Luminew-sub000/report"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service   *report.Service
	Directory report.Directory
	Logger    *zap.Logger
}

// NewHandler creates a handler around the report service.
func NewHandler(service *report.Service, directory report.Directory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: service, Directory: directory, Logger: logger}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ShiftReport serves GET /api/reports/shift.
//
// Query parameters:
//
//	start, end          report window (required, any accepted date format)
//	staff               comma-separated staff names
//	team                team name (resolved via the staff directory)
//	product, market     product/market restriction
func (h *Handler) ShiftReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	window, err := report.ParseWindow(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report window", err)
		return
	}

	filter := report.Filter{
		Team:    q.Get("team"),
		Product: q.Get("product"),
		Market:  q.Get("market"),
	}
	if staff := strings.TrimSpace(q.Get("staff")); staff != "" {
		for _, name := range strings.Split(staff, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Staff = append(filter.Staff, name)
			}
		}
	}

	view, err := h.Service.ShiftReport(r.Context(), window, filter)
	if err != nil {
		if errors.Is(err, recon.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "Invalid report window", err)
			return
		}
		h.Logger.Error("shift report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftReportResponse(view))
}

// Roster serves GET /api/roster.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	members, err := h.Directory.Members(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roster", err)
		return
	}
	dtos := make([]StaffMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = StaffMemberDTO{Name: m.Name, Team: m.Team}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health serves GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
