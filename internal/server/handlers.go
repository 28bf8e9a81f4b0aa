package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/plugin"
	"github.com/toad-frogski/visits/internal/timeline"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// parseEntryType validates the type field before it reaches the service.
func parseEntryType(w http.ResponseWriter, raw string) (domain.EntryType, bool) {
	if !domain.ValidEntryTypes[raw] {
		writeError(w, http.StatusBadRequest, "unknown entry type: "+raw)
		return "", false
	}
	return domain.EntryType(raw), true
}

type entryPayload struct {
	ID      string     `json:"id"`
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end,omitempty"`
	Type    string     `json:"type"`
	Comment string     `json:"comment,omitempty"`
}

type sessionPayload struct {
	ID      string         `json:"id"`
	UserID  string         `json:"user_id"`
	Date    string         `json:"date"`
	Status  string         `json:"status"`
	Entries []entryPayload `json:"entries"`
}

type enterRequest struct {
	UserID string    `json:"user_id"`
	Type   string    `json:"type"`
	Start  time.Time `json:"start"`
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	var req enterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "user_id and start are required")
		return
	}
	if req.Type == "" {
		req.Type = string(domain.EntrySystem)
	}
	typ, ok := parseEntryType(w, req.Type)
	if !ok {
		return
	}

	session, err := s.sessions.Enter(r.Context(), req.UserID, typ, req.Start)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"session_id": session.ID})
}

type exitRequest struct {
	UserID  string    `json:"user_id"`
	End     time.Time `json:"end"`
	Comment string    `json:"comment"`
}

func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	var req exitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "user_id and end are required")
		return
	}

	if err := s.sessions.Exit(r.Context(), req.UserID, req.End, req.Comment); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type leaveRequest struct {
	UserID  string    `json:"user_id"`
	Type    string    `json:"type"`
	Time    time.Time `json:"time"`
	Comment string    `json:"comment"`
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Time.IsZero() {
		writeError(w, http.StatusBadRequest, "user_id and time are required")
		return
	}
	typ, ok := parseEntryType(w, req.Type)
	if !ok {
		return
	}

	if err := s.sessions.Leave(r.Context(), req.UserID, typ, req.Time, req.Comment); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	view, err := s.sessions.CurrentSession(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if view == nil {
		writeError(w, http.StatusNotFound, "no current session")
		return
	}

	payload := sessionPayload{
		ID:     view.Session.ID,
		UserID: view.Session.UserID,
		Date:   view.Session.Date.Format(dateLayout),
		Status: string(s.sessions.StatusOf(view, time.Now())),
	}
	for _, e := range view.Entries {
		payload.Entries = append(payload.Entries, entryPayload{
			ID: e.ID, Start: e.Start, End: e.End, Type: string(e.Type), Comment: e.Comment,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

type todayRow struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status"`
	Comment   string `json:"comment,omitempty"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	rows, err := s.sessions.UsersToday(r.Context(), time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]todayRow, 0, len(rows))
	for _, row := range rows {
		out := todayRow{UserID: row.UserID, Status: string(row.Status), Comment: row.Comment}
		if row.Session != nil {
			out.SessionID = row.Session.ID
		}
		payload = append(payload, out)
	}
	writeJSON(w, http.StatusOK, payload)
}

type insertEntryRequest struct {
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end"`
	Type    string     `json:"type"`
	Comment string     `json:"comment"`
}

func (s *Server) handleInsertEntry(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req insertEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}
	typ, ok := parseEntryType(w, req.Type)
	if !ok {
		return
	}

	entry, err := s.sessions.InsertEntry(r.Context(), sessionID, req.Start, req.End, typ, req.Comment)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"entry_id": entry.ID})
}

type repairEntryRequest struct {
	End time.Time `json:"end"`
}

func (s *Server) handleRepairEntry(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	var req repairEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "end is required")
		return
	}

	if err := s.sessions.RepairEntry(r.Context(), entryID, req.End); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type statisticsDay struct {
	Date       string                  `json:"date"`
	SessionID  string                  `json:"session_id,omitempty"`
	Statistics *timeline.DayStatistics `json:"statistics"`
	Extras     []plugin.Extra          `json:"extra"`
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	start, err := time.ParseInLocation(dateLayout, q.Get("start"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := time.ParseInLocation(dateLayout, q.Get("end"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	reports, err := s.statistics.RangeStatistics(r.Context(), userID, start, end)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]statisticsDay, 0, len(reports))
	for _, report := range reports {
		out := statisticsDay{
			Date:       report.Date.Format(dateLayout),
			Statistics: report.Statistics,
			Extras:     report.Extras,
		}
		if report.Session != nil {
			out.SessionID = report.Session.ID
		}
		payload = append(payload, out)
	}
	writeJSON(w, http.StatusOK, payload)
}
