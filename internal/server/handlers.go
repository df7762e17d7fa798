package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/mesoplan/internal/export"
	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("days") == "" {
		writeJSON(w, http.StatusOK, planner.Catalog())
		return
	}
	days, err := strconv.Atoi(q.Get("days"))
	if err != nil || days < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a non-negative integer"})
		return
	}
	eq := &models.EquipmentProfile{Location: models.ParseLocation(q.Get("location"))}
	if v := q.Get("bodyweight_only"); v != "" {
		eq.BodyweightOnly, _ = strconv.ParseBool(v)
	}
	exp := models.ParseExperience(q.Get("experience"))
	split := planner.SelectSplitArchitecture(days, exp, models.ParseGoal(q.Get("goal")), eq)
	writeJSON(w, http.StatusOK, map[string]any{
		"days":          days,
		"split":         split,
		"session_order": planner.GetSessionOrder(split),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.plans.Preview(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	rec, err := s.plans.Profile(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in plans.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := s.plans.SaveProfile(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		NextCycle *models.NextCycleConfig `json:"next_cycle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	rec, err := s.plans.PlanForUser(r.Context(), uid, body.NextCycle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in plans.FeedbackInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := s.plans.SubmitFeedback(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	limit := plans.DefaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	list, err := s.plans.History(r.Context(), uid, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	rec, err := s.plans.Current(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week"})
		return
	}
	day, err := models.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	detail, err := s.plans.SessionDetail(r.Context(), uid, week, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	start := export.NextMonday(time.Now())
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start must be YYYY-MM-DD"})
			return
		}
		start = t
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "ics" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be xlsx or ics"})
		return
	}

	rec, err := s.plans.Current(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case "ics":
		contentType = "text/calendar; charset=utf-8"
		err = export.WriteICS(&buf, rec.Plan, export.ICSOptions{ID: rec.ID.String(), Start: start, Stamp: rec.CreatedAt})
	default:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteWorkbook(&buf, rec.Plan)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="mesocycle-%s.%s"`, rec.ID.String()[:8], format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	stats, err := s.plans.Stats(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// writeError maps service errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, planner.ErrInvalidSchedule),
		errors.Is(err, planner.ErrInvalidWeeks),
		errors.Is(err, plans.ErrInvalidFeedback):
		status = http.StatusBadRequest
	case errors.Is(err, plans.ErrNoProfile),
		errors.Is(err, plans.ErrNoMesocycle),
		errors.Is(err, plans.ErrSessionNotFound):
		status = http.StatusNotFound
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
