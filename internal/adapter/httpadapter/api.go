package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/explorer"
	"github.com/couchcryptid/wildfire-explorer/internal/snapshot"
)

// maxBodyBytes caps request bodies; selection payloads are tiny.
const maxBodyBytes = 4 << 10

// Controller is the part of the explorer engine the API drives.
type Controller interface {
	Dataset() *domain.Dataset
	Selection() explorer.Selection
	SetYear(year int) error
	SetCause(cause string) error
	StartPlayback()
	StopPlayback()
}

// ViewSource returns the latest rendered views.
type ViewSource interface {
	Snapshot() snapshot.Views
}

// StateResponse describes the selection and the slider/dropdown bounds.
type StateResponse struct {
	Year    int      `json:"year"`
	Cause   string   `json:"cause"`
	Playing bool     `json:"playing"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
	Causes  []string `json:"causes"`
}

type yearRequest struct {
	Year *int `json:"year"`
}

type causeRequest struct {
	Cause *string `json:"cause"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type api struct {
	ctrl   Controller
	views  ViewSource
	logger *slog.Logger
}

func (a *api) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.state())
}

func (a *api) handleViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.views.Snapshot())
}

func (a *api) handleSetYear(w http.ResponseWriter, r *http.Request) {
	var req yearRequest
	if err := decodeBody(w, r, &req); err != nil || req.Year == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `body must be {"year": <int>}`})
		return
	}
	if err := a.ctrl.SetYear(*req.Year); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.state())
}

func (a *api) handleSetCause(w http.ResponseWriter, r *http.Request) {
	var req causeRequest
	if err := decodeBody(w, r, &req); err != nil || req.Cause == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `body must be {"cause": <string>}`})
		return
	}
	if err := a.ctrl.SetCause(*req.Cause); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.state())
}

func (a *api) handleStartPlayback(w http.ResponseWriter, _ *http.Request) {
	a.ctrl.StartPlayback()
	writeJSON(w, http.StatusOK, a.state())
}

func (a *api) handleStopPlayback(w http.ResponseWriter, _ *http.Request) {
	a.ctrl.StopPlayback()
	writeJSON(w, http.StatusOK, a.state())
}

func (a *api) state() StateResponse {
	sel := a.ctrl.Selection()
	ds := a.ctrl.Dataset()
	minYear, maxYear, _ := ds.YearDomain()
	return StateResponse{
		Year:    sel.Year,
		Cause:   sel.Cause,
		Playing: sel.Playing(),
		MinYear: minYear,
		MaxYear: maxYear,
		Causes:  ds.Causes(),
	}
}

// writeError maps rejected transitions to 422 and anything else to 500.
func (a *api) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfRange), errors.Is(err, domain.ErrUnknownCause):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		a.logger.Error("selection update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
