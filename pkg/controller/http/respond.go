package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/export"
	"github.com/raceops/trackdesk/pkg/repository/memory"
	"github.com/raceops/trackdesk/pkg/repository/sqlite"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/raceops/trackdesk/pkg/utils/errutil"
)

type incidentResponse struct {
	ID           int64      `json:"id"`
	Category     string     `json:"category"`
	Location     string     `json:"location"`
	Units        []string   `json:"units"`
	Disposition  string     `json:"disposition"`
	Status       string     `json:"status"`
	Color        string     `json:"color"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	ArrivedAt    *time.Time `json:"arrived_at,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

func toIncidentResponse(inc *model.Incident) incidentResponse {
	units := inc.Units
	if units == nil {
		units = []string{}
	}
	return incidentResponse{
		ID:           inc.ID,
		Category:     inc.Category.String(),
		Location:     inc.Location,
		Units:        units,
		Disposition:  inc.Disposition,
		Status:       inc.Status.String(),
		Color:        inc.Color().String(),
		CreatedAt:    inc.CreatedAt,
		UpdatedAt:    inc.UpdatedAt,
		DispatchedAt: inc.DispatchedAt,
		ArrivedAt:    inc.ArrivedAt,
		ResolvedAt:   inc.ResolvedAt,
	}
}

type noteResponse struct {
	ID         int64     `json:"id"`
	IncidentID int64     `json:"incident_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func toNoteResponse(n *model.Note) noteResponse {
	return noteResponse{
		ID:         n.ID,
		IncidentID: n.IncidentID,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// respondError maps application errors onto HTTP status codes.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrIncidentNotFound),
		errors.Is(err, memory.ErrNotFound),
		errors.Is(err, sqlite.ErrNotFound):
		status = http.StatusNotFound

	case errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrMissingLocation),
		errors.Is(err, usecase.ErrEmptyNote),
		errors.Is(err, usecase.ErrInvalidQuery),
		errors.Is(err, model.ErrUnknownLocation),
		errors.Is(err, model.ErrUnknownUnit),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, export.ErrUnknownColumn):
		status = http.StatusBadRequest

	case errors.Is(err, usecase.ErrAlreadyCompleted),
		errors.Is(err, usecase.ErrAlreadyDispatched),
		errors.Is(err, usecase.ErrAlreadyArrived):
		status = http.StatusConflict
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}
