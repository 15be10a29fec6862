package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/raceops/trackdesk/pkg/utils/errutil"
)

type incidentRequest struct {
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Units       []string `json:"units"`
	Disposition string   `json:"disposition"`
}

func (req incidentRequest) toInput() usecase.IncidentInput {
	return usecase.IncidentInput{
		Category:    types.Category(req.Category),
		Location:    req.Location,
		Units:       req.Units,
		Disposition: req.Disposition,
	}
}

func incidentID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrInvalidQuery, "incident id must be an integer", goerr.V("id", raw))
	}
	return id, nil
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	var req incidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	inc, err := s.uc.CreateIncident(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toIncidentResponse(inc))
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	inc, err := s.uc.GetIncident(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toIncidentResponse(inc))
}

func (s *Server) updateIncident(w http.ResponseWriter, r *http.Request) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req incidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	inc, err := s.uc.UpdateIncident(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toIncidentResponse(inc))
}

func (s *Server) deleteIncident(w http.ResponseWriter, r *http.Request) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.uc.DeleteIncident(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) completeIncident(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.uc.CompleteIncident)
}

func (s *Server) markDispatched(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.uc.MarkDispatched)
}

func (s *Server) markArrived(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.uc.MarkArrived)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (*model.Incident, error)) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	inc, err := op(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toIncidentResponse(inc))
}

// parseListQuery builds the listing query from URL parameters. Unknown values
// fail validation downstream in the use case layer.
func parseListQuery(r *http.Request) (usecase.ListQuery, error) {
	q := usecase.ListQuery{}
	params := r.URL.Query()

	if v := params.Get("category"); v != "" {
		cat := types.Category(v)
		q.Category = &cat
	}
	if v := params.Get("status"); v != "" {
		st := types.Status(v)
		q.Status = &st
	}
	if v := params.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, goerr.Wrap(usecase.ErrInvalidQuery, "since must be RFC3339", goerr.V("since", v))
		}
		q.Since = &ts
	}
	if v := params.Get("until"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, goerr.Wrap(usecase.ErrInvalidQuery, "until must be RFC3339", goerr.V("until", v))
		}
		q.Until = &ts
	}
	q.SortKey = types.SortKey(params.Get("sort"))
	q.SortOrder = types.SortOrder(params.Get("order"))

	return q, nil
}

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	incidents, err := s.uc.ListIncidents(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := struct {
		Incidents []incidentResponse `json:"incidents"`
	}{
		Incidents: make([]incidentResponse, len(incidents)),
	}
	for i, inc := range incidents {
		resp.Incidents[i] = toIncidentResponse(inc)
	}

	respondJSON(w, r, http.StatusOK, resp)
}
