package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/utils/errutil"
)

type noteRequest struct {
	Body string `json:"body"`
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	note, err := s.uc.AddNote(r.Context(), id, req.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toNoteResponse(note))
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	id, err := incidentID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Listing notes for a missing incident is a 404, not an empty list.
	if _, err := s.uc.GetIncident(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	notes, err := s.uc.ListNotes(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := struct {
		Notes []noteResponse `json:"notes"`
	}{
		Notes: make([]noteResponse, len(notes)),
	}
	for i, n := range notes {
		resp.Notes[i] = toNoteResponse(n)
	}

	respondJSON(w, r, http.StatusOK, resp)
}
