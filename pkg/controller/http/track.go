package http

import (
	"net/http"

	"github.com/raceops/trackdesk/pkg/domain/types"
)

type trackLocationResponse struct {
	Name string `json:"name"`
}

type trackUnitResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type trackResponse struct {
	Name       string                  `json:"name"`
	Locations  []trackLocationResponse `json:"locations"`
	Units      []trackUnitResponse     `json:"units"`
	Categories []string                `json:"categories"`
}

func (s *Server) getTrack(w http.ResponseWriter, r *http.Request) {
	locations := s.track.Locations()
	units := s.track.Units()

	categories := types.AllCategories()

	resp := trackResponse{
		Name:       s.track.Name(),
		Locations:  make([]trackLocationResponse, len(locations)),
		Units:      make([]trackUnitResponse, len(units)),
		Categories: make([]string, len(categories)),
	}
	for i, cat := range categories {
		resp.Categories[i] = cat.String()
	}
	for i, loc := range locations {
		resp.Locations[i] = trackLocationResponse{Name: loc.Name}
	}
	for i, u := range units {
		resp.Units[i] = trackUnitResponse{Name: u.Name, Category: u.Category}
	}

	respondJSON(w, r, http.StatusOK, resp)
}
