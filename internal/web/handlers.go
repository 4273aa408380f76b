package web

import (
	"net/http"

	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/logging"
	"github.com/JonMunkholm/pokedex/internal/web/views"
)

// dashboardTopCount is how many records the dashboard lists by BST.
const dashboardTopCount = 10

// handleListPokemon returns one page of filtered, sorted records.
func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.repo.List(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetPokemon returns one record and its nearest neighbors.
func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	k, err := parseSimilarCount(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	detail, err := s.repo.GetByIDWithSimilar(r.Context(), id, k)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAverageStats(w http.ResponseWriter, r *http.Request) {
	opts, err := parseAverageOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	avg, err := s.repo.AverageStats(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

func (s *Server) handleTypeStats(w http.ResponseWriter, r *http.Request) {
	opts, err := parseAverageOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	groups, err := s.repo.AverageStatsByType(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleBaseStats(w http.ResponseWriter, r *http.Request) {
	opts, err := parseAverageOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	entries, err := s.repo.BaseStats(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// schemaColumn describes one CSV column for /api/schema.
type schemaColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type schemaResponse struct {
	Columns  []schemaColumn `json:"columns"`
	SortKeys []string       `json:"sortKeys"`
	Types    []core.Type    `json:"types"`
}

// handleSchema lists the accepted CSV columns and the sort keys.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	cols := make([]schemaColumn, len(core.Columns))
	for i, c := range core.Columns {
		cols[i] = schemaColumn{Name: c.Name, Type: c.Type.String(), Required: c.Required}
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		Columns:  cols,
		SortKeys: core.SortKeys(),
		Types:    core.Types[:],
	})
}

type healthResponse struct {
	Status   string            `json:"status"`
	Snapshot core.SnapshotInfo `json:"snapshot"`
}

// handleHealth reports the current snapshot, or 503 when none can be loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info, err := s.repo.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Snapshot: info})
}

// handleReload forces a reload. On failure the previous snapshot stays live.
func (s *Server) handleReload(rl Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := rl.Reload(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		logging.FromContext(r.Context()).Info("dataset reloaded via api",
			"snapshot", info.ID, "rows", info.Rows)
		writeJSON(w, http.StatusOK, healthResponse{Status: "reloaded", Snapshot: info})
	}
}

// handleDashboard renders the HTML overview page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	avg, err := s.repo.AverageStats(ctx, core.AverageOptions{})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	byType, err := s.repo.AverageStatsByType(ctx, core.AverageOptions{})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	top, err := s.repo.List(ctx, core.ListParams{Sort: "bst:desc", PageSize: dashboardTopCount})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := views.DashboardData{Snapshot: info, Average: avg, ByType: byType, Top: top.Data}
	if err := views.Dashboard(data).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}
