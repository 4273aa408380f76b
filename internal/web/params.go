package web

// params.go translates query strings into typed repository parameters.
// Anything present but unparseable is rejected with core.InvalidInputError.

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// parseIntParam parses an optional integer query parameter.
// Absent or blank values return def.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewInvalidInput(name, raw, "must be an integer")
	}
	return v, nil
}

// parseBoolParam parses an optional bool-like query parameter.
// Absent or blank values return nil.
func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v := core.ParseBoolLike(raw)
	if v == nil {
		return nil, core.NewInvalidInput(name, raw, "must be true or false")
	}
	return v, nil
}

// parseListParams reads q, legendary, sort, page and pageSize.
func parseListParams(r *http.Request) (core.ListParams, error) {
	legendary, err := parseBoolParam(r, "legendary")
	if err != nil {
		return core.ListParams{}, err
	}
	page, err := parseIntParam(r, "page", core.DefaultPage)
	if err != nil {
		return core.ListParams{}, err
	}
	size, err := parseIntParam(r, "pageSize", core.DefaultPageSize)
	if err != nil {
		return core.ListParams{}, err
	}

	q := r.URL.Query()
	return core.ListParams{
		Query:     q.Get("q"),
		Legendary: legendary,
		Sort:      q.Get("sort"),
		Page:      page,
		PageSize:  size,
	}, nil
}

// parseID reads the {id} path parameter.
func parseID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, core.NewInvalidInput("id", raw, "must be an integer")
	}
	return id, nil
}

// parseSimilarCount reads k. Fractions are floored and the result is clamped
// to [0, core.MaxSimilarCount].
func parseSimilarCount(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("k"))
	if raw == "" {
		return core.DefaultSimilarCount, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewInvalidInput("k", raw, "must be a number")
	}
	return core.NormalizeSimilarCount(v), nil
}

// parseAverageOptions reads excludeLegendaries.
func parseAverageOptions(r *http.Request) (core.AverageOptions, error) {
	exclude, err := parseBoolParam(r, "excludeLegendaries")
	if err != nil {
		return core.AverageOptions{}, err
	}
	return core.AverageOptions{ExcludeLegendaries: exclude != nil && *exclude}, nil
}
