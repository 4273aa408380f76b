package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/JonMunkholm/pokedex/cmd/pokedex"
	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/core/mock"
)

func newDeps(repo core.Repository) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Repo:   repo,
	}, stdout, stderr
}

func water() *core.Type {
	t := core.Type("Water")
	return &t
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a table with paging footer", func(t *testing.T) {
		t.Parallel()

		var got core.ListParams
		repo := &mock.Repository{
			ListFn: func(_ context.Context, p core.ListParams) (core.ListResult, error) {
				got = p
				return core.ListResult{
					Total: 12, Page: 2, PageSize: 5,
					Data: []core.Pokemon{
						{ID: 130, Name: "Gyarados", PrimaryType: "Water", SecondaryType: nil, BST: 540, Generation: 1},
						{ID: 249, Name: "Lugia", PrimaryType: "Psychic", SecondaryType: nil, BST: 680, Generation: 2, Legendary: true},
					},
				}, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		cmd := &main.ListCmd{Query: "a", Legendary: "no", Sort: "bst:desc", Page: 2, PageSize: 5}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "a", got.Query)
		require.NotNil(t, got.Legendary)
		assert.False(t, *got.Legendary)

		out := stdout.String()
		assert.Contains(t, out, "Gyarados")
		assert.Contains(t, out, "Lugia")
		assert.Contains(t, out, "page 2 of 3, 12 total")
	})

	t.Run("rejects unrecognized legendary value", func(t *testing.T) {
		t.Parallel()

		repo := &mock.Repository{
			ListFn: func(context.Context, core.ListParams) (core.ListResult, error) {
				t.Fatal("repository must not be called")
				return core.ListResult{}, nil
			},
		}
		deps, _, stderr := newDeps(repo)

		err := (&main.ListCmd{Legendary: "sometimes"}).Run(deps)

		require.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Contains(t, stderr.String(), "INP001")
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		repo := &mock.Repository{
			ListFn: func(context.Context, core.ListParams) (core.ListResult, error) {
				return core.ListResult{Total: 0, Page: 1, PageSize: 50, Data: []core.Pokemon{}}, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		require.NoError(t, (&main.ListCmd{JSON: true}).Run(deps))

		var body core.ListResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &body))
		assert.Equal(t, 50, body.PageSize)
		assert.NotNil(t, body.Data)
	})

	t.Run("empty result message", func(t *testing.T) {
		t.Parallel()

		repo := &mock.Repository{
			ListFn: func(context.Context, core.ListParams) (core.ListResult, error) {
				return core.ListResult{Page: 1, PageSize: 50, Data: []core.Pokemon{}}, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		require.NoError(t, (&main.ListCmd{Query: "zzz"}).Run(deps))
		assert.Contains(t, stdout.String(), "No Pokémon match.")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("normalizes k and prints distances", func(t *testing.T) {
		t.Parallel()

		var gotK int
		repo := &mock.Repository{
			GetByIDWithSimilarFn: func(_ context.Context, id, k int) (core.Detail, error) {
				gotK = k
				return core.Detail{
					Pokemon: core.Pokemon{
						ID: 7, Name: "Squirtle", PrimaryType: "Water",
						Stats: core.Stats{HP: 44, Attack: 48, Defense: 65, SpAtk: 50, SpDef: 64, Speed: 43},
						BST:   314, Generation: 1, Abilities: []string{"Torrent", "Rain Dish"},
					},
					Similar: []core.Pokemon{{
						ID: 1, Name: "Bulbasaur", PrimaryType: "Grass",
						Stats: core.Stats{HP: 44, Attack: 48, Defense: 65, SpAtk: 50, SpDef: 64, Speed: 46},
					}},
				}, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		require.NoError(t, (&main.ShowCmd{ID: 7, K: 2.8}).Run(deps))

		assert.Equal(t, 2, gotK)
		out := stdout.String()
		assert.Contains(t, out, "#7 Squirtle (Water)")
		assert.Contains(t, out, "Torrent")
		assert.Contains(t, out, "distance 3.0")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		repo := &mock.Repository{
			GetByIDWithSimilarFn: func(_ context.Context, id, _ int) (core.Detail, error) {
				return core.Detail{}, &core.NotFoundError{ID: id}
			},
		}
		deps, _, stderr := newDeps(repo)

		err := (&main.ShowCmd{ID: 4242, K: 5}).Run(deps)

		require.ErrorIs(t, err, core.ErrNotFound)
		assert.Contains(t, stderr.String(), "NF001")
	})
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	avg := core.AverageStats{Count: 2, Stats: []core.StatAverage{
		{Key: core.StatHP, Average: 61.5},
		{Key: core.StatAttack, Average: 70},
	}}

	t.Run("overall averages", func(t *testing.T) {
		t.Parallel()

		var gotOpts core.AverageOptions
		repo := &mock.Repository{
			AverageStatsFn: func(_ context.Context, o core.AverageOptions) (core.AverageStats, error) {
				gotOpts = o
				return avg, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		require.NoError(t, (&main.StatsCmd{ExcludeLegendaries: true}).Run(deps))

		assert.True(t, gotOpts.ExcludeLegendaries)
		assert.Contains(t, stdout.String(), "61.5")
		assert.Contains(t, stdout.String(), "70.0")
	})

	t.Run("by type", func(t *testing.T) {
		t.Parallel()

		repo := &mock.Repository{
			AverageStatsByTypeFn: func(context.Context, core.AverageOptions) ([]core.TypeAverageStats, error) {
				return []core.TypeAverageStats{
					{Type: *water(), AverageStats: avg},
					{Type: "Fire", AverageStats: avg},
				}, nil
			},
		}
		deps, stdout, _ := newDeps(repo)

		require.NoError(t, (&main.StatsCmd{ByType: true}).Run(deps))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "TYPE"))
		assert.True(t, strings.HasPrefix(lines[1], "Water"))
	})
}
