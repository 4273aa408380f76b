// Package mock provides function-field test doubles for core interfaces.
package mock

import (
	"context"

	"github.com/JonMunkholm/pokedex/internal/core"
)

var _ core.Repository = (*Repository)(nil)

// Repository is a mock implementation of core.Repository.
type Repository struct {
	GetAllFn             func(ctx context.Context) ([]core.Pokemon, error)
	GetByIDFn            func(ctx context.Context, id int) (core.Pokemon, error)
	GetByIDWithSimilarFn func(ctx context.Context, id, k int) (core.Detail, error)
	ListFn               func(ctx context.Context, params core.ListParams) (core.ListResult, error)
	AverageStatsFn       func(ctx context.Context, opts core.AverageOptions) (core.AverageStats, error)
	AverageStatsByTypeFn func(ctx context.Context, opts core.AverageOptions) ([]core.TypeAverageStats, error)
	BaseStatsFn          func(ctx context.Context, opts core.AverageOptions) ([]core.BaseStatsEntry, error)
	SnapshotFn           func(ctx context.Context) (core.SnapshotInfo, error)
	ReloadFn             func(ctx context.Context) (core.SnapshotInfo, error)
}

func (r *Repository) GetAll(ctx context.Context) ([]core.Pokemon, error) {
	return r.GetAllFn(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id int) (core.Pokemon, error) {
	return r.GetByIDFn(ctx, id)
}

func (r *Repository) GetByIDWithSimilar(ctx context.Context, id, k int) (core.Detail, error) {
	return r.GetByIDWithSimilarFn(ctx, id, k)
}

func (r *Repository) List(ctx context.Context, params core.ListParams) (core.ListResult, error) {
	return r.ListFn(ctx, params)
}

func (r *Repository) AverageStats(ctx context.Context, opts core.AverageOptions) (core.AverageStats, error) {
	return r.AverageStatsFn(ctx, opts)
}

func (r *Repository) AverageStatsByType(ctx context.Context, opts core.AverageOptions) ([]core.TypeAverageStats, error) {
	return r.AverageStatsByTypeFn(ctx, opts)
}

func (r *Repository) BaseStats(ctx context.Context, opts core.AverageOptions) ([]core.BaseStatsEntry, error) {
	return r.BaseStatsFn(ctx, opts)
}

func (r *Repository) Snapshot(ctx context.Context) (core.SnapshotInfo, error) {
	return r.SnapshotFn(ctx)
}

func (r *Repository) Reload(ctx context.Context) (core.SnapshotInfo, error) {
	return r.ReloadFn(ctx)
}
