package core

import (
	"context"
	"fmt"
)

// Repository is the read-only query surface over the Pokémon dataset.
// Every call works against one snapshot taken when the call starts.
type Repository interface {
	GetAll(ctx context.Context) ([]Pokemon, error)
	GetByID(ctx context.Context, id int) (Pokemon, error)
	GetByIDWithSimilar(ctx context.Context, id, k int) (Detail, error)
	List(ctx context.Context, params ListParams) (ListResult, error)
	AverageStats(ctx context.Context, opts AverageOptions) (AverageStats, error)
	AverageStatsByType(ctx context.Context, opts AverageOptions) ([]TypeAverageStats, error)
	BaseStats(ctx context.Context, opts AverageOptions) ([]BaseStatsEntry, error)
	Snapshot(ctx context.Context) (SnapshotInfo, error)
}

// CSVRepository serves queries from a CSV file cached by a Loader.
type CSVRepository struct {
	loader *Loader
}

var _ Repository = (*CSVRepository)(nil)

// NewCSVRepository creates a repository for the CSV file at path.
// The file is read lazily on first use unless Init is called.
func NewCSVRepository(path string, opts LoaderOptions) *CSVRepository {
	return &CSVRepository{loader: NewLoader(path, opts)}
}

// NewRepositoryFromDataset creates a repository that serves ds without reading any file.
func NewRepositoryFromDataset(ds *Dataset) *CSVRepository {
	l := NewLoader(ds.Source, LoaderOptions{})
	l.Replace(ds)
	return &CSVRepository{loader: l}
}

// Loader exposes the underlying cache.
func (r *CSVRepository) Loader() *Loader {
	return r.loader
}

// Init forces a load so the first query does not pay for it.
func (r *CSVRepository) Init(ctx context.Context) error {
	_, err := r.loader.Load(ctx, true)
	return err
}

// Reload re-reads the file and swaps the snapshot. On failure the previous
// snapshot keeps serving.
func (r *CSVRepository) Reload(ctx context.Context) (SnapshotInfo, error) {
	ds, err := r.loader.Load(ctx, true)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("reload: %w", err)
	}
	return ds.Info(), nil
}

func (r *CSVRepository) dataset(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.loader.Load(ctx, false)
}

// GetAll returns every record in dataset order. The slice is shared; do not modify it.
func (r *CSVRepository) GetAll(ctx context.Context) ([]Pokemon, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Records(), nil
}

// GetByID returns the record with id, or an error matching ErrNotFound.
func (r *CSVRepository) GetByID(ctx context.Context, id int) (Pokemon, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return Pokemon{}, err
	}
	return GetByID(ds, id)
}

// GetByIDWithSimilar returns the record with id and its k nearest neighbors by base stats.
// k is clamped to [0, MaxSimilarCount].
func (r *CSVRepository) GetByIDWithSimilar(ctx context.Context, id, k int) (Detail, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return Detail{}, err
	}
	return GetDetail(ds, id, k)
}

// List returns one page of filtered and sorted records.
func (r *CSVRepository) List(ctx context.Context, params ListParams) (ListResult, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return ListResult{}, err
	}
	return List(ds, params), nil
}

func (r *CSVRepository) AverageStats(ctx context.Context, opts AverageOptions) (AverageStats, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return AverageStats{}, err
	}
	return AverageStatsOf(ds, opts), nil
}

func (r *CSVRepository) AverageStatsByType(ctx context.Context, opts AverageOptions) ([]TypeAverageStats, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return AverageStatsByType(ds, opts), nil
}

func (r *CSVRepository) BaseStats(ctx context.Context, opts AverageOptions) ([]BaseStatsEntry, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return BaseStatsOf(ds, opts), nil
}

// Snapshot describes the dataset currently being served.
func (r *CSVRepository) Snapshot(ctx context.Context) (SnapshotInfo, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return SnapshotInfo{}, err
	}
	return ds.Info(), nil
}
