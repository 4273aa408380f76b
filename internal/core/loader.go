package core

// loader.go reads the backing CSV into a Dataset and caches it.
//
// The cache holds exactly one snapshot behind an atomic pointer. A load
// builds the complete Dataset first and only then swaps the pointer, so
// readers either see the old snapshot or the new one, never a partial one.
// Concurrent loads share a single read of the file via singleflight.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// OpenFunc opens the backing file for reading.
type OpenFunc func(name string) (io.ReadCloser, error)

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Open          OpenFunc     // Defaults to os.Open
	ValidateStats bool         // Enforce base stats in [1,255]
	Logger        *slog.Logger // Defaults to slog.Default()
}

// Loader owns the cached Dataset for one backing file.
type Loader struct {
	path    string
	open    OpenFunc
	mapOpts MapOptions
	logger  *slog.Logger

	current atomic.Pointer[Dataset]
	group   singleflight.Group
}

// NewLoader creates a Loader for path. Nothing is read until Load is called.
func NewLoader(path string, opts LoaderOptions) *Loader {
	if opts.Open == nil {
		opts.Open = openFile
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loader{
		path:    path,
		open:    opts.Open,
		mapOpts: MapOptions{ValidateStats: opts.ValidateStats},
		logger:  opts.Logger,
	}
}

// Path returns the backing file path.
func (l *Loader) Path() string {
	return l.path
}

// Current returns the cached snapshot, or nil before the first successful load.
func (l *Loader) Current() *Dataset {
	return l.current.Load()
}

// Replace swaps the cached snapshot without touching the file.
func (l *Loader) Replace(ds *Dataset) {
	l.current.Store(ds)
}

// Load returns the cached snapshot, reading the file only when nothing is
// cached or force is set. On failure the previous snapshot stays cached.
//
// Callers arriving while a load is in flight wait for that load and share
// its result. ctx only bounds the wait; the read itself runs to completion.
func (l *Loader) Load(ctx context.Context, force bool) (*Dataset, error) {
	if !force {
		if ds := l.current.Load(); ds != nil {
			return ds, nil
		}
	}

	ch := l.group.DoChan("load", func() (any, error) {
		return l.loadFile(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for dataset: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

func (l *Loader) loadFile(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	ds, err := l.readFile()
	if err != nil {
		l.logger.ErrorContext(ctx, "dataset load failed",
			"source", l.path,
			"error", err,
		)
		return nil, err
	}

	prev := l.current.Swap(ds)
	l.logger.InfoContext(ctx, "dataset loaded",
		"snapshot", ds.SnapshotID,
		"source", ds.Source,
		"rows", ds.Len(),
		"checksum", ds.Checksum,
		"changed", prev == nil || prev.Checksum != ds.Checksum,
		"duration", time.Since(start),
	)
	return ds, nil
}

func (l *Loader) readFile() (*Dataset, error) {
	f, err := l.open(l.path)
	if err != nil {
		return nil, &DataLoadError{Source: l.path, Err: err}
	}
	defer f.Close()

	return ReadDataset(f, l.path, l.mapOpts)
}

// ReadDataset parses a complete CSV stream into a Dataset.
// The first failing row aborts the read; no partial dataset is returned.
func ReadDataset(r io.Reader, source string, opts MapOptions) (*Dataset, error) {
	digest := xxhash.New()
	cr := csv.NewReader(NewSourceReader(io.TeeReader(r, digest)))
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("%w: %w", ErrInvalidCSV, err)}
	}

	idx, err := ValidateHeaders(header, Columns)
	if err != nil {
		return nil, withSource(err, source)
	}

	var records []Pokemon
	for i := 0; ; i++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Source: source, Row: i + 1, Err: fmt.Errorf("%w: %w", ErrInvalidCSV, err)}
		}

		row, err := ParseRow(NewRawRow(record, idx, Columns), i)
		if err != nil {
			return nil, withSource(err, source)
		}
		p, err := ToPokemon(row, i, opts)
		if err != nil {
			return nil, withSource(err, source)
		}
		records = append(records, p)
	}

	ds, err := NewDataset(source, records)
	if err != nil {
		return nil, err
	}
	ds.Checksum = fmt.Sprintf("%016x", digest.Sum64())
	return ds, nil
}

// withSource fills in the file name on a *DataLoadError.
func withSource(err error, source string) error {
	var le *DataLoadError
	if errors.As(err, &le) && le.Source == "" {
		le.Source = source
	}
	return err
}
