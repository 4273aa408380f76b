package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dataset is an immutable snapshot of the loaded records.
// A reload builds a new Dataset; an existing one is never modified.
type Dataset struct {
	SnapshotID uuid.UUID
	Source     string
	LoadedAt   time.Time
	Checksum   string // xxhash64 of the source bytes, hex; empty when built in memory

	records []Pokemon
	byID    map[int]int
}

// NewDataset indexes records by id. Records keep their given order,
// which is the tie-break order for sorting and similarity.
// A repeated id fails with ErrDuplicateID.
func NewDataset(source string, records []Pokemon) (*Dataset, error) {
	byID := make(map[int]int, len(records))
	for i, p := range records {
		if prev, dup := byID[p.ID]; dup {
			return nil, &DataLoadError{
				Source: source,
				Row:    i + 1,
				Column: ColNumber,
				Err:    fmt.Errorf("%w: %d (first seen on row %d)", ErrDuplicateID, p.ID, prev+1),
			}
		}
		byID[p.ID] = i
	}

	return &Dataset{
		SnapshotID: uuid.New(),
		Source:     source,
		LoadedAt:   time.Now().UTC(),
		records:    records,
		byID:       byID,
	}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in dataset order. The slice is shared; do not modify it.
func (d *Dataset) Records() []Pokemon {
	return d.records
}

// Lookup returns the record with the given id.
func (d *Dataset) Lookup(id int) (Pokemon, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Pokemon{}, false
	}
	return d.records[i], true
}

// Info summarizes the snapshot.
func (d *Dataset) Info() SnapshotInfo {
	return SnapshotInfo{
		ID:       d.SnapshotID,
		Source:   d.Source,
		Rows:     len(d.records),
		LoadedAt: d.LoadedAt,
		Checksum: d.Checksum,
	}
}
