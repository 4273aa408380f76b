package core

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const fixturePath = "testdata/pokemon_fixture_30.csv"

const minimalHeader = "Number,Name,Type 1,Type 2,HP,Att,Def,Spa,Spd,Spe,Generation,Legendary,Against Fire\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingOpen wraps os.Open and counts calls.
func countingOpen(count *atomic.Int32) OpenFunc {
	return func(name string) (io.ReadCloser, error) {
		count.Add(1)
		return os.Open(name)
	}
}

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	f, err := os.Open(fixturePath)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	ds, err := ReadDataset(f, fixturePath, MapOptions{ValidateStats: true})
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return ds
}

func readString(t *testing.T, csv string) (*Dataset, error) {
	t.Helper()
	return ReadDataset(strings.NewReader(csv), "inline.csv", MapOptions{ValidateStats: true})
}

// ----------------------------------------------------------------------------
// ReadDataset Tests
// ----------------------------------------------------------------------------

func TestReadDataset_Fixture(t *testing.T) {
	ds := loadFixture(t)

	if ds.Len() != 30 {
		t.Fatalf("Len() = %d, want 30", ds.Len())
	}

	seen := make(map[int]bool)
	for _, p := range ds.Records() {
		if seen[p.ID] {
			t.Errorf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if p.BST != p.Stats.Total() {
			t.Errorf("%s: BST %d != stat total %d", p.Name, p.BST, p.Stats.Total())
		}
	}

	first := ds.Records()[0]
	if first.ID != 1 || first.Name != "Bulbasaur" {
		t.Errorf("first record = %d %q, want 1 Bulbasaur", first.ID, first.Name)
	}
	if first.SecondaryType == nil || *first.SecondaryType != TypePoison {
		t.Errorf("Bulbasaur secondary type = %v", first.SecondaryType)
	}
	if first.Against.Get(TypeGrass) != 0.25 || first.Against.Get(TypeFire) != 2 {
		t.Errorf("Bulbasaur against = %v", first.Against)
	}

	mew, ok := ds.Lookup(151)
	if !ok || !mew.Legendary {
		t.Error(`Mew should be legendary via "True"`)
	}
	ray, ok := ds.Lookup(384)
	if !ok || !ray.Legendary {
		t.Error(`Rayquaza should be legendary via "yes"`)
	}
	raichu, _ := ds.Lookup(26)
	if raichu.Legendary {
		t.Error("empty Legendary cell should default to false")
	}

	if ds.SnapshotID.String() == "" || ds.LoadedAt.IsZero() || ds.Source != fixturePath {
		t.Errorf("snapshot metadata not set: %+v", ds.Info())
	}
}

func TestReadDataset_BOMAndReorderedColumns(t *testing.T) {
	csv := "\xEF\xBB\xBFname,number,generation,spe,spd,spa,def,att,hp,type 1\n" +
		"Eevee,133,1,55,65,45,50,55,55,normal\n"

	ds, err := readString(t, csv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := ds.Lookup(133)
	if !ok {
		t.Fatal("Eevee not found")
	}
	if p.PrimaryType != TypeNormal || p.Stats.HP != 55 || p.Stats.Speed != 55 || p.BST != 325 {
		t.Errorf("unexpected record: %+v", p)
	}
}

func TestReadDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
		wantRow int
	}{
		{
			name:    "empty file",
			csv:     "",
			wantErr: ErrInvalidCSV,
		},
		{
			name:    "missing required column",
			csv:     "Number,Name\n1,Bulbasaur\n",
			wantErr: ErrMissingColumns,
		},
		{
			name:    "column count mismatch",
			csv:     minimalHeader + "1,Bulbasaur,Grass,Poison,45,49,49,65,65,45,1\n",
			wantErr: ErrInvalidCSV,
			wantRow: 1,
		},
		{
			name: "unknown type on second row",
			csv: minimalHeader +
				"1,Bulbasaur,Grass,Poison,45,49,49,65,65,45,1,0.0,2\n" +
				"2,Ivysaur,Leaf,Poison,60,62,63,80,80,60,1,0.0,2\n",
			wantErr: ErrUnknownType,
			wantRow: 2,
		},
		{
			name:    "illegal multiplier",
			csv:     minimalHeader + "1,Bulbasaur,Grass,Poison,45,49,49,65,65,45,1,0.0,3\n",
			wantErr: ErrIllegalMultiplier,
			wantRow: 1,
		},
		{
			name: "duplicate id",
			csv: minimalHeader +
				"1,Bulbasaur,Grass,Poison,45,49,49,65,65,45,1,0.0,2\n" +
				"1,Bulbasaur copy,Grass,Poison,45,49,49,65,65,45,1,0.0,2\n",
			wantErr: ErrDuplicateID,
			wantRow: 2,
		},
		{
			name:    "stat out of range",
			csv:     minimalHeader + "1,Bulbasaur,Grass,Poison,450,49,49,65,65,45,1,0.0,2\n",
			wantErr: ErrStatOutOfRange,
			wantRow: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := readString(t, tt.csv)
			if ds != nil {
				t.Error("no partial dataset should be returned")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var le *DataLoadError
			if !errors.As(err, &le) {
				t.Fatalf("error should be *DataLoadError, got %T", err)
			}
			if le.Source != "inline.csv" {
				t.Errorf("Source = %q, want inline.csv", le.Source)
			}
			if le.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", le.Row, tt.wantRow)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Loader Tests
// ----------------------------------------------------------------------------

func TestLoader_LoadIsCached(t *testing.T) {
	var opens atomic.Int32
	l := NewLoader(fixturePath, LoaderOptions{Open: countingOpen(&opens), Logger: quietLogger()})
	ctx := context.Background()

	first, err := l.Load(ctx, false)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := l.Load(ctx, false)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if opens.Load() != 1 {
		t.Errorf("file opened %d times, want 1", opens.Load())
	}
	if first != second {
		t.Error("second load should return the cached snapshot")
	}
}

func TestLoader_ForceReloads(t *testing.T) {
	var opens atomic.Int32
	l := NewLoader(fixturePath, LoaderOptions{Open: countingOpen(&opens), Logger: quietLogger()})
	ctx := context.Background()

	first, err := l.Load(ctx, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := l.Load(ctx, true)
	if err != nil {
		t.Fatalf("forced load: %v", err)
	}

	if opens.Load() != 2 {
		t.Errorf("file opened %d times, want 2", opens.Load())
	}
	if first.SnapshotID == second.SnapshotID {
		t.Error("forced load should build a new snapshot")
	}
	if l.Current() != second {
		t.Error("Current() should be the newest snapshot")
	}
}

func TestLoader_ConcurrentLoadsShareOneRead(t *testing.T) {
	var opens atomic.Int32
	release := make(chan struct{})

	open := func(name string) (io.ReadCloser, error) {
		opens.Add(1)
		<-release
		return os.Open(name)
	}
	l := NewLoader(fixturePath, LoaderOptions{Open: open, Logger: quietLogger()})

	const callers = 8
	results := make([]*Dataset, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := l.Load(context.Background(), false)
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			results[i] = ds
		}()
	}

	// Let every caller reach the in-flight load before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if opens.Load() != 1 {
		t.Errorf("file opened %d times, want 1", opens.Load())
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different snapshot", i)
		}
	}
}

func TestLoader_FailedReloadKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokemon.csv")
	good, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, good, 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path, LoaderOptions{Logger: quietLogger()})
	ctx := context.Background()

	before, err := l.Load(ctx, false)
	if err != nil {
		t.Fatalf("initial load: %v", err)
	}

	if err := os.WriteFile(path, []byte("Number,Name\n1,Bulbasaur\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(ctx, true); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("reload error = %v, want ErrMissingColumns", err)
	}

	if l.Current() != before {
		t.Error("failed reload should keep the previous snapshot")
	}
	cached, err := l.Load(ctx, false)
	if err != nil || cached != before {
		t.Errorf("cached load = %v, %v; want previous snapshot", cached, err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), LoaderOptions{Logger: quietLogger()})

	_, err := l.Load(context.Background(), false)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
	var le *DataLoadError
	if !errors.As(err, &le) || le.Row != 0 {
		t.Errorf("want *DataLoadError with Row 0, got %v", err)
	}
	if l.Current() != nil {
		t.Error("nothing should be cached after a failed first load")
	}
	if got := MapError(err).Code; got != "DATA007" {
		t.Errorf("MapError code = %q, want DATA007", got)
	}
}

func TestLoader_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	open := func(name string) (io.ReadCloser, error) {
		<-release
		return os.Open(name)
	}
	l := NewLoader(fixturePath, LoaderOptions{Open: open, Logger: quietLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := l.Load(ctx, false); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestLoader_Replace(t *testing.T) {
	ds := loadFixture(t)
	var opens atomic.Int32
	l := NewLoader("unused.csv", LoaderOptions{Open: countingOpen(&opens), Logger: quietLogger()})

	l.Replace(ds)
	got, err := l.Load(context.Background(), false)
	if err != nil || got != ds {
		t.Fatalf("Load after Replace = %v, %v", got, err)
	}
	if opens.Load() != 0 {
		t.Errorf("Replace should not touch the file, opened %d times", opens.Load())
	}
}

func TestReadDataset_Checksum(t *testing.T) {
	const body = minimalHeader + "25,Pikachu,Electric,,35,55,40,50,50,90,1,0,1\n"

	a, err := readString(t, body)
	if err != nil {
		t.Fatalf("ReadDataset() error = %v", err)
	}
	b, err := readString(t, body)
	if err != nil {
		t.Fatalf("ReadDataset() error = %v", err)
	}
	c, err := readString(t, body+"26,Raichu,Electric,,60,90,55,90,80,110,1,0,1\n")
	if err != nil {
		t.Fatalf("ReadDataset() error = %v", err)
	}

	if len(a.Checksum) != 16 {
		t.Errorf("Checksum = %q, want 16 hex digits", a.Checksum)
	}
	if a.Checksum != b.Checksum {
		t.Errorf("same content gave different checksums: %s vs %s", a.Checksum, b.Checksum)
	}
	if a.Checksum == c.Checksum {
		t.Error("different content gave the same checksum")
	}
	if a.SnapshotID == b.SnapshotID {
		t.Error("each read should get a fresh snapshot id")
	}
	if got := a.Info().Checksum; got != a.Checksum {
		t.Errorf("Info().Checksum = %q, want %q", got, a.Checksum)
	}
}
