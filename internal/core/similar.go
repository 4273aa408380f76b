package core

import (
	"cmp"
	"math"
	"slices"
)

// Similarity defaults.
const (
	DefaultSimilarCount = 5
	MaxSimilarCount     = 50
)

// Distance is the Euclidean distance between two records over
// (hp, attack, defense, spAtk, spDef, speed).
func Distance(a, b Stats) float64 {
	va, vb := a.Vector(), b.Vector()
	var sum float64
	for i := range va {
		d := float64(va[i] - vb[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// NormalizeSimilarCount floors v and clamps it to [0, MaxSimilarCount].
// Non-finite input falls back to DefaultSimilarCount.
func NormalizeSimilarCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultSimilarCount
	}
	return int(min(max(math.Floor(v), 0), MaxSimilarCount))
}

func clampSimilarCount(k int) int {
	return min(max(k, 0), MaxSimilarCount)
}

// Similar returns up to k records nearest to the record with id, closest first.
// The subject itself is never included. Equal distances keep dataset order.
func Similar(ds *Dataset, id, k int) ([]Pokemon, error) {
	subject, err := GetByID(ds, id)
	if err != nil {
		return nil, err
	}
	return nearest(ds, subject, clampSimilarCount(k)), nil
}

type neighbor struct {
	pos  int
	dist float64
}

func nearest(ds *Dataset, subject Pokemon, k int) []Pokemon {
	if k == 0 {
		return []Pokemon{}
	}

	records := ds.Records()
	candidates := make([]neighbor, 0, len(records))
	for i := range records {
		if records[i].ID == subject.ID {
			continue
		}
		candidates = append(candidates, neighbor{pos: i, dist: Distance(subject.Stats, records[i].Stats)})
	}

	slices.SortStableFunc(candidates, func(a, b neighbor) int {
		return cmp.Compare(a.dist, b.dist)
	})

	n := min(k, len(candidates))
	out := make([]Pokemon, n)
	for i := range n {
		out[i] = records[candidates[i].pos]
	}
	return out
}
