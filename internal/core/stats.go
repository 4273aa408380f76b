package core

import (
	"math"
	"sort"
)

// AverageOptions narrows the records that stat aggregates run over.
type AverageOptions struct {
	ExcludeLegendaries bool
}

// StatAverage is the mean of one base stat.
type StatAverage struct {
	Key     StatKey `json:"key"`
	Average float64 `json:"average"`
}

// AverageStats is the per-stat mean over a set of records.
type AverageStats struct {
	Count int           `json:"count"`
	Stats []StatAverage `json:"stats"`
}

// TypeAverageStats is AverageStats for the records of one type.
type TypeAverageStats struct {
	Type Type `json:"type"`
	AverageStats
}

// BaseStatsEntry is one record's stats as used by chart views.
type BaseStatsEntry struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Legendary     bool   `json:"isLegendary"`
	PrimaryType   Type   `json:"primaryType"`
	SecondaryType *Type  `json:"secondaryType"`
	Stats         Stats  `json:"stats"`
}

func selectRecords(records []Pokemon, opts AverageOptions) []Pokemon {
	if !opts.ExcludeLegendaries {
		return records
	}
	notLegendary := false
	return Filter(records, "", &notLegendary)
}

// Average computes the mean of each stat over records, rounded to one decimal.
// An empty set averages to zero.
func Average(records []Pokemon) AverageStats {
	var sums [6]int
	for i := range records {
		for j, v := range records[i].Stats.Vector() {
			sums[j] += v
		}
	}

	out := AverageStats{Count: len(records), Stats: make([]StatAverage, len(StatKeys))}
	for j, key := range StatKeys {
		avg := 0.0
		if len(records) > 0 {
			avg = roundTo(float64(sums[j])/float64(len(records)), 1)
		}
		out.Stats[j] = StatAverage{Key: key, Average: avg}
	}
	return out
}

// AverageStatsOf averages the records of ds selected by opts.
func AverageStatsOf(ds *Dataset, opts AverageOptions) AverageStats {
	return Average(selectRecords(ds.Records(), opts))
}

// AverageStatsByType groups records by each of their types and averages each
// group. A dual-type record counts toward both groups. Groups are ordered by type name.
func AverageStatsByType(ds *Dataset, opts AverageOptions) []TypeAverageStats {
	groups := make(map[Type][]Pokemon)
	for _, p := range selectRecords(ds.Records(), opts) {
		for _, t := range p.Types() {
			groups[t] = append(groups[t], p)
		}
	}

	out := make([]TypeAverageStats, 0, len(groups))
	for t, recs := range groups {
		out = append(out, TypeAverageStats{Type: t, AverageStats: Average(recs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// BaseStatsOf lists the stats of every record selected by opts, in dataset order.
func BaseStatsOf(ds *Dataset, opts AverageOptions) []BaseStatsEntry {
	recs := selectRecords(ds.Records(), opts)
	out := make([]BaseStatsEntry, len(recs))
	for i, p := range recs {
		out[i] = BaseStatsEntry{
			ID:            p.ID,
			Name:          p.Name,
			Legendary:     p.Legendary,
			PrimaryType:   p.PrimaryType,
			SecondaryType: p.SecondaryType,
			Stats:         p.Stats,
		}
	}
	return out
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
