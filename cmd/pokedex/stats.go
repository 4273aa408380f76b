package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	opts := core.AverageOptions{ExcludeLegendaries: c.ExcludeLegendaries}

	if c.ByType {
		groups, err := deps.Repo.AverageStatsByType(deps.Ctx, opts)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
			return err
		}
		if c.JSON {
			return writeJSON(deps.Stdout, groups)
		}

		tw := statTable(deps.Stdout, "TYPE")
		for _, g := range groups {
			statRow(tw, string(g.Type), g.AverageStats)
		}
		return tw.Flush()
	}

	avg, err := deps.Repo.AverageStats(deps.Ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
		return err
	}
	if c.JSON {
		return writeJSON(deps.Stdout, avg)
	}

	tw := statTable(deps.Stdout, "SET")
	statRow(tw, "all", avg)
	return tw.Flush()
}

func statTable(w io.Writer, first string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCOUNT", first)
	for _, k := range core.StatKeys {
		fmt.Fprintf(tw, "\t%s", k)
	}
	fmt.Fprintln(tw)
	return tw
}

func statRow(tw *tabwriter.Writer, label string, avg core.AverageStats) {
	fmt.Fprintf(tw, "%s\t%d", label, avg.Count)
	for _, s := range avg.Stats {
		fmt.Fprintf(tw, "\t%s", strconv.FormatFloat(s.Average, 'f', 1, 64))
	}
	fmt.Fprintln(tw)
}

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info, err := deps.Repo.Snapshot(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "source:   %s\nrows:     %d\nsnapshot: %s\nchecksum: %s\nloaded:   %s\n",
		info.Source, info.Rows, info.ID, info.Checksum, info.LoadedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}
