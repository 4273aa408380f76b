package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	detail, err := deps.Repo.GetByIDWithSimilar(deps.Ctx, c.ID, core.NormalizeSimilarCount(c.K))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, detail)
	}

	p := detail.Pokemon
	fmt.Fprintf(deps.Stdout, "#%d %s (%s)\n", p.ID, p.Name, typeList(p))
	fmt.Fprintf(deps.Stdout, "Generation %d, legendary: %s\n", p.Generation, yesNo(p.Legendary))
	if len(p.Abilities) > 0 {
		fmt.Fprintf(deps.Stdout, "Abilities: %v\n", p.Abilities)
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for i, v := range p.Stats.Vector() {
		fmt.Fprintf(tw, "  %s\t%d\n", core.StatKeys[i], v)
	}
	fmt.Fprintf(tw, "  bst\t%d\n", p.BST)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(detail.Similar) == 0 {
		return nil
	}

	fmt.Fprintln(deps.Stdout, "\nSimilar:")
	tw = tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range detail.Similar {
		dist := strconv.FormatFloat(core.Distance(p.Stats, s.Stats), 'f', 1, 64)
		fmt.Fprintf(tw, "  #%d\t%s\t%s\tdistance %s\n", s.ID, s.Name, typeList(s), dist)
	}
	return tw.Flush()
}
