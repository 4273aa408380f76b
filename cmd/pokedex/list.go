package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	params := core.ListParams{
		Query:    c.Query,
		Sort:     c.Sort,
		Page:     c.Page,
		PageSize: c.PageSize,
	}
	if strings.TrimSpace(c.Legendary) != "" {
		params.Legendary = core.ParseBoolLike(c.Legendary)
		if params.Legendary == nil {
			err := core.NewInvalidInput("legendary", c.Legendary, "must be true or false")
			fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
			return err
		}
	}

	result, err := deps.Repo.List(deps.Ctx, params)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", core.FormatUserError(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, result)
	}

	if result.Total == 0 {
		fmt.Fprintln(deps.Stdout, "No Pokémon match.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTYPES\tBST\tGEN\tLEGENDARY")
	for _, p := range result.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, typeList(p), p.BST, p.Generation, yesNo(p.Legendary))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pages := 1
	if result.PageSize > 0 {
		pages = (result.Total + result.PageSize - 1) / result.PageSize
	}
	fmt.Fprintf(deps.Stdout, "\npage %d of %d, %d total\n", result.Page, pages, result.Total)
	return nil
}

func typeList(p core.Pokemon) string {
	types := p.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
