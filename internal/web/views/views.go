// Package views renders the HTML pages served next to the JSON API.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/pokedex/internal/core"
)

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Snapshot core.SnapshotInfo
	Average  core.AverageStats
	ByType   []core.TypeAverageStats
	Top      []core.Pokemon
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}` +
	`table{border-collapse:collapse;margin-bottom:2rem}` +
	`th,td{border:1px solid #d1d5db;padding:.3rem .6rem;text-align:right}` +
	`th:first-child,td:first-child{text-align:left}` +
	`.alert{border:1px solid #f87171;background:#fef2f2;padding:1rem}` +
	`.meta{color:#6b7280}`

// layout wraps body in the shared page shell.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
			templ.EscapeString(title), pageStyle); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// Dashboard renders the snapshot summary with stat averages.
func Dashboard(d DashboardData) templ.Component {
	return layout("Pokédex", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h1>Pokédex</h1>")
		fmt.Fprintf(&b, `<p class="meta">%d records from %s, snapshot %s loaded %s</p>`,
			d.Snapshot.Rows,
			templ.EscapeString(d.Snapshot.Source),
			templ.EscapeString(d.Snapshot.ID.String()),
			templ.EscapeString(d.Snapshot.LoadedAt.Format("2006-01-02 15:04:05 MST")))

		b.WriteString("<h2>Average base stats</h2>")
		writeStatHeader(&b, "Set")
		writeStatRow(&b, fmt.Sprintf("All (%d)", d.Average.Count), d.Average)
		b.WriteString("</tbody></table>")

		if len(d.ByType) > 0 {
			b.WriteString("<h2>By type</h2>")
			writeStatHeader(&b, "Type")
			for _, t := range d.ByType {
				writeStatRow(&b, fmt.Sprintf("%s (%d)", t.Type, t.Count), t.AverageStats)
			}
			b.WriteString("</tbody></table>")
		}

		if len(d.Top) > 0 {
			b.WriteString("<h2>Highest base stat total</h2><table><thead><tr><th>Name</th><th>#</th><th>Types</th><th>BST</th></tr></thead><tbody>")
			for _, p := range d.Top {
				fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%d</td></tr>",
					templ.EscapeString(p.Name), p.ID, templ.EscapeString(typeList(p)), p.BST)
			}
			b.WriteString("</tbody></table>")
		}

		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// ErrorPage renders a coded error for browser clients.
func ErrorPage(msg core.UserMessage) templ.Component {
	return layout("Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert" role="alert"><strong>%s</strong><p>%s</p><p class="meta">Code: %s</p></div>`,
			templ.EscapeString(msg.Message),
			templ.EscapeString(msg.Action),
			templ.EscapeString(msg.Code))
		return err
	}))
}

func writeStatHeader(b *strings.Builder, first string) {
	fmt.Fprintf(b, "<table><thead><tr><th>%s</th>", first)
	for _, k := range core.StatKeys {
		fmt.Fprintf(b, "<th>%s</th>", k)
	}
	b.WriteString("</tr></thead><tbody>")
}

func writeStatRow(b *strings.Builder, label string, avg core.AverageStats) {
	fmt.Fprintf(b, "<tr><td>%s</td>", templ.EscapeString(label))
	for _, s := range avg.Stats {
		fmt.Fprintf(b, "<td>%s</td>", strconv.FormatFloat(s.Average, 'f', 1, 64))
	}
	b.WriteString("</tr>")
}

func typeList(p core.Pokemon) string {
	types := p.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, " / ")
}
