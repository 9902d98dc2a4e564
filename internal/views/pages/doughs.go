package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
)

// DoughSummary is one dough of the list page.
type DoughSummary struct {
	ID          string
	Name        string
	BallWeight  float64
	Percentages []PercentageRow
}

// PercentageRow is a named baker's percentage.
type PercentageRow struct {
	Name       string
	Percentage float64
}

// DoughsPage lists doughs with their baker's percentages and links to their batch sheets.
func DoughsPage(doughs []DoughSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := components.NewPrinter(w)
		p.Printf(`<h1>Masas</h1>`)
		if len(doughs) == 0 {
			p.Printf(`<p class="empty">No hay masas cargadas.</p>`)
			return p.Err()
		}
		for _, summary := range doughs {
			p.Printf(`<section class="dough" id="dough-%s"><h2>%s</h2>`, components.Esc(summary.ID), components.Esc(summary.Name))
			if len(summary.Percentages) == 0 {
				p.Render(ctx, components.Warnings([]string{"Sin harina: no se pueden calcular los porcentajes."}))
			} else {
				rows := make([][]string, 0, len(summary.Percentages))
				for _, row := range summary.Percentages {
					rows = append(rows, []string{row.Name, FormatPercentage(row.Percentage)})
				}
				p.Render(ctx, components.Table([]string{"Ingrediente", "% panadero"}, rows))
			}
			p.Printf(`<p><a href="/doughs/%s/batch-sheet?unit_weight=%s&amp;count=1">Hoja de producción</a></p></section>`,
				components.Esc(summary.ID), FormatInput(summary.BallWeight))
		}
		return p.Err()
	})
}
