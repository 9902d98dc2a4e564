package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"pizzacost/internal/dough"
	"pizzacost/internal/views/components"
)

// BatchSheetData aggregates the metadata required to render a dough production sheet.
type BatchSheetData struct {
	DoughID     string
	DoughName   string
	UnitWeight  float64
	UnitCount   float64
	TotalWeight float64
	RunDate     time.Time
	Ingredients []dough.CalculatedIngredient
}

// BatchSheet renders the scaled dough batch for the kitchen.
func BatchSheet(data BatchSheetData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := components.NewPrinter(w)
		p.Printf(`<article class="batch-sheet"><h1>%s</h1>`, components.Esc(DefaultDash(data.DoughName)))
		if date := FormatReportDate(data.RunDate); date != "" {
			p.Printf(`<p class="run-date">%s</p>`, date)
		}

		p.Printf(`<form method="get" action="/doughs/%s/batch-sheet" class="selection">`, components.Esc(data.DoughID))
		p.Printf(`<label>Bollos <input type="number" name="count" min="1" step="1" value="%s"></label>`, FormatInput(data.UnitCount))
		p.Printf(`<label>Peso por bollo (g) <input type="number" name="unit_weight" min="1" step="1" value="%s"></label>`, FormatInput(data.UnitWeight))
		p.Printf(`<button type="submit">Escalar</button></form>`)

		if len(data.Ingredients) == 0 {
			p.Render(ctx, components.Warnings([]string{"La masa no tiene una harina con cantidad positiva; no se puede escalar."}))
			p.Printf(`</article>`)
			return p.Err()
		}

		p.Printf(`<section class="stats">`)
		p.Render(ctx, components.StatCard("Bollos", fmt.Sprintf("%.0f", data.UnitCount), FormatQuantity(data.UnitWeight, "g")+" c/u"))
		p.Render(ctx, components.StatCard("Peso total", FormatQuantity(data.TotalWeight, "g"), ""))
		p.Printf(`</section>`)

		rows := make([][]string, 0, len(data.Ingredients))
		for _, ingredient := range data.Ingredients {
			rows = append(rows, []string{
				ingredient.Name,
				FormatQuantity(ingredient.Quantity, "g"),
				FormatPercentage(ingredient.BakerPercentage),
			})
		}
		p.Render(ctx, components.Table([]string{"Ingrediente", "Cantidad", "% panadero"}, rows))
		p.Printf(`<p><a href="/doughs/%s/batch.xlsx?unit_weight=%s&amp;count=%s" download>Descargar Excel</a></p>`,
			components.Esc(data.DoughID), FormatInput(data.UnitWeight), FormatInput(data.UnitCount))
		p.Printf(`</article>`)
		return p.Err()
	})
}
