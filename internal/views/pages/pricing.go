package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"pizzacost/internal/pricing"
	"pizzacost/internal/views/components"
)

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PricingPageData holds everything the pricing page renders.
type PricingPageData struct {
	Doughs     []Option
	Recipes    []Option
	Quantity   float64
	BallWeight float64
	Quote      pricing.Quote
	Overrides  pricing.Overrides
	// Return is the query string of the current selection, echoed by the margin forms.
	Return string
}

// PricingPage renders the selection form, the priced ingredients and the totals.
func PricingPage(data PricingPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := components.NewPrinter(w)
		p.Printf(`<h1>Calculadora de precios</h1>`)
		p.Printf(`<form method="get" action="/prices" class="selection">`)
		selectControl(p, "dough_id", "Masa", data.Doughs)
		selectControl(p, "recipe_id", "Receta", data.Recipes)
		p.Printf(`<label>Cantidad <input type="number" name="quantity" min="1" step="1" value="%s"></label>`,
			FormatInput(data.Quantity))
		p.Printf(`<label>Peso del bollo (g) <input type="number" name="ball_weight" min="1" step="1" value="%s"></label>`,
			FormatInput(data.BallWeight))
		p.Printf(`<button type="submit">Calcular</button></form>`)

		p.Render(ctx, components.Warnings(data.Quote.Warnings))

		q := data.Quote
		p.Printf(`<section class="stats">`)
		p.Render(ctx, components.StatCard("Costo base", FormatMoney(q.BaseCost), "masa + receta por unidad"))
		p.Render(ctx, components.StatCard("Costo con margen", FormatMoney(q.TotalCostPerUnit), "margen "+FormatPercentage(q.TotalMarginPercentage)))
		p.Render(ctx, components.StatCard("Precio por unidad", FormatMoney(q.PricePerUnit), "redondeo "+FormatMoney(q.CommercialRounding)))
		p.Render(ctx, components.StatCard("Precio total", FormatMoney(q.TotalPrice), "costo "+FormatMoney(q.TotalCost)))
		p.Printf(`</section>`)

		ingredientSection(p, "Masa", q.DoughIngredients, data.Return)
		ingredientSection(p, "Receta", q.RecipeIngredients, data.Return)

		if len(data.Overrides) > 0 {
			p.Printf(`<form method="post" action="/prices/margins/reset"><input type="hidden" name="return" value="%s">`,
				components.Esc(data.Return))
			p.Printf(`<button type="submit">Restablecer márgenes</button></form>`)
		}

		p.Printf(`<h2>Distribución del margen</h2>`)
		p.Render(ctx, components.Table(
			[]string{"Recupero", "Reinversión", "Ganancia", "Margen total"},
			[][]string{{
				FormatMoney(q.Breakdown.Recovery),
				FormatMoney(q.Breakdown.Reinvestment),
				FormatMoney(q.Breakdown.Profit),
				FormatMoney(q.TotalMargin),
			}},
		))

		if q.Delivery != nil {
			rows := make([][]string, 0, len(q.Delivery.Items))
			for _, item := range q.Delivery.Items {
				rows = append(rows, []string{item.Name, FormatQuantity(item.Quantity, "un"), FormatMoney(item.TotalCost)})
			}
			p.Printf(`<h2>Delivery</h2>`)
			p.Render(ctx, components.Table([]string{"Insumo", "Cantidad", "Costo"}, rows))
			p.Render(ctx, components.StatCard("Delivery por unidad", FormatMoney(q.Delivery.PerUnit), "total "+FormatMoney(q.Delivery.Total)))
		}

		if q.HasSelection() {
			p.Printf(`<p><a href="/api/prices/export?%s" download>Descargar Excel</a></p>`, components.Esc(data.Return))
		}
		return p.Err()
	})
}

func selectControl(p *components.Printer, name, label string, options []Option) {
	p.Printf(`<label>%s <select name="%s"><option value="">-</option>`, components.Esc(label), name)
	for _, option := range options {
		selected := ""
		if option.Selected {
			selected = " selected"
		}
		p.Printf(`<option value="%s"%s>%s</option>`, components.Esc(option.Value), selected, components.Esc(option.Label))
	}
	p.Printf(`</select></label>`)
}

func ingredientSection(p *components.Printer, title string, lines []pricing.IngredientCost, ret string) {
	if len(lines) == 0 {
		return
	}
	p.Printf(`<h2>%s</h2><table class="data-table"><thead><tr>`, components.Esc(title))
	for _, header := range []string{"Ingrediente", "Cantidad", "Costo", "Margen"} {
		p.Printf(`<th>%s</th>`, components.Esc(header))
	}
	p.Printf(`</tr></thead><tbody>`)
	for _, line := range lines {
		p.Printf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>`,
			components.Esc(line.Name), FormatQuantity(line.Quantity, "g"), FormatMoney(line.TotalCost))
		p.Printf(`<form method="post" action="/prices/margins" class="margin-form">`)
		p.Printf(`<input type="hidden" name="cost_id" value="%s"><input type="hidden" name="return" value="%s">`,
			components.Esc(line.CostID), components.Esc(ret))
		p.Printf(`<input type="number" name="margin" min="0" step="any" value="%s" aria-label="Margen %s">`,
			FormatInput(line.Margin), components.Esc(line.Name))
		p.Printf(`<button type="submit">%%</button></form></td></tr>`)
	}
	p.Printf(`</tbody></table>`)
}
