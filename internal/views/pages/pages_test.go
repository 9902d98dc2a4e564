package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"pizzacost/internal/dough"
	"pizzacost/internal/pricing"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestPricingPageRendersQuote(t *testing.T) {
	t.Parallel()

	data := PricingPageData{
		Doughs:   []Option{{Value: "d1", Label: "Napolitana", Selected: true}},
		Recipes:  []Option{{Value: "r1", Label: "Muzzarella", Selected: true}, {Value: "r2", Label: "Fugazza"}},
		Quantity: 2,
		Quote: pricing.Quote{
			DoughID:  "d1",
			RecipeID: "r1",
			RecipeIngredients: []pricing.IngredientCost{
				{CostID: "cheese", Name: "Muzzarella", Quantity: 400, TotalCost: 2800, Margin: 130},
			},
			PricePerUnit: 2100,
			Delivery:     &pricing.DeliveryCost{Items: []pricing.DeliveryLine{{Name: "Caja", Quantity: 2, TotalCost: 700}}, PerUnit: 350, Total: 700},
		},
		Overrides: pricing.Overrides{"cheese": 130},
		Return:    "dough_id=d1&recipe_id=r1&quantity=2",
	}

	out := render(t, PricingPage(data))
	for _, token := range []string{
		`<option value="d1" selected>Napolitana</option>`,
		`<option value="r2">Fugazza</option>`,
		`name="quantity" min="1" step="1" value="2"`,
		`$2100.00`,
		`name="cost_id" value="cheese"`,
		`name="margin" min="0" step="any" value="130"`,
		`action="/prices/margins/reset"`,
		`dough_id=d1&amp;recipe_id=r1&amp;quantity=2`,
		`Caja`,
		`/api/prices/export?`,
	} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestPricingPageIdleState(t *testing.T) {
	t.Parallel()

	out := render(t, PricingPage(PricingPageData{}))
	if strings.Contains(out, "/api/prices/export") {
		t.Fatalf("expected no export link without a selection: %s", out)
	}
	if strings.Contains(out, "margins/reset") {
		t.Fatalf("expected no reset form without overrides: %s", out)
	}
	if !strings.Contains(out, "$0.00") {
		t.Fatalf("expected zeroed totals: %s", out)
	}
}

func TestBatchSheetRendersIngredients(t *testing.T) {
	t.Parallel()

	data := BatchSheetData{
		DoughID:     "d1",
		DoughName:   "Napolitana",
		UnitWeight:  250,
		UnitCount:   4,
		TotalWeight: 1000,
		Ingredients: []dough.CalculatedIngredient{
			{CostID: "flour", Name: "Harina", Quantity: 606.1, BakerPercentage: 100},
			{CostID: "water", Name: "Agua", Quantity: 393.9, BakerPercentage: 65},
		},
	}

	out := render(t, BatchSheet(data))
	for _, token := range []string{"Napolitana", "606.1 g", "65%", "1000.0 g", "/doughs/d1/batch.xlsx?unit_weight=250&amp;count=4"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestBatchSheetWarnsWhenIncomputable(t *testing.T) {
	t.Parallel()

	out := render(t, BatchSheet(BatchSheetData{DoughID: "d1", DoughName: "Sin harina", UnitWeight: 250, UnitCount: 1}))
	if !strings.Contains(out, `class="warnings"`) {
		t.Fatalf("expected a warning: %s", out)
	}
	if strings.Contains(out, "batch.xlsx") {
		t.Fatalf("expected no export link: %s", out)
	}
}

func TestDoughsPage(t *testing.T) {
	t.Parallel()

	out := render(t, DoughsPage([]DoughSummary{
		{ID: "d1", Name: "Napolitana", BallWeight: 250, Percentages: []PercentageRow{{Name: "Harina", Percentage: 100}}},
		{ID: "d2", Name: "Rota"},
	}))
	if !strings.Contains(out, "/doughs/d1/batch-sheet?unit_weight=250&amp;count=1") {
		t.Fatalf("expected batch sheet link: %s", out)
	}
	if !strings.Contains(out, "Sin harina") {
		t.Fatalf("expected a warning for the incomputable dough: %s", out)
	}

	if empty := render(t, DoughsPage(nil)); !strings.Contains(empty, "No hay masas") {
		t.Fatalf("expected empty state: %s", empty)
	}
}
