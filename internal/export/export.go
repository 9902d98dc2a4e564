// Package export renders quotes and dough batches as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pizzacost/internal/dough"
	"pizzacost/internal/pricing"
	"pizzacost/internal/rounding"
)

// ContentType is the media type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetName = 31

// Sheet names used by the generated workbooks.
const (
	QuoteSheet = "Precio"
	BatchSheet = "Masa"
)

var quoteHeaders = []string{"Sección", "Ingrediente", "Cantidad (g)", "Costo unitario", "Costo total", "Margen %"}

type styles struct {
	title   int
	header  int
	cell    int
	label   int
	summary int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}); err != nil {
		return s, fmt.Errorf("create cell style: %w", err)
	}
	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, fmt.Errorf("create label style: %w", err)
	}
	if s.summary, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}); err != nil {
		return s, fmt.Errorf("create summary style: %w", err)
	}
	return s, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
	}
}

func sheetName(name, fallback string) string {
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	if name == "" {
		return fallback
	}
	return name
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRow(f *excelize.File, sheet string, row int, style int, values ...any) error {
	for i, value := range values {
		if err := f.SetCellValue(sheet, cell(i+1, row), value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell(i+1, row), err)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return f.SetCellStyle(sheet, cell(1, row), cell(len(values), row), style)
}

func open(name string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("set sheet name: %w", err)
	}
	return f, name, nil
}

func save(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type summaryLine struct {
	label string
	value float64
}

// Quote writes a priced quote: one row per ingredient followed by the totals.
func Quote(title string, q pricing.Quote) ([]byte, error) {
	f, sheet, err := open(QuoteSheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	widths := []float64{12, 36, 14, 16, 16, 12}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := writeRow(f, sheet, 1, st.title, sheetName(title, "Cotización")); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 2, st.summary, "Cantidad", q.Quantity, "Peso bollo (g)", q.BallWeight); err != nil {
		return nil, err
	}

	headers := make([]any, len(quoteHeaders))
	for i, header := range quoteHeaders {
		headers[i] = header
	}
	if err := writeRow(f, sheet, 4, st.header, headers...); err != nil {
		return nil, err
	}

	row := 5
	sections := []struct {
		name  string
		lines []pricing.IngredientCost
	}{
		{"Masa", q.DoughIngredients},
		{"Receta", q.RecipeIngredients},
	}
	for _, section := range sections {
		for _, line := range section.lines {
			if err := writeRow(f, sheet, row, st.cell,
				section.name, line.Name, line.Quantity, line.UnitCost, line.TotalCost, line.Margin); err != nil {
				return nil, err
			}
			row++
		}
	}

	row++
	summary := []summaryLine{
		{"Costo masa", q.DoughCost},
		{"Costo receta", q.RecipeCost},
		{"Costo base", q.BaseCost},
		{"Costo con margen", q.TotalCostPerUnit},
		{"Margen", q.MarginAmount},
		{"Margen %", q.TotalMarginPercentage},
		{"Recupero", q.Breakdown.Recovery},
		{"Reinversión", q.Breakdown.Reinvestment},
		{"Ganancia", q.Breakdown.Profit},
		{"Precio por unidad", q.PricePerUnit},
		{"Redondeo comercial", q.CommercialRounding},
		{"Costo total", q.TotalCost},
		{"Margen total", q.TotalMargin},
		{"Precio total", q.TotalPrice},
	}
	if q.Delivery != nil {
		summary = append(summary,
			summaryLine{"Delivery por unidad", q.Delivery.PerUnit},
			summaryLine{"Delivery total", q.Delivery.Total},
		)
	}
	for _, item := range summary {
		if err := f.SetCellValue(sheet, cell(5, row), item.label); err != nil {
			return nil, fmt.Errorf("set summary label: %w", err)
		}
		if err := f.SetCellValue(sheet, cell(6, row), item.value); err != nil {
			return nil, fmt.Errorf("set summary value: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell(5, row), cell(5, row), st.label); err != nil {
			return nil, fmt.Errorf("style summary label: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell(6, row), cell(6, row), st.summary); err != nil {
			return nil, fmt.Errorf("style summary value: %w", err)
		}
		row++
	}

	return save(f)
}

// Batch writes a scaled dough batch with its baker's percentages.
func Batch(title string, lines []dough.CalculatedIngredient) ([]byte, error) {
	f, sheet, err := open(BatchSheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return nil, fmt.Errorf("set col width A: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "C", 14); err != nil {
		return nil, fmt.Errorf("set col width B:C: %w", err)
	}

	if err := writeRow(f, sheet, 1, st.title, sheetName(title, "Masa")); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 3, st.header, "Ingrediente", "Cantidad (g)", "% panadero"); err != nil {
		return nil, err
	}

	row := 4
	total := 0.0
	for _, line := range lines {
		if err := writeRow(f, sheet, row, st.cell, line.Name, line.Quantity, line.BakerPercentage); err != nil {
			return nil, err
		}
		total += line.Quantity
		row++
	}
	if err := writeRow(f, sheet, row, st.summary, "Total", rounding.Round(total, 1)); err != nil {
		return nil, err
	}

	return save(f)
}
