// Package importer loads supplier price lists into the cost collection. Lists arrive as
// CSV or as PDFs whose text lines carry the same columns: product, value, unit and an
// optional cost type.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	applog "pizzacost/internal/log"
	"pizzacost/models"
)

var (
	cleanWhitespace = regexp.MustCompile(`\s+`)
	currencyPattern = regexp.MustCompile(`[^\d.,\-]`)
)

// ErrEmpty is returned when a list holds no importable rows.
var ErrEmpty = errors.New("price list is empty")

// Row is one product line of a price list.
type Row struct {
	Product string
	Value   float64
	Unit    string
	Type    string
}

// Result counts what an import changed.
type Result struct {
	Created      int
	Updated      int
	UnitsCreated int
	TypesCreated int
}

// ParseFile reads a CSV or PDF price list, chosen by file extension.
func ParseFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ParsePDF(data)
	}
	return ParseCSV(bytes.NewReader(data))
}

// ParseCSV reads comma separated rows. A first row whose value column is not numeric is
// treated as a header.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for idx, record := range records {
		row, ok, err := parseFields(record)
		if err != nil {
			if idx == 0 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", idx+1, err)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// ParsePDF extracts the text of every page and parses it with ParseText.
func ParsePDF(data []byte) ([]Row, error) {
	text, err := extractTextFromPDF(data)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return ParseText(text)
}

// ParseText parses one product per line; fields are separated by ';', tabs or ','.
// Lines that do not parse are skipped.
func ParseText(text string) ([]Row, error) {
	var rows []Row
	for _, line := range strings.Split(text, "\n") {
		row, ok, err := ParseLine(line)
		if err != nil || !ok {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// ParseLine parses a single text line. ok is false for blank lines.
func ParseLine(line string) (Row, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Row{}, false, nil
	}
	var fields []string
	switch {
	case strings.Contains(line, ";"):
		fields = strings.Split(line, ";")
	case strings.Contains(line, "\t"):
		fields = strings.Split(line, "\t")
	default:
		fields = strings.Split(line, ",")
	}
	return parseFields(fields)
}

func parseFields(fields []string) (Row, bool, error) {
	if len(fields) == 0 || (len(fields) == 1 && strings.TrimSpace(fields[0]) == "") {
		return Row{}, false, nil
	}
	if len(fields) < 3 {
		return Row{}, false, fmt.Errorf("expected product, value and unit, got %d fields", len(fields))
	}

	product := normalizeText(fields[0])
	if product == "" {
		return Row{}, false, errors.New("product must not be empty")
	}
	value, err := ParseValue(fields[1])
	if err != nil {
		return Row{}, false, err
	}
	unit := normalizeText(fields[2])
	if unit == "" {
		return Row{}, false, errors.New("unit must not be empty")
	}

	row := Row{Product: product, Value: value, Unit: unit}
	if len(fields) > 3 {
		row.Type = normalizeText(fields[3])
	}
	return row, true, nil
}

// ParseValue reads a price such as "1200", "$ 1.250,50" or "1250.5". With both separators
// present the last one is the decimal mark; a lone comma is a decimal mark.
func ParseValue(raw string) (float64, error) {
	clean := currencyPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	if clean == "" {
		return 0, fmt.Errorf("invalid value %q", raw)
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		clean = strings.Replace(clean, ",", ".", 1)
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	if value.LessThan(decimal.RequireFromString("0.01")) {
		return 0, fmt.Errorf("value %q must be at least 0.01", raw)
	}
	return value.InexactFloat64(), nil
}

func normalizeText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// Import upserts rows by case-insensitive product name, creating any unit (matched by
// abbreviation) or cost type (matched by name) that does not exist yet. Each row runs in
// its own transaction.
func Import(ctx context.Context, db *gorm.DB, rows []Row) (Result, error) {
	var result Result
	if db == nil {
		return result, gorm.ErrInvalidDB
	}

	for idx, row := range rows {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			unitID, created, err := ensureUnit(tx, row.Unit)
			if err != nil {
				return err
			}
			if created {
				result.UnitsCreated++
			}

			var typeID *string
			if row.Type != "" {
				id, created, err := ensureCostType(tx, row.Type)
				if err != nil {
					return err
				}
				if created {
					result.TypesCreated++
				}
				typeID = &id
			}

			var existing models.Cost
			err = tx.Where("lower(product) = ?", strings.ToLower(row.Product)).First(&existing).Error
			switch {
			case err == nil:
				updates := map[string]any{"value": row.Value, "unit_id": unitID}
				if typeID != nil {
					updates["type_id"] = *typeID
				}
				if err := tx.Model(&existing).Updates(updates).Error; err != nil {
					return fmt.Errorf("update cost %q: %w", row.Product, err)
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				cost := models.Cost{Product: row.Product, Value: row.Value, UnitID: unitID, TypeID: typeID}
				if err := tx.Create(&cost).Error; err != nil {
					return fmt.Errorf("create cost %q: %w", row.Product, err)
				}
				result.Created++
			default:
				return fmt.Errorf("find cost %q: %w", row.Product, err)
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("row %d (%s): %w", idx+1, row.Product, err)
		}
	}

	applog.Info(ctx, "price list imported",
		"created", result.Created,
		"updated", result.Updated,
		"units_created", result.UnitsCreated,
		"types_created", result.TypesCreated,
	)
	return result, nil
}

func ensureUnit(tx *gorm.DB, abbreviation string) (string, bool, error) {
	var unit models.Unit
	err := tx.Where("lower(abbreviation) = ?", strings.ToLower(abbreviation)).First(&unit).Error
	if err == nil {
		return unit.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, fmt.Errorf("find unit %q: %w", abbreviation, err)
	}
	unit = models.Unit{Name: abbreviation, Abbreviation: strings.ToLower(abbreviation)}
	if err := tx.Create(&unit).Error; err != nil {
		return "", false, fmt.Errorf("create unit %q: %w", abbreviation, err)
	}
	return unit.ID, true, nil
}

func ensureCostType(tx *gorm.DB, name string) (string, bool, error) {
	var costType models.CostType
	err := tx.Where("lower(name) = ?", strings.ToLower(name)).First(&costType).Error
	if err == nil {
		return costType.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, fmt.Errorf("find cost type %q: %w", name, err)
	}
	costType = models.CostType{Name: name}
	if err := tx.Create(&costType).Error; err != nil {
		return "", false, fmt.Errorf("create cost type %q: %w", name, err)
	}
	return costType.ID, true, nil
}
