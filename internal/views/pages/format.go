package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatMoney renders an amount with two decimals and a currency sign.
func FormatMoney(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatQuantity renders a quantity using one decimal place and a trailing unit.
func FormatQuantity(value float64, unit string) string {
	if strings.EqualFold(unit, "un") {
		return fmt.Sprintf("%.0f %s", value, unit)
	}
	return fmt.Sprintf("%.1f %s", value, unit)
}

// FormatPercentage renders a percentage with up to two decimals.
func FormatPercentage(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

// FormatInput renders a number for an input value attribute; zero renders empty.
func FormatInput(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatReportDate renders the supplied time using a production-friendly layout.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02/01/2006")
}
