package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Theme contains the styling primitives of the page shell.
type Theme struct {
	Key        string
	BodyClass  string
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
}

const (
	// DefaultKey defines the fallback theme when the session holds no preference.
	DefaultKey = "horno"
)

var catalogue = map[string]Theme{
	"horno": {
		Key:        "horno",
		BodyClass:  "theme-horno",
		Background: "#1c1917",
		Surface:    "#292524",
		Text:       "#f5f5f4",
		Muted:      "#a8a29e",
		Accent:     "#f97316",
	},
	"harina": {
		Key:        "harina",
		BodyClass:  "theme-harina",
		Background: "#fafaf9",
		Surface:    "#ffffff",
		Text:       "#1c1917",
		Muted:      "#57534e",
		Accent:     "#b91c1c",
	},
}

var options = []Option{
	{Value: "horno", Label: "Horno (oscuro)"},
	{Value: "harina", Label: "Harina (claro)"},
}

// Resolve returns the registered theme for key, or the default theme.
func Resolve(key string) Theme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Known reports whether key names a registered theme.
func Known(key string) bool {
	_, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
