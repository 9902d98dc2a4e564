package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NavLink is one entry of the top navigation.
type NavLink struct {
	Label   string
	Path    string
	Section string
}

// DefaultNav lists the HTML pages of the application.
func DefaultNav() []NavLink {
	return []NavLink{
		{Label: "Precios", Path: "/prices", Section: "prices"},
		{Label: "Masas", Path: "/doughs", Section: "doughs"},
	}
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Nav renders the navigation bar with the active section highlighted.
func Nav(active string, links []NavLink) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Printf(`<nav class="nav">`)
		for _, link := range links {
			p.Printf(`<a href="%s" data-state="%s" data-nav-section="%s">%s</a>`,
				Esc(link.Path), linkState(link.Section, active), Esc(link.Section), Esc(link.Label))
		}
		p.Printf(`</nav>`)
		return p.Err()
	})
}

// StatCard renders a labelled figure with an optional caption.
func StatCard(label, value, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Printf(`<div class="stat-card"><span class="stat-label">%s</span><strong class="stat-value">%s</strong>`,
			Esc(label), Esc(value))
		if caption != "" {
			p.Printf(`<small class="stat-caption">%s</small>`, Esc(caption))
		}
		p.Printf(`</div>`)
		return p.Err()
	})
}

// Table renders a plain data table. Cells are escaped.
func Table(headers []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Printf(`<table class="data-table"><thead><tr>`)
		for _, header := range headers {
			p.Printf(`<th>%s</th>`, Esc(header))
		}
		p.Printf(`</tr></thead><tbody>`)
		if len(rows) == 0 {
			p.Printf(`<tr><td colspan="%d" class="empty">Sin datos</td></tr>`, max(len(headers), 1))
		}
		for _, row := range rows {
			p.Printf(`<tr>`)
			for _, value := range row {
				p.Printf(`<td>%s</td>`, Esc(value))
			}
			p.Printf(`</tr>`)
		}
		p.Printf(`</tbody></table>`)
		return p.Err()
	})
}

// Warnings renders a notice listing messages. Nothing is written when there are none.
func Warnings(messages []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(messages) == 0 {
			return nil
		}
		p := NewPrinter(w)
		p.Printf(`<ul class="warnings" role="status">`)
		for _, message := range messages {
			p.Printf(`<li>%s</li>`, Esc(message))
		}
		p.Printf(`</ul>`)
		return p.Err()
	})
}
