package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
	"pizzacost/internal/views/theme"
)

// Layout wraps page content in the HTML document shell.
func Layout(title, active string, th theme.Theme, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := components.NewPrinter(w)
		p.Printf(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		p.Printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.Printf(`<title>%s</title>`, components.Esc(title))
		p.Printf(`<style>%s</style></head>`, stylesheet(th))
		p.Printf(`<body class="%s"><header class="shell-header"><span class="brand">pizzacost</span>`, components.Esc(th.BodyClass))
		p.Render(ctx, components.Nav(active, components.DefaultNav()))
		p.Printf(`</header><main class="shell-main">`)
		p.Render(ctx, content)
		p.Printf(`</main></body></html>`)
		return p.Err()
	})
}

func stylesheet(th theme.Theme) string {
	return `body{margin:0;font-family:system-ui,sans-serif;background:` + th.Background + `;color:` + th.Text + `}` +
		`.shell-header{display:flex;gap:2rem;align-items:center;padding:1rem 2rem;background:` + th.Surface + `}` +
		`.brand{font-weight:700;color:` + th.Accent + `}` +
		`.nav a{margin-right:1rem;color:` + th.Muted + `;text-decoration:none}` +
		`.nav a[data-state=active]{color:` + th.Accent + `;font-weight:600}` +
		`.shell-main{padding:2rem;max-width:72rem;margin:0 auto}` +
		`.data-table{width:100%;border-collapse:collapse;margin:1rem 0}` +
		`.data-table th,.data-table td{padding:.4rem .6rem;border-bottom:1px solid ` + th.Muted + `;text-align:left}` +
		`.stats{display:grid;grid-template-columns:repeat(auto-fill,minmax(12rem,1fr));gap:1rem}` +
		`.stat-card{display:flex;flex-direction:column;padding:1rem;background:` + th.Surface + `;border-radius:.5rem}` +
		`.stat-label,.stat-caption{color:` + th.Muted + `}` +
		`.warnings{color:` + th.Accent + `}`
}
