package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLinkState(t *testing.T) {
	if got := linkState("prices", "prices"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("doughs", "prices"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestStatCardRendersValues(t *testing.T) {
	var buf bytes.Buffer
	err := StatCard("Precio por unidad", "$2100.00", "Redondeo $87.00").Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render stat card: %v", err)
	}
	output := buf.String()
	for _, token := range []string{"Precio por unidad", "$2100.00", "Redondeo $87.00"} {
		if !strings.Contains(output, token) {
			t.Fatalf("expected output to contain %q: %s", token, output)
		}
	}
}

func TestTableEscapesCells(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"<script>", "1"}}
	if err := Table([]string{"Ingrediente", "Cantidad"}, rows).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected cell content to be escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped cell in output: %s", out)
	}
}

func TestTableRendersEmptyState(t *testing.T) {
	var buf bytes.Buffer
	if err := Table([]string{"A", "B"}, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render table: %v", err)
	}
	if !strings.Contains(buf.String(), `colspan="2"`) {
		t.Fatalf("expected empty row spanning both columns: %s", buf.String())
	}
}

func TestNavRendersActiveSection(t *testing.T) {
	var buf bytes.Buffer
	if err := Nav("doughs", DefaultNav()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render nav: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `data-state="active" data-nav-section="doughs"`) {
		t.Fatalf("expected active doughs link: %s", out)
	}
	if !strings.Contains(out, `data-state="inactive" data-nav-section="prices"`) {
		t.Fatalf("expected inactive prices link: %s", out)
	}
}

func TestWarningsSkipsEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := Warnings(nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render warnings: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
