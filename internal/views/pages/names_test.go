package pages

import "testing"

func TestNextCopiedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		base     string
		want     string
	}{
		{"first copy", []string{"Napolitana"}, "Napolitana", "Napolitana (Copy)"},
		{"second copy", []string{"Napolitana", "napolitana (copy)"}, "Napolitana", "Napolitana (Copy 2)"},
		{"skips taken numbers", []string{"Napolitana (Copy)", "Napolitana (Copy 2)"}, " Napolitana ", "Napolitana (Copy 3)"},
		{"blank base", []string{"Masa sin nombre"}, "  ", "Masa sin nombre 2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextCopiedName(tt.existing, tt.base); got != tt.want {
				t.Fatalf("NextCopiedName(%v, %q) = %q, want %q", tt.existing, tt.base, got, tt.want)
			}
		})
	}
}

func TestNextUntitledName(t *testing.T) {
	t.Parallel()

	if got := NextUntitledName(nil); got != "Masa sin nombre" {
		t.Fatalf("NextUntitledName(nil) = %q", got)
	}
}
