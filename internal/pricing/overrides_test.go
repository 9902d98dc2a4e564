package pricing

import "testing"

func TestOverridesEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	overrides := Overrides{}
	overrides.Set("cheese", 130)
	overrides.Set("flour", 42.5)

	raw, err := overrides.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := DecodeOverrides(raw)
	if err != nil {
		t.Fatalf("DecodeOverrides() error = %v", err)
	}
	if len(decoded) != 2 || decoded["cheese"] != 130 || decoded["flour"] != 42.5 {
		t.Fatalf("decoded = %v", decoded)
	}

	empty, err := Overrides{}.Encode()
	if err != nil || empty != "" {
		t.Fatalf("Encode() of empty overrides = %q, %v", empty, err)
	}
	if decoded, err := DecodeOverrides(" "); err != nil || len(decoded) != 0 {
		t.Fatalf("DecodeOverrides(blank) = %v, %v", decoded, err)
	}
	if _, err := DecodeOverrides("{oops"); err == nil {
		t.Fatal("expected an error for malformed overrides")
	}
}

func TestOverridesCloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := Overrides{"cheese": 130}
	clone := original.Clone()
	clone.Set("cheese", 200)
	clone.Reset()

	if original["cheese"] != 130 {
		t.Fatalf("original mutated: %v", original)
	}
}

func TestParseMargin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"130", 130, false},
		{" 42.5 ", 42.5, false},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMargin(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMargin(%q) error = %v, wantErr %t", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseMargin(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
