package models

import "testing"

func TestCostIsFlour(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		product string
		want    bool
	}{
		{"plain", "Harina 0000", true},
		{"lower case", "harina integral", true},
		{"embedded", "Premezcla de HARINA leudante", true},
		{"water", "Agua", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := (Cost{Product: tt.product}).IsFlour(); got != tt.want {
				t.Fatalf("IsFlour(%q) = %t, want %t", tt.product, got, tt.want)
			}
		})
	}
}

func TestEffectiveBallWeight(t *testing.T) {
	t.Parallel()

	weight := 280.0
	zero := 0.0
	cases := []struct {
		name     string
		dough    Dough
		fallback float64
		want     float64
	}{
		{"stored", Dough{BallWeight: &weight}, 300, 280},
		{"missing uses fallback", Dough{}, 300, 300},
		{"zero uses fallback", Dough{BallWeight: &zero}, 300, 300},
		{"no fallback uses default", Dough{}, 0, DefaultBallWeight},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.dough.EffectiveBallWeight(tt.fallback); got != tt.want {
				t.Fatalf("EffectiveBallWeight(%v) = %v, want %v", tt.fallback, got, tt.want)
			}
		})
	}
}

func TestMarginTotal(t *testing.T) {
	t.Parallel()

	margin := Margin{RecoveryPercentage: 50, ReinvestmentPercentage: 40, ProfitPercentage: 40}
	if got := margin.Total(); got != 130 {
		t.Fatalf("Total() = %v, want 130", got)
	}
}

func TestRecordBeforeCreateAssignsID(t *testing.T) {
	t.Parallel()

	var record Record
	if err := record.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate returned error: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected an id to be generated")
	}

	existing := Record{ID: "cost-flour"}
	if err := existing.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate returned error: %v", err)
	}
	if existing.ID != "cost-flour" {
		t.Fatalf("expected supplied id to be kept, got %q", existing.ID)
	}
}

func TestAllListsEveryModel(t *testing.T) {
	t.Parallel()

	if got := len(All()); got != 12 {
		t.Fatalf("All() returned %d models, want 12", got)
	}
}
