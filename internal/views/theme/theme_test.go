package theme

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	if got := Resolve(" HARINA "); got.Key != "harina" {
		t.Fatalf("Resolve() = %q, want harina", got.Key)
	}
	if got := Resolve("unknown"); got.Key != DefaultKey {
		t.Fatalf("Resolve(unknown) = %q, want %q", got.Key, DefaultKey)
	}
}

func TestOptionsAreKnown(t *testing.T) {
	t.Parallel()

	for _, option := range Options() {
		if !Known(option.Value) {
			t.Fatalf("option %q is not registered", option.Value)
		}
	}
	if Known("nocturne") {
		t.Fatal("expected unregistered key to be unknown")
	}
}
