package shared

import (
	"testing"
)

func TestNormalizeSongKey(t *testing.T) {
	t.Run("Lowercases Both Parts", func(t *testing.T) {
		key := NormalizeSongKey("Yesterday", "The Beatles")
		if key != "yesterday|the beatles" {
			t.Errorf("expected 'yesterday|the beatles', got %q", key)
		}
	})

	t.Run("Case Variants Collide", func(t *testing.T) {
		a := NormalizeSongKey("YESTERDAY", "the beatles")
		b := NormalizeSongKey("yesterday", "The Beatles")
		if a != b {
			t.Errorf("expected identical keys, got %q and %q", a, b)
		}
	})

	t.Run("Collapses Whitespace", func(t *testing.T) {
		key := NormalizeSongKey("  Little   Wing ", " Jimi  Hendrix ")
		if key != "little wing|jimi hendrix" {
			t.Errorf("expected 'little wing|jimi hendrix', got %q", key)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		ms   int
		want string
	}{
		{"Zero", 0, "-"},
		{"Negative", -100, "-"},
		{"Under A Minute", 45000, "0:45"},
		{"Pads Seconds", 125000, "2:05"},
		{"Rounds Down Partial Seconds", 125999, "2:05"},
		{"Long Track", 754000, "12:34"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.ms); got != tc.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tc.ms, got, tc.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
}
