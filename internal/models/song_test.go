package models

import (
	"testing"
)

func TestParseProgress(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Progress
	}{
		{"Not Started", "Not Started", ProgressNotStarted},
		{"Learning", "Learning", ProgressLearning},
		{"Mastered", "Mastered", ProgressMastered},
		{"Unknown Coerces To Not Started", "Shredding", ProgressNotStarted},
		{"Empty Coerces To Not Started", "", ProgressNotStarted},
		{"Case Sensitive", "mastered", ProgressNotStarted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseProgress(tc.in); got != tc.want {
				t.Errorf("ParseProgress(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSongValidate(t *testing.T) {
	t.Run("Valid Song", func(t *testing.T) {
		song := NewSong("Yesterday", "The Beatles")
		if err := song.Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}
	})

	t.Run("Missing Title", func(t *testing.T) {
		song := NewSong("   ", "The Beatles")
		if err := song.Validate(); err == nil {
			t.Error("expected error for blank title")
		}
	})

	t.Run("Missing Artist", func(t *testing.T) {
		song := NewSong("Yesterday", "")
		if err := song.Validate(); err == nil {
			t.Error("expected error for missing artist")
		}
	})

	t.Run("Genre With Delimiter", func(t *testing.T) {
		song := NewSong("Yesterday", "The Beatles")
		song.Genres = []string{"rock, pop"}
		if err := song.Validate(); err == nil {
			t.Error("expected error for genre containing the delimiter")
		}
	})
}

func TestNewSong(t *testing.T) {
	song := NewSong("Yesterday", "The Beatles")

	if song.Progress != ProgressNotStarted {
		t.Errorf("expected new song to start as Not Started, got %q", song.Progress)
	}
	if song.Title != "Yesterday" {
		t.Errorf("expected title Yesterday, got %q", song.Title)
	}
}

func TestDisplayFields(t *testing.T) {
	song := NewSong("little wing", "jimi hendrix")

	if got := song.DisplayTitle(); got != "Little Wing" {
		t.Errorf("DisplayTitle() = %q, want Little Wing", got)
	}
	if got := song.DisplayArtist(); got != "Jimi Hendrix" {
		t.Errorf("DisplayArtist() = %q, want Jimi Hendrix", got)
	}
}

func TestGenres(t *testing.T) {
	t.Run("Join", func(t *testing.T) {
		if got := JoinGenres([]string{"rock", "blues"}); got != "rock, blues" {
			t.Errorf("JoinGenres = %q, want 'rock, blues'", got)
		}
	})

	t.Run("Split", func(t *testing.T) {
		genres := SplitGenres("rock, blues")
		if len(genres) != 2 || genres[0] != "rock" || genres[1] != "blues" {
			t.Errorf("SplitGenres = %v, want [rock blues]", genres)
		}
	})

	t.Run("Split Empty Yields Nil", func(t *testing.T) {
		if genres := SplitGenres(""); genres != nil {
			t.Errorf("SplitGenres(\"\") = %v, want nil", genres)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		in := []string{"rock", "folk", "acoustic"}
		out := SplitGenres(JoinGenres(in))
		if len(out) != len(in) {
			t.Fatalf("round trip produced %v", out)
		}
		for i := range in {
			if out[i] != in[i] {
				t.Errorf("round trip changed %q to %q", in[i], out[i])
			}
		}
	})
}

func TestFormatTuning(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Compact Note Sequence Verbatim", "DADGAD", "DADGAD"},
		{"Lowercase Compact Is Word Capitalized", "dadgad", "Dadgad"},
		{"Word Capitalization", "drop d", "Drop D"},
		{"Already Capitalized", "Standard", "Standard"},
		{"Short Uppercase Phrase Verbatim", "OPEN G", "OPEN G"},
		{"Longer Shouted Words", "OPEN G MAJOR", "Open G Major"},
		{"Six Digit String Not Verbatim", "123456", "123456"},
		{"Empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTuning(tc.in); got != tc.want {
				t.Errorf("FormatTuning(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
