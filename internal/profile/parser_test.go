package profile

import (
	"errors"
	"reflect"
	"testing"

	"booktrack/internal/shared"
)

func TestParse(t *testing.T) {
	t.Run("Well Formed Response", func(t *testing.T) {
		text := `Emotional Tones: [melancholic, hopeful, tense]
Genres: [classical, ambient]
Moods: [reflective, somber]
Time Period/Cultural Context: [Regency England]
Keywords: [love, class, pride]`

		p, err := Parse(text)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(p) != 5 {
			t.Errorf("expected 5 categories, got %d", len(p))
		}

		want := []string{"melancholic", "hopeful", "tense"}
		if !reflect.DeepEqual(p.Terms(CategoryEmotionalTones), want) {
			t.Errorf("expected %v, got %v", want, p.Terms(CategoryEmotionalTones))
		}

		if !reflect.DeepEqual(p.Terms(CategoryGenres), []string{"classical", "ambient"}) {
			t.Errorf("unexpected genres: %v", p.Terms(CategoryGenres))
		}
	})

	t.Run("Without Brackets", func(t *testing.T) {
		p, err := Parse("Genres: jazz, blues")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(p.Terms(CategoryGenres), []string{"jazz", "blues"}) {
			t.Errorf("unexpected terms: %v", p.Terms(CategoryGenres))
		}
	})

	t.Run("Strips Exactly One Bracket Pair", func(t *testing.T) {
		p, err := Parse("Genres: [[jazz]]")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(p.Terms(CategoryGenres), []string{"[jazz]"}) {
			t.Errorf("expected inner brackets kept, got %v", p.Terms(CategoryGenres))
		}
	})

	t.Run("Continuation Line Appends", func(t *testing.T) {
		text := "Moods: [calm, bright]\nwistful, warm"

		p, err := Parse(text)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"calm", "bright", "wistful", "warm"}
		if !reflect.DeepEqual(p.Terms(CategoryMoods), want) {
			t.Errorf("expected %v, got %v", want, p.Terms(CategoryMoods))
		}
	})

	t.Run("Duplicate Label Replaces", func(t *testing.T) {
		text := "Genres: [rock]\nGenres: [folk, indie]"

		p, err := Parse(text)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(p.Terms(CategoryGenres), []string{"folk", "indie"}) {
			t.Errorf("expected later entry to replace, got %v", p.Terms(CategoryGenres))
		}
	})

	t.Run("Empty Pieces Dropped", func(t *testing.T) {
		p, err := Parse("Keywords: [a, , b,, c ]")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(p.Terms(CategoryKeywords), []string{"a", "b", "c"}) {
			t.Errorf("unexpected terms: %v", p.Terms(CategoryKeywords))
		}
	})

	t.Run("Blank Lines Skipped", func(t *testing.T) {
		text := "\n\nGenres: [jazz]\n\n\nMoods: [calm]\n"

		p, err := Parse(text)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(p) != 2 {
			t.Errorf("expected 2 categories, got %d", len(p))
		}
	})

	t.Run("Leading Continuation Without Category Ignored", func(t *testing.T) {
		p, err := Parse("stray line\nGenres: [jazz]")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(p) != 1 {
			t.Errorf("expected 1 category, got %d", len(p))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		_, err := Parse("")
		if !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("No Colon Lines", func(t *testing.T) {
		_, err := Parse("just some prose\nwith no labels at all")
		if !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}

func TestFormatRoundTrip(t *testing.T) {
	t.Run("Parse Format Parse Is Stable", func(t *testing.T) {
		text := `Emotional Tones: [dark, brooding]
Genres: [post-rock]
Moods: [tense]
Time Period/Cultural Context: [1920s America]
Keywords: [jazz age, excess]`

		p, err := Parse(text)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		reparsed, err := Parse(p.Format())
		if err != nil {
			t.Fatalf("expected no error reparsing, got %v", err)
		}

		if !reflect.DeepEqual(p, reparsed) {
			t.Errorf("round trip mismatch:\n%v\n%v", p, reparsed)
		}
	})

	t.Run("Extra Categories Sorted Last", func(t *testing.T) {
		p := Profile{
			CategoryGenres: {"jazz"},
			"Zeta":         {"z"},
			"Alpha":        {"a"},
		}

		formatted := p.Format()
		want := "Genres: [jazz]\nAlpha: [a]\nZeta: [z]"
		if formatted != want {
			t.Errorf("expected %q, got %q", want, formatted)
		}
	})
}

func TestProfileAccessors(t *testing.T) {
	p := Profile{CategoryMoods: {"calm", "bright", "warm", "soft"}}

	t.Run("First Caps Length", func(t *testing.T) {
		if got := p.First(CategoryMoods, 3); len(got) != 3 {
			t.Errorf("expected 3 terms, got %d", len(got))
		}
	})

	t.Run("First Returns All When Short", func(t *testing.T) {
		if got := p.First(CategoryMoods, 10); len(got) != 4 {
			t.Errorf("expected 4 terms, got %d", len(got))
		}
	})

	t.Run("Absent Category", func(t *testing.T) {
		if p.Has(CategoryGenres) {
			t.Error("expected category to be absent")
		}
		if got := p.First(CategoryGenres, 2); len(got) != 0 {
			t.Errorf("expected no terms, got %v", got)
		}
	})
}
