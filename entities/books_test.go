package entities

import "testing"

func TestNewBookInputRating(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		want  int64
	}{
		{raw: "1", valid: true, want: 1},
		{raw: " 5 ", valid: true, want: 5},
		{raw: ""},
		{raw: "0"},
		{raw: "-1"},
		{raw: "9"},
		{raw: "4.5"},
		{raw: "4abc"},
	}

	for _, tt := range tests {
		in := NewBookInput("t", "a", "", tt.raw, "", "")
		if in.Rating.Valid != tt.valid || in.Rating.ValueOrZero() != tt.want {
			t.Errorf("rating %q: expected valid=%v %d, got %v", tt.raw, tt.valid, tt.want, in.Rating)
		}
	}
}

func TestNewBookInputBlankFieldsAreNull(t *testing.T) {
	in := NewBookInput(" Dune ", "Herbert", " ", "", "2024-02-01T10:00:00Z", "")

	if in.Title != "Dune" {
		t.Errorf("expected trimmed title, got %q", in.Title)
	}
	if in.ISBN.Valid || in.Notes.Valid {
		t.Errorf("expected blank isbn and notes to be null, got %+v", in)
	}
	if in.DateRead.ValueOrZero() != "2024-02-01" {
		t.Errorf("expected date only, got %v", in.DateRead)
	}
}
