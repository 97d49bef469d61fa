package nlp_test

import (
	"math"
	"testing"

	"ReservaGolang/pkg/nlp"
)

func TestVectorizeDeterministic(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	inputs := []string{
		"i want to book a room",
		"check in july 15",
		"dua dewasa satu anak",
		"quiero reservar una habitacion",
	}
	for _, input := range inputs {
		first := v.Vectorize(input)
		second := v.Vectorize(input)
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("Vectorize(%q) differs at dim %d: %v vs %v", input, i, first[i], second[i])
			}
		}
	}
}

func TestVectorizeUnitLength(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	vec := v.Vectorize("book a deluxe king room for two adults")

	var sum float64
	for _, val := range vec {
		sum += val * val
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("squared magnitude = %v, want 1.0", sum)
	}
}

func TestVectorizeEmptyInput(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	for _, input := range []string{"", "   ", "\t\n", "!!! ..."} {
		vec := v.Vectorize(input)
		if len(vec) != 100 {
			t.Fatalf("Vectorize(%q) length = %d, want 100", input, len(vec))
		}
		for i, val := range vec {
			if val != 0 {
				t.Errorf("Vectorize(%q)[%d] = %v, want 0", input, i, val)
			}
		}
	}
}

func TestCleanTextFoldsDiacritics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Sí, reservar", "si reservar"},
		{"Español", "espanol"},
		{"  Two   Adults ", "two adults"},
		{"check-in: July 15!", "check in july 15"},
		{"niño", "nino"},
	}
	for _, tc := range cases {
		if got := nlp.CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTokenizeSameAfterFolding(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	a := v.Vectorize("Sí, quiero reservar")
	b := v.Vectorize("si quiero reservar")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("folded and plain vectors differ at dim %d", i)
		}
	}
}
