package nlp

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vectorizer turns free text into a fixed-dimension bag-of-words vector via
// the hashing trick. FNV-1a is stable across processes, so the same corpus
// always produces the same vectors.
type Vectorizer struct {
	dimension int
}

func NewVectorizer(dimension int) *Vectorizer {
	if dimension <= 0 {
		dimension = DefaultConfig().Dimension
	}
	return &Vectorizer{dimension: dimension}
}

func (v *Vectorizer) Dimension() int {
	return v.dimension
}

func (v *Vectorizer) Vectorize(text string) []float64 {
	vec := make([]float64, v.dimension)

	tokens := v.Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(v.dimension)]++
	}

	var magnitude float64
	for _, val := range vec {
		magnitude += val * val
	}
	if magnitude == 0 {
		return vec
	}
	magnitude = math.Sqrt(magnitude)
	for i := range vec {
		vec[i] /= magnitude
	}

	return vec
}

func (v *Vectorizer) Tokenize(text string) []string {
	return strings.Fields(CleanText(text))
}

// CleanText lowercases, strips diacritics and collapses everything that is
// not a letter, digit or space. "Sí, reservar" and "si reservar" tokenize
// identically.
func CleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	// Corpus entries and queries are already L2-normalized, the dot product
	// is the cosine.
	return dot
}
