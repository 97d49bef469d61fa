package nlp

import "strings"

// PatternMatcher is the keyword fast path in front of the vector classifier.
// Tables are ordered slices so matching order is deterministic per language.
type PatternMatcher struct {
	tables map[Language][]patternEntry
}

type patternEntry struct {
	label   IntentLabel
	phrases []string
}

func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{
		tables: map[Language][]patternEntry{
			LangEnglish: {
				{IntentStatus, []string{"what's missing", "what is missing", "still missing", "what do you need", "still need", "what's left", "what is left"}},
				{IntentReset, []string{"start over", "reset", "cancel everything", "cancel the booking", "never mind"}},
				{IntentConfirm, []string{"confirm", "that's correct", "that is correct", "go ahead", "sounds good", "yes"}},
				{IntentBookRoom, []string{"book a room", "make a reservation", "reserve a room", "book a hotel"}},
				{IntentSelectLanguage, []string{"in english", "english please", "speak english"}},
				{IntentGreeting, []string{"hello", "good morning", "good evening", "hey there"}},
			},
			LangIndonesian: {
				{IntentStatus, []string{"apa yang kurang", "masih kurang apa", "butuh apa lagi"}},
				{IntentReset, []string{"ulangi dari awal", "batalkan", "batal semua", "mulai ulang"}},
				{IntentConfirm, []string{"konfirmasi", "ya benar", "betul", "lanjutkan", "setuju"}},
				{IntentBookRoom, []string{"pesan kamar", "reservasi kamar", "booking kamar", "mau pesan"}},
				{IntentSelectLanguage, []string{"bahasa indonesia", "pakai indonesia"}},
				{IntentGreeting, []string{"halo", "selamat pagi", "selamat malam"}},
			},
			LangSpanish: {
				{IntentStatus, []string{"que falta", "que necesitas", "que queda"}},
				{IntentReset, []string{"empezar de nuevo", "cancelar", "cancelar todo", "olvidalo"}},
				{IntentConfirm, []string{"confirmar", "es correcto", "adelante", "si"}},
				{IntentBookRoom, []string{"reservar una habitacion", "hacer una reserva", "quiero reservar"}},
				{IntentSelectLanguage, []string{"en espanol", "espanol por favor", "hablar espanol"}},
				{IntentGreeting, []string{"hola", "buenos dias", "buenas noches"}},
			},
		},
	}
}

// Match scans the language's table in order. Multi-word phrases match on
// containment, single words on whole-token equality so "yes" never fires
// inside "yesterday".
func (pm *PatternMatcher) Match(text string, lang Language) *IntentMatch {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil
	}
	tokens := strings.Fields(cleaned)

	table, ok := pm.tables[lang]
	if !ok {
		table = pm.tables[LangEnglish]
	}

	for _, entry := range table {
		for _, phrase := range entry.phrases {
			if strings.Contains(phrase, " ") {
				if strings.Contains(cleaned, phrase) {
					return &IntentMatch{
						Label:      entry.label,
						Confidence: 0.9,
						Source:     "pattern",
						Matched:    phrase,
					}
				}
				continue
			}
			for _, token := range tokens {
				if token == phrase {
					return &IntentMatch{
						Label:      entry.label,
						Confidence: 0.9,
						Source:     "pattern",
						Matched:    phrase,
					}
				}
			}
		}
	}
	return nil
}

var languageMarkers = map[Language][]string{
	LangEnglish:    {"the", "i", "want", "room", "book", "please", "and", "with", "my", "english"},
	LangIndonesian: {"saya", "mau", "kamar", "pesan", "dan", "dengan", "nama", "tanggal", "dewasa", "anak", "indonesia"},
	LangSpanish:    {"quiero", "habitacion", "reservar", "con", "para", "nombre", "adultos", "nino", "por", "favor", "espanol"},
}

// DetectLanguage scores whole-token marker hits per language. English wins
// ties, matching the default session language.
func DetectLanguage(text string) Language {
	tokens := strings.Fields(CleanText(text))
	if len(tokens) == 0 {
		return LangEnglish
	}

	scores := map[Language]int{}
	for lang, markers := range languageMarkers {
		for _, token := range tokens {
			for _, marker := range markers {
				if token == marker {
					scores[lang]++
				}
			}
		}
	}

	best := LangEnglish
	bestScore := scores[LangEnglish]
	for _, lang := range []Language{LangIndonesian, LangSpanish} {
		if scores[lang] > bestScore {
			best = lang
			bestScore = scores[lang]
		}
	}
	return best
}
