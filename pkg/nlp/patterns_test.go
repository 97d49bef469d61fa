package nlp_test

import (
	"testing"

	"ReservaGolang/pkg/nlp"
)

func TestPatternMatch(t *testing.T) {
	t.Parallel()

	pm := nlp.NewPatternMatcher()
	cases := []struct {
		in   string
		lang nlp.Language
		want nlp.IntentLabel
	}{
		{"I'd like to book a room please", nlp.LangEnglish, nlp.IntentBookRoom},
		{"what's missing?", nlp.LangEnglish, nlp.IntentStatus},
		{"ok, confirm", nlp.LangEnglish, nlp.IntentConfirm},
		{"let's start over", nlp.LangEnglish, nlp.IntentReset},
		{"saya mau pesan kamar", nlp.LangIndonesian, nlp.IntentBookRoom},
		{"batalkan", nlp.LangIndonesian, nlp.IntentReset},
		{"quiero reservar una habitacion", nlp.LangSpanish, nlp.IntentBookRoom},
		{"¿qué falta?", nlp.LangSpanish, nlp.IntentStatus},
	}
	for _, tc := range cases {
		got := pm.Match(tc.in, tc.lang)
		if got == nil {
			t.Errorf("Match(%q, %s) = nil, want %q", tc.in, tc.lang, tc.want)
			continue
		}
		if got.Label != tc.want {
			t.Errorf("Match(%q, %s) = %q, want %q", tc.in, tc.lang, got.Label, tc.want)
		}
		if got.Source != "pattern" {
			t.Errorf("Match(%q) source = %q, want pattern", tc.in, got.Source)
		}
	}
}

func TestPatternSingleWordNeedsWholeToken(t *testing.T) {
	t.Parallel()

	pm := nlp.NewPatternMatcher()
	if got := pm.Match("yesterday was lovely", nlp.LangEnglish); got != nil {
		t.Errorf("Match matched %q inside yesterday: %+v", got.Matched, got)
	}
}

func TestPatternUnknownLanguageFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	pm := nlp.NewPatternMatcher()
	got := pm.Match("book a room", nlp.Language("fr"))
	if got == nil || got.Label != nlp.IntentBookRoom {
		t.Errorf("Match with unknown language = %+v, want book intent via english table", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want nlp.Language
	}{
		{"i want to book a room", nlp.LangEnglish},
		{"saya mau pesan kamar dengan dua dewasa", nlp.LangIndonesian},
		{"quiero reservar una habitacion para dos adultos", nlp.LangSpanish},
		{"", nlp.LangEnglish},
		{"12345", nlp.LangEnglish},
	}
	for _, tc := range cases {
		if got := nlp.DetectLanguage(tc.in); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
