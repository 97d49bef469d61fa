package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
)

// Extractor pulls typed entities out of an utterance, scoped by intent label
// so a room keyword inside a name never leaks into the wrong field.
type Extractor struct {
	numberWords map[string]int
	roomTypes   []roomTypeDef
	payments    []paymentDef
	now         func() time.Time
}

type roomTypeDef struct {
	name     string
	required []string // every keyword must appear
	fallback string   // single keyword fallback
}

type paymentDef struct {
	name     string
	keywords []string
}

const fuzzyKeywordThreshold = 0.88

func NewExtractor() *Extractor {
	return &Extractor{
		numberWords: map[string]int{
			"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
			"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
			"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
			"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
			"eighteen": 18, "nineteen": 19, "twenty": 20,
			"a": 1, "an": 1, "single": 1, "couple": 2,
			// Indonesian and Spanish small numbers
			"satu": 1, "dua": 2, "tiga": 3, "empat": 4, "lima": 5,
			"uno": 1, "un": 1, "una": 1, "dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
		},
		roomTypes: []roomTypeDef{
			{name: "Deluxe King Room", required: []string{"deluxe", "king"}},
			{name: "Deluxe Twin Room", required: []string{"deluxe", "twin"}},
			{name: "Executive Suite", required: []string{"executive", "suite"}, fallback: "suite"},
			{name: "Family Room", required: []string{"family", "room"}, fallback: "family"},
			{name: "Standard Room", required: []string{"standard", "room"}, fallback: "standard"},
			{name: "Deluxe King Room", fallback: "deluxe"},
		},
		payments: []paymentDef{
			{name: "Credit Card", keywords: []string{"credit", "card", "visa", "mastercard", "kartu", "tarjeta", "credito"}},
			{name: "UPI or Digital Wallet", keywords: []string{"upi", "wallet", "digital", "gpay", "paytm", "dompet", "billetera"}},
			{name: "Pay at Hotel", keywords: []string{"cash", "arrival", "desk", "tunai", "efectivo", "hotel"}},
		},
		now: time.Now,
	}
}

// Extract runs only the extractor matching the label. Unknown labels and
// payload-free intents come back as their bare variant.
func (e *Extractor) Extract(text string, label IntentLabel) Intent {
	switch label {
	case IntentSelectLanguage:
		return LanguageIntent{Language: extractLanguageChoice(text)}
	case IntentProvideDates:
		dates := ExtractDates(text, e.now())
		guests := e.ExtractGuests(text)
		dates.Adults, dates.Children = guests.Adults, guests.Children
		return dates
	case IntentProvideGuests:
		return e.ExtractGuests(text)
	case IntentChooseRoom:
		return e.ExtractRoomType(text)
	case IntentGuestInfo:
		return e.ExtractGuestInfo(text)
	case IntentChoosePayment:
		return e.ExtractPayment(text)
	case IntentBookRoom:
		return BookRoomIntent{}
	case IntentConfirm:
		return ConfirmIntent{}
	case IntentReset:
		return ResetIntent{}
	case IntentStatus:
		return StatusIntent{}
	default:
		return GreetingIntent{}
	}
}

var (
	adultPattern = regexp.MustCompile(`\b(\w+)\s+(?:adults?|grown[\s-]?ups?|dewasa|adultos?|guests?|people|persons?|orang|personas?)\b`)
	childPattern = regexp.MustCompile(`\b(\w+)\s+(?:children|child|kids?|anak(?:-anak)?|ninos?|nino|nina|ninas)\b`)
)

// ExtractGuests reads counts from digits or number words. A count without a
// mention stays zero, the slot layer treats zero adults as unset.
func (e *Extractor) ExtractGuests(text string) GuestsIntent {
	cleaned := CleanText(text)

	var out GuestsIntent
	if m := adultPattern.FindStringSubmatch(cleaned); m != nil {
		out.Adults = e.parseCount(m[1])
	}
	if m := childPattern.FindStringSubmatch(cleaned); m != nil {
		out.Children = e.parseCount(m[1])
	}
	return out
}

func (e *Extractor) parseCount(word string) int {
	if n, err := strconv.Atoi(word); err == nil {
		return n
	}
	if n, ok := e.numberWords[word]; ok {
		return n
	}
	if strings.EqualFold(word, "no") || strings.EqualFold(word, "without") {
		return 0
	}
	return 0
}

// ExtractRoomType resolves a room by its full keyword set first, then by a
// single distinguishing keyword, with a Jaro-Winkler assist for typos.
// Nothing matches, nothing is guessed.
func (e *Extractor) ExtractRoomType(text string) RoomIntent {
	tokens := strings.Fields(CleanText(text))
	if len(tokens) == 0 {
		return RoomIntent{}
	}

	for _, def := range e.roomTypes {
		if len(def.required) == 0 {
			continue
		}
		all := true
		for _, keyword := range def.required {
			if !containsTokenFuzzy(tokens, keyword) {
				all = false
				break
			}
		}
		if all {
			return RoomIntent{RoomType: def.name}
		}
	}

	for _, def := range e.roomTypes {
		if def.fallback != "" && containsTokenFuzzy(tokens, def.fallback) {
			return RoomIntent{RoomType: def.name}
		}
	}

	return RoomIntent{}
}

func containsTokenFuzzy(tokens []string, keyword string) bool {
	for _, token := range tokens {
		if token == keyword {
			return true
		}
		if len(token) > 3 && matchr.JaroWinkler(token, keyword, true) >= fuzzyKeywordThreshold {
			return true
		}
	}
	return false
}

var (
	namePattern  = regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm|this is|name's|nama saya|mi nombre es|me llamo)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)?)`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	emailLeadIn  = regexp.MustCompile(`(?i)\b(?:email|e-mail|correo)(?:\s+address)?\s+(?:is\s+|es\s+|adalah\s+)?(\S+)`)
	phoneDigits  = regexp.MustCompile(`\d{10,15}`)
	phoneJoiner  = regexp.MustCompile(`(\d)[\s\-\.\(\)]+(\d)`)
)

var nameStopTokens = map[string]bool{
	"and": true, "my": true, "phone": true, "email": true, "number": true,
	"dan": true, "y": true, "telepon": true, "correo": true,
}

// ExtractGuestInfo pulls name, phone and email independently, any subset can
// appear in one utterance.
func (e *Extractor) ExtractGuestInfo(text string) GuestInfoIntent {
	var out GuestInfoIntent

	if m := namePattern.FindStringSubmatch(text); m != nil {
		out.Name = trimNameTail(m[1])
	}
	if m := emailPattern.FindString(text); m != "" {
		out.Email = m
	} else if m := emailLeadIn.FindStringSubmatch(text); m != nil {
		// An announced email that fails the shape check still flows through,
		// the validator rejects it with a format-specific message.
		out.Email = strings.Trim(m[1], ",.;")
	}

	// Collapse separators inside digit runs before hunting for a phone, so
	// "555-123-4567" still reads as one number. Email digits stay out of it.
	withoutEmail := emailPattern.ReplaceAllString(text, " ")
	joined := withoutEmail
	for {
		next := phoneJoiner.ReplaceAllString(joined, "$1$2")
		if next == joined {
			break
		}
		joined = next
	}
	if m := phoneDigits.FindString(joined); m != "" {
		out.Phone = m
	}

	return out
}

func trimNameTail(name string) string {
	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if nameStopTokens[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

var (
	roomTypeCatalog = []string{
		"Standard Room", "Deluxe King Room", "Deluxe Twin Room",
		"Executive Suite", "Family Room",
	}
	paymentMethodCatalog = []string{"Credit Card", "UPI or Digital Wallet", "Pay at Hotel"}

	canonicalizer = NewExtractor()
)

// IsRoomType reports whether name is a catalog room, spelled exactly as the
// catalog stores it.
func IsRoomType(name string) bool {
	for _, rt := range roomTypeCatalog {
		if rt == name {
			return true
		}
	}
	return false
}

func IsPaymentMethod(name string) bool {
	for _, pm := range paymentMethodCatalog {
		if pm == name {
			return true
		}
	}
	return false
}

// CanonicalRoomType resolves a value of unknown provenance, such as a remote
// fallback entity, onto a catalog room name. Exact names pass through,
// anything else runs through the keyword matcher. Empty means the value
// resolved to no known room.
func CanonicalRoomType(value string) string {
	if IsRoomType(value) {
		return value
	}
	return canonicalizer.ExtractRoomType(value).RoomType
}

func CanonicalPaymentMethod(value string) string {
	if IsPaymentMethod(value) {
		return value
	}
	return canonicalizer.ExtractPayment(value).Method
}

// ExtractPayment maps loose wording onto the canonical method names.
func (e *Extractor) ExtractPayment(text string) PaymentIntent {
	tokens := strings.Fields(CleanText(text))

	for _, def := range e.payments {
		for _, keyword := range def.keywords {
			if containsTokenFuzzy(tokens, keyword) {
				return PaymentIntent{Method: def.name}
			}
		}
	}
	return PaymentIntent{}
}

func extractLanguageChoice(text string) Language {
	cleaned := CleanText(text)
	switch {
	case strings.Contains(cleaned, "english") || strings.Contains(cleaned, "inggris") || strings.Contains(cleaned, "ingles"):
		return LangEnglish
	case strings.Contains(cleaned, "indonesia") || strings.Contains(cleaned, "bahasa"):
		return LangIndonesian
	case strings.Contains(cleaned, "spanish") || strings.Contains(cleaned, "espanol") || strings.Contains(cleaned, "spanyol"):
		return LangSpanish
	default:
		return DetectLanguage(text)
	}
}
