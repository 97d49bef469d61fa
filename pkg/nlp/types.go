package nlp

import "time"

type IntentLabel string

const (
	IntentSelectLanguage IntentLabel = "select_language"
	IntentBookRoom       IntentLabel = "book_room"
	IntentProvideDates   IntentLabel = "provide_dates"
	IntentProvideGuests  IntentLabel = "provide_guests"
	IntentChooseRoom     IntentLabel = "choose_room"
	IntentGuestInfo      IntentLabel = "guest_info"
	IntentChoosePayment  IntentLabel = "choose_payment"
	IntentConfirm        IntentLabel = "confirm"
	IntentReset          IntentLabel = "reset"
	IntentStatus         IntentLabel = "status"
	IntentGreeting       IntentLabel = "greeting"
)

// ParseIntentLabel validates a label string from an external source, such as
// a training endpoint or a remote model.
func ParseIntentLabel(s string) (IntentLabel, bool) {
	switch IntentLabel(s) {
	case IntentSelectLanguage, IntentBookRoom, IntentProvideDates, IntentProvideGuests,
		IntentChooseRoom, IntentGuestInfo, IntentChoosePayment, IntentConfirm,
		IntentReset, IntentStatus, IntentGreeting:
		return IntentLabel(s), true
	}
	return "", false
}

type Language string

const (
	LangEnglish    Language = "en"
	LangIndonesian Language = "id"
	LangSpanish    Language = "es"
)

type IntentMatch struct {
	Label      IntentLabel `json:"label"`
	Confidence float64     `json:"confidence"`
	Source     string      `json:"source"` // "pattern", "vector" or "external"
	Matched    string      `json:"matched,omitempty"`
	Intent     Intent      `json:"intent,omitempty"`
}

// Intent is the typed payload attached to a match. Each variant carries only
// the fields its scoped extractor can fill, nothing else.
type Intent interface {
	IntentLabel() IntentLabel
}

type LanguageIntent struct {
	Language Language `json:"language"`
}

type BookRoomIntent struct{}

// DatesIntent holds dates with an explicit role plus at most one date whose
// role the utterance did not state. The dialogue layer assigns Unassigned to
// the first empty slot. A stay utterance often names the party size in the
// same breath, so the counts ride along.
type DatesIntent struct {
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Unassigned time.Time `json:"unassigned"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
}

type GuestsIntent struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type RoomIntent struct {
	RoomType string `json:"room_type"`
}

type GuestInfoIntent struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type PaymentIntent struct {
	Method string `json:"method"`
}

type ConfirmIntent struct{}

type ResetIntent struct{}

type StatusIntent struct{}

type GreetingIntent struct{}

func (LanguageIntent) IntentLabel() IntentLabel  { return IntentSelectLanguage }
func (BookRoomIntent) IntentLabel() IntentLabel  { return IntentBookRoom }
func (DatesIntent) IntentLabel() IntentLabel     { return IntentProvideDates }
func (GuestsIntent) IntentLabel() IntentLabel    { return IntentProvideGuests }
func (RoomIntent) IntentLabel() IntentLabel      { return IntentChooseRoom }
func (GuestInfoIntent) IntentLabel() IntentLabel { return IntentGuestInfo }
func (PaymentIntent) IntentLabel() IntentLabel   { return IntentChoosePayment }
func (ConfirmIntent) IntentLabel() IntentLabel   { return IntentConfirm }
func (ResetIntent) IntentLabel() IntentLabel     { return IntentReset }
func (StatusIntent) IntentLabel() IntentLabel    { return IntentStatus }
func (GreetingIntent) IntentLabel() IntentLabel  { return IntentGreeting }

type Config struct {
	Dimension     int
	Threshold     float64
	ExampleWeight float64
	KeywordWeight float64
}

func DefaultConfig() Config {
	return Config{
		Dimension:     100,
		Threshold:     0.3,
		ExampleWeight: 1.0,
		KeywordWeight: 0.8,
	}
}
