package dialogue_test

import (
	"strings"
	"testing"
	"time"

	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/nlp"
)

func newTestEngine() *dialogue.Engine {
	n := 0
	return dialogue.NewEngine(dialogue.WithConfirmationFunc(func() string {
		n++
		return "CONF-00" + string(rune('0'+n))
	}))
}

func sessionAt(step dialogue.Step) *dialogue.Session {
	s := dialogue.NewSession("test-session")
	s.Step = step
	return s
}

func TestScenarioBookingRequestAdvancesToDates(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepServiceSelect)

	match := e.ClassifyIntent("I want to book a room", s.Language)
	if match == nil || match.Label != nlp.IntentBookRoom {
		t.Fatalf("ClassifyIntent = %+v, want booking intent", match)
	}

	res := e.AdvanceSession(s, match)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if s.Step != dialogue.StepDates {
		t.Errorf("step = %q, want %q", s.Step, dialogue.StepDates)
	}
}

func TestScenarioDatesAndGuestsInOneUtterance(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepDates)

	res := e.ProcessTurn(s, "check in July 15 to check out July 18, 2 adults and 1 child")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	year := time.Now().Year()
	if want := time.Date(year, time.July, 15, 0, 0, 0, 0, time.UTC); !s.Slots.CheckIn.Equal(want) {
		t.Errorf("CheckIn = %v, want %v", s.Slots.CheckIn, want)
	}
	if want := time.Date(year, time.July, 18, 0, 0, 0, 0, time.UTC); !s.Slots.CheckOut.Equal(want) {
		t.Errorf("CheckOut = %v, want %v", s.Slots.CheckOut, want)
	}
	if s.Slots.Adults != 2 || s.Slots.Children != 1 {
		t.Errorf("party = %d adults %d children, want 2/1", s.Slots.Adults, s.Slots.Children)
	}
	if s.Step != dialogue.StepRoomSelect {
		t.Errorf("step = %q, want %q", s.Step, dialogue.StepRoomSelect)
	}
}

func TestScenarioRoomResolvesToCanonicalName(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepRoomSelect)
	s.Slots.Merge(nlp.DatesIntent{CheckIn: nextJuly(15), CheckOut: nextJuly(18), Adults: 3})

	// An unrelated phrase extracts no room and re-prompts.
	match := &nlp.IntentMatch{
		Label:  nlp.IntentChooseRoom,
		Intent: e.ExtractEntities("nice lobby", nlp.IntentChooseRoom),
	}
	res := e.AdvanceSession(s, match)
	if s.Step != dialogue.StepRoomSelect {
		t.Fatalf("unrelated phrase moved step to %q", s.Step)
	}
	if len(res.Missing) == 0 || res.Missing[0] != "room type" {
		t.Errorf("Missing = %v, want room type named", res.Missing)
	}

	match = &nlp.IntentMatch{
		Label:  nlp.IntentChooseRoom,
		Intent: e.ExtractEntities("deluxe king room", nlp.IntentChooseRoom),
	}
	res = e.AdvanceSession(s, match)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if s.Slots.RoomType != "Deluxe King Room" {
		t.Errorf("RoomType = %q, want canonical Deluxe King Room", s.Slots.RoomType)
	}
	if s.Step != dialogue.StepGuestInfo {
		t.Errorf("step = %q, want %q", s.Step, dialogue.StepGuestInfo)
	}
}

func TestScenarioMalformedEmailRejected(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepGuestInfo)

	match := &nlp.IntentMatch{
		Label:  nlp.IntentGuestInfo,
		Intent: e.ExtractEntities("my email is notanemail", nlp.IntentGuestInfo),
	}
	res := e.AdvanceSession(s, match)

	if s.Slots.Email != "" {
		t.Errorf("Email = %q, want empty", s.Slots.Email)
	}
	if res.Err == nil || res.Err.Kind != dialogue.ErrValidation {
		t.Fatalf("err = %+v, want validation error", res.Err)
	}
	if !strings.Contains(res.Reply, "email") {
		t.Errorf("reply %q does not name the email problem", res.Reply)
	}
	if s.Step != dialogue.StepGuestInfo {
		t.Errorf("step = %q, want unchanged", s.Step)
	}
}

func TestScenarioStatusLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepGuests)
	s.Slots.Merge(nlp.DatesIntent{CheckIn: nextJuly(15), CheckOut: nextJuly(18)})
	before := *s

	res := e.ProcessTurn(s, "what information is still missing")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Missing) == 0 {
		t.Fatal("status reported nothing missing")
	}
	for _, field := range res.Missing {
		if field == "check-in date" || field == "check-out date" {
			t.Errorf("already captured field %q reported missing", field)
		}
	}
	if !strings.Contains(res.Reply, "Jul 15") || !strings.Contains(res.Reply, "Jul 18") {
		t.Errorf("reply %q does not recap the captured dates", res.Reply)
	}
	if !strings.Contains(res.Reply, "number of adults") {
		t.Errorf("reply %q does not name the missing fields", res.Reply)
	}
	if s.Step != before.Step {
		t.Errorf("step changed: %q -> %q", before.Step, s.Step)
	}
	if s.Slots != before.Slots {
		t.Errorf("slots changed: %+v -> %+v", before.Slots, s.Slots)
	}
}

func TestFullFlowReachesComplete(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := dialogue.NewSession("flow")

	turns := []string{
		"english please",
		"i want to book a room",
		"check in july 15 to check out july 18",
		"2 adults and 1 child",
		"deluxe king room",
		"my name is john smith and my phone is 5551234567 and my email is john@example.com",
		"i will pay with my credit card",
		"confirm",
	}

	lastIndex := s.Step.Index()
	var booking *dialogue.BookingPayload
	for _, turn := range turns {
		res := e.ProcessTurn(s, turn)
		if res.Err != nil {
			t.Fatalf("turn %q failed: %v (reply %q)", turn, res.Err, res.Reply)
		}
		if idx := s.Step.Index(); idx < lastIndex {
			t.Fatalf("step regressed after %q: %d -> %d", turn, lastIndex, idx)
		} else {
			lastIndex = idx
		}
		if res.Booking != nil {
			booking = res.Booking
		}
	}

	if s.Step != dialogue.StepComplete {
		t.Fatalf("final step = %q, want %q", s.Step, dialogue.StepComplete)
	}
	if booking == nil {
		t.Fatal("no booking payload emitted")
	}
	if booking.ConfirmationNumber == "" || s.ConfirmationNumber != booking.ConfirmationNumber {
		t.Errorf("confirmation number mismatch: payload %q session %q",
			booking.ConfirmationNumber, s.ConfirmationNumber)
	}
	if booking.RoomType != "Deluxe King Room" || booking.Adults != 2 || booking.Children != 1 {
		t.Errorf("payload details wrong: %+v", booking)
	}
	if booking.GuestName != "john smith" && booking.GuestName != "John Smith" {
		t.Errorf("GuestName = %q", booking.GuestName)
	}
}

func TestConfirmBeforeRequirementsIsIncomplete(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepDates)

	res := e.ProcessTurn(s, "confirm")
	if res.Err == nil || res.Err.Kind != dialogue.ErrIncompleteStep {
		t.Fatalf("err = %+v, want incomplete step", res.Err)
	}
	if s.Step != dialogue.StepDates {
		t.Errorf("step = %q, want unchanged", s.Step)
	}
	if len(res.Missing) == 0 {
		t.Error("missing fields not named")
	}
}

func TestCompleteIsTerminalExceptReset(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepComplete)

	res := e.ProcessTurn(s, "i want to book a room")
	if res.Err == nil || res.Err.Kind != dialogue.ErrInvalidTransition {
		t.Fatalf("err = %+v, want invalid transition", res.Err)
	}
	if s.Step != dialogue.StepComplete {
		t.Errorf("step = %q, want still complete", s.Step)
	}

	res = e.ProcessTurn(s, "reset the booking")
	if res.Err != nil {
		t.Fatalf("reset failed: %v", res.Err)
	}
	if s.Step != dialogue.StepLanguage {
		t.Errorf("step after reset = %q, want %q", s.Step, dialogue.StepLanguage)
	}
	if s.ConfirmationNumber != "" {
		t.Errorf("confirmation number survived reset: %q", s.ConfirmationNumber)
	}
}

func TestNoIntentMatchKeepsSessionUsable(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepDates)

	res := e.AdvanceSession(s, nil)
	if res.Err == nil || res.Err.Kind != dialogue.ErrNoIntentMatch {
		t.Fatalf("err = %+v, want no intent match", res.Err)
	}
	if res.Reply == "" {
		t.Error("no clarification prompt returned")
	}

	// The very next turn still works.
	next := e.ProcessTurn(s, "check in july 15 to check out july 18")
	if next.Err != nil {
		t.Fatalf("follow-up turn failed: %v", next.Err)
	}
	if !s.Slots.HasDates() {
		t.Error("dates not captured on follow-up turn")
	}
}

func TestExternalFallbackUsesSameAdvancePath(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepDates)

	res := e.AdvanceExternal(s, nlp.IntentProvideDates, map[string]string{
		"check_in":  "2027-07-15",
		"check_out": "2027-07-18",
		"adults":    "2",
	})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !s.Slots.HasDates() || s.Slots.Adults != 2 {
		t.Errorf("external entities not merged: %+v", s.Slots)
	}
	if s.Step != dialogue.StepRoomSelect {
		t.Errorf("step = %q, want %q", s.Step, dialogue.StepRoomSelect)
	}
}

func TestExternalFreeTextNeverLandsInEnumSlots(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := sessionAt(dialogue.StepRoomSelect)
	s.Slots.Merge(nlp.DatesIntent{CheckIn: nextJuly(15), CheckOut: nextJuly(18), Adults: 2})

	// A fallback entity that resolves to no catalog room fills nothing.
	e.AdvanceExternal(s, nlp.IntentChooseRoom, map[string]string{"room_type": "penthouse igloo"})
	if s.Slots.RoomType != "" {
		t.Errorf("RoomType = %q, want empty", s.Slots.RoomType)
	}
	if s.Step != dialogue.StepRoomSelect {
		t.Errorf("step = %q, want unchanged", s.Step)
	}

	// Loose but recognizable wording resolves to the catalog name.
	res := e.AdvanceExternal(s, nlp.IntentChooseRoom, map[string]string{"room_type": "deluxe king"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if s.Slots.RoomType != "Deluxe King Room" {
		t.Errorf("RoomType = %q, want canonical Deluxe King Room", s.Slots.RoomType)
	}

	e.AdvanceExternal(s, nlp.IntentChoosePayment, map[string]string{"payment_method": "beads and shells"})
	if s.Slots.PaymentMethod != "" {
		t.Errorf("PaymentMethod = %q, want empty", s.Slots.PaymentMethod)
	}

	res = e.AdvanceExternal(s, nlp.IntentChoosePayment, map[string]string{"payment_method": "credit card"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if s.Slots.PaymentMethod != "Credit Card" {
		t.Errorf("PaymentMethod = %q, want canonical Credit Card", s.Slots.PaymentMethod)
	}
}

func TestGreetingOpensWithWelcome(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := dialogue.NewSession("greet")

	res := e.AdvanceSession(s, &nlp.IntentMatch{Label: nlp.IntentGreeting, Intent: nlp.GreetingIntent{}})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !strings.Contains(res.Reply, "Welcome") {
		t.Errorf("reply %q does not open with the welcome line", res.Reply)
	}
	if !strings.Contains(res.Reply, "language") {
		t.Errorf("reply %q does not ask for a language", res.Reply)
	}
	if s.Step != dialogue.StepLanguage {
		t.Errorf("step = %q, want still %q", s.Step, dialogue.StepLanguage)
	}
}

func TestLanguageSelectionSwitchesReplies(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := dialogue.NewSession("lang")

	res := e.ProcessTurn(s, "bahasa indonesia saja")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if s.Language != nlp.LangIndonesian {
		t.Fatalf("language = %q, want id", s.Language)
	}
	if s.Step != dialogue.StepServiceSelect {
		t.Errorf("step = %q, want %q", s.Step, dialogue.StepServiceSelect)
	}
	if !strings.Contains(res.Reply, "memesan") {
		t.Errorf("reply %q not in indonesian", res.Reply)
	}
}
