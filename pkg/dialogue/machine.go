package dialogue

import (
	"strings"
	"time"

	"ReservaGolang/pkg/nlp"
)

type ErrorKind string

const (
	ErrNoIntentMatch     ErrorKind = "no_intent_match"
	ErrValidation        ErrorKind = "validation_error"
	ErrIncompleteStep    ErrorKind = "incomplete_step"
	ErrInvalidTransition ErrorKind = "invalid_transition"
)

// FlowError reports a recoverable conversation problem. The session always
// stays usable, the Message tells the guest how to continue.
type FlowError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *FlowError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// BookingPayload is handed to notification consumers when a session reaches
// the complete step. The engine itself never persists a reservation.
type BookingPayload struct {
	SessionID          string       `json:"session_id"`
	ConfirmationNumber string       `json:"confirmation_number"`
	Language           nlp.Language `json:"language"`
	CheckIn            time.Time    `json:"check_in"`
	CheckOut           time.Time    `json:"check_out"`
	Adults             int          `json:"adults"`
	Children           int          `json:"children"`
	RoomType           string       `json:"room_type"`
	GuestName          string       `json:"guest_name"`
	Phone              string       `json:"phone"`
	Email              string       `json:"email"`
	PaymentMethod      string       `json:"payment_method"`
	CompletedAt        time.Time    `json:"completed_at"`
}

type AdvanceResult struct {
	Step     Step            `json:"step"`
	Reply    string          `json:"reply"`
	Missing  []string        `json:"missing,omitempty"`
	Rejected []string        `json:"rejected,omitempty"`
	Booking  *BookingPayload `json:"booking,omitempty"`
	Err      *FlowError      `json:"error,omitempty"`
}

// machine advances a session one turn at a time. Steps are never skipped:
// the walk below only moves past a step once that step's requirement holds,
// so reaching confirmation implies every slot it needs is filled.
type machine struct {
	templates       *Templates
	newConfirmation func() string
}

func newMachine(templates *Templates, newConfirmation func() string) *machine {
	return &machine{templates: templates, newConfirmation: newConfirmation}
}

func (m *machine) advance(session *Session, intent nlp.Intent) *AdvanceResult {
	session.UpdatedAt = time.Now()

	// Meta intents work at any step and never touch the slots.
	switch intent.(type) {
	case nlp.StatusIntent:
		return m.statusReply(session)
	case nlp.ResetIntent:
		session.Reset()
		return &AdvanceResult{Step: session.Step, Reply: m.templates.Render(session.Language, tplResetDone)}
	}

	if session.Step == StepComplete {
		return &AdvanceResult{
			Step:  session.Step,
			Reply: m.templates.Render(session.Language, tplAlreadyDone),
			Err:   &FlowError{Kind: ErrInvalidTransition, Message: "booking already complete"},
		}
	}

	if lang, ok := intent.(nlp.LanguageIntent); ok {
		session.Language = lang.Language
		if session.Step == StepLanguage {
			session.Step = StepServiceSelect
		}
		return m.promptFor(session, nil)
	}

	if session.Step == StepLanguage {
		// First contact. A direct booking request picks the detected
		// language and moves straight into the flow.
		if _, ok := intent.(nlp.BookRoomIntent); ok {
			session.Step = StepDates
			return m.promptFor(session, nil)
		}
		reply := m.templates.Render(session.Language, tplPromptLanguage)
		if _, ok := intent.(nlp.GreetingIntent); ok {
			reply = m.templates.Render(session.Language, tplGreeting) + " " + reply
		}
		return &AdvanceResult{Step: session.Step, Reply: reply}
	}

	changed, rejected := session.Slots.Merge(intent)

	if _, ok := intent.(nlp.BookRoomIntent); ok && session.Step == StepServiceSelect {
		session.Step = StepDates
		return m.promptFor(session, rejected)
	}

	_, confirmed := intent.(nlp.ConfirmIntent)

	if session.Step == StepConfirmation && confirmed {
		return m.complete(session)
	}

	m.walkForward(session)

	if confirmed && !changed && session.Step != StepConfirmation {
		// An explicit "next" that could not move anywhere names what is
		// still needed at the current step.
		res := m.promptFor(session, rejected)
		res.Missing = m.stepMissing(session)
		res.Err = &FlowError{
			Kind:    ErrIncompleteStep,
			Message: "cannot advance yet, missing: " + strings.Join(res.Missing, ", "),
		}
		return res
	}

	res := m.promptFor(session, rejected)
	if session.Step != StepConfirmation && session.Step != StepComplete {
		res.Missing = m.stepMissing(session)
	}
	if len(rejected) > 0 {
		res.Err = &FlowError{Kind: ErrValidation, Message: strings.Join(rejected, "; ")}
	}
	return res
}

// walkForward advances past every step whose requirement is already met,
// stopping at confirmation which only an explicit confirm may leave.
func (m *machine) walkForward(session *Session) {
	for session.Step != StepConfirmation && session.Step != StepComplete {
		if !m.stepSatisfied(session) {
			return
		}
		session.Step = stepOrder[session.Step.Index()+1]
	}
}

func (m *machine) stepSatisfied(session *Session) bool {
	switch session.Step {
	case StepServiceSelect:
		// Reservation data in hand means the guest already chose to book.
		return session.Slots.HasDates() || session.Slots.HasGuests() || session.Slots.RoomType != ""
	case StepDates:
		return session.Slots.HasDates()
	case StepGuests:
		return session.Slots.HasGuests()
	case StepRoomSelect:
		return session.Slots.RoomType != ""
	case StepGuestInfo:
		return session.Slots.HasGuestInfo()
	case StepPayment:
		return session.Slots.PaymentMethod != ""
	default:
		return false
	}
}

func (m *machine) stepMissing(session *Session) []string {
	s := &session.Slots
	switch session.Step {
	case StepDates:
		var missing []string
		if s.CheckIn.IsZero() {
			missing = append(missing, "check-in date")
		}
		if s.CheckOut.IsZero() {
			missing = append(missing, "check-out date")
		}
		return missing
	case StepGuests:
		return []string{"number of adults"}
	case StepRoomSelect:
		return []string{"room type"}
	case StepGuestInfo:
		var missing []string
		if s.GuestName == "" {
			missing = append(missing, "guest name")
		}
		if s.Phone == "" {
			missing = append(missing, "phone number")
		}
		if s.Email == "" {
			missing = append(missing, "email address")
		}
		return missing
	case StepPayment:
		return []string{"payment method"}
	default:
		return nil
	}
}

func (m *machine) promptFor(session *Session, rejected []string) *AdvanceResult {
	lang := session.Language
	var reply string
	switch session.Step {
	case StepServiceSelect:
		reply = m.templates.Render(lang, tplPromptService)
	case StepDates:
		reply = m.templates.Render(lang, tplPromptDates)
	case StepGuests:
		reply = m.templates.Render(lang, tplPromptGuests)
	case StepRoomSelect:
		reply = m.templates.Render(lang, tplPromptRoom)
	case StepGuestInfo:
		reply = m.templates.Render(lang, tplPromptInfo)
	case StepPayment:
		reply = m.templates.Render(lang, tplPromptPayment)
	case StepConfirmation:
		reply = m.templates.Render(lang, tplPromptConfirm, m.templates.Summary(&session.Slots))
	default:
		reply = m.templates.Render(lang, tplPromptLanguage)
	}

	if len(rejected) > 0 {
		reply = m.templates.Render(lang, tplRejected, strings.Join(rejected, "; ")) + " " + reply
	}
	return &AdvanceResult{Step: session.Step, Reply: reply, Rejected: rejected}
}

func (m *machine) statusReply(session *Session) *AdvanceResult {
	missing := session.Slots.MissingFields()
	if len(missing) == 0 {
		return &AdvanceResult{Step: session.Step, Reply: m.templates.Render(session.Language, tplNothingMissing)}
	}

	// A status report names both sides, what is captured and what is still
	// needed. With nothing captured yet only the missing list remains.
	reply := m.templates.Render(session.Language, tplMissing, strings.Join(missing, ", "))
	if captured := m.templates.Captured(&session.Slots); captured != "" {
		reply = m.templates.Render(session.Language, tplStatus, captured, strings.Join(missing, ", "))
	}
	return &AdvanceResult{
		Step:    session.Step,
		Reply:   reply,
		Missing: missing,
	}
}

func (m *machine) complete(session *Session) *AdvanceResult {
	session.ConfirmationNumber = m.newConfirmation()
	session.Step = StepComplete

	payload := &BookingPayload{
		SessionID:          session.ID,
		ConfirmationNumber: session.ConfirmationNumber,
		Language:           session.Language,
		CheckIn:            session.Slots.CheckIn,
		CheckOut:           session.Slots.CheckOut,
		Adults:             session.Slots.Adults,
		Children:           session.Slots.Children,
		RoomType:           session.Slots.RoomType,
		GuestName:          session.Slots.GuestName,
		Phone:              session.Slots.Phone,
		Email:              session.Slots.Email,
		PaymentMethod:      session.Slots.PaymentMethod,
		CompletedAt:        time.Now(),
	}

	return &AdvanceResult{
		Step:    StepComplete,
		Reply:   m.templates.Render(session.Language, tplCompleted, session.ConfirmationNumber),
		Booking: payload,
	}
}
