package dialogue

import (
	"sync"
	"time"

	"ReservaGolang/pkg/nlp"
)

type Step string

const (
	StepLanguage      Step = "language"
	StepServiceSelect Step = "service_select"
	StepDates         Step = "dates"
	StepGuests        Step = "guests"
	StepRoomSelect    Step = "room_select"
	StepGuestInfo     Step = "guest_info"
	StepPayment       Step = "payment"
	StepConfirmation  Step = "confirmation"
	StepComplete      Step = "complete"
)

// stepOrder drives progress checks and the missing-fields walk.
var stepOrder = []Step{
	StepLanguage,
	StepServiceSelect,
	StepDates,
	StepGuests,
	StepRoomSelect,
	StepGuestInfo,
	StepPayment,
	StepConfirmation,
	StepComplete,
}

func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

type Session struct {
	ID                 string       `json:"id"`
	Language           nlp.Language `json:"language"`
	Step               Step         `json:"step"`
	Slots              Slots        `json:"slots"`
	ConfirmationNumber string       `json:"confirmation_number,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Language:  nlp.LangEnglish,
		Step:      StepLanguage,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset clears every slot and returns the session to the language step. The
// session identity and language preference survive.
func (s *Session) Reset() {
	s.Slots = Slots{}
	s.Step = StepLanguage
	s.ConfirmationNumber = ""
	s.UpdatedAt = time.Now()
}

type managedSession struct {
	mu      sync.Mutex
	session *Session
}

// Manager owns the live sessions and serializes turns per session. Two
// concurrent messages for the same session id run one after the other,
// messages for different sessions run in parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*managedSession)}
}

func (m *Manager) get(id string) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.sessions[id]
	if !ok {
		ms = &managedSession{session: NewSession(id)}
		m.sessions[id] = ms
	}
	return ms
}

// WithSession runs fn while holding the session's turn lock.
func (m *Manager) WithSession(id string, fn func(*Session) error) error {
	ms := m.get(id)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return fn(ms.session)
}

// Snapshot returns a copy safe to read outside the turn lock.
func (m *Manager) Snapshot(id string) (Session, bool) {
	m.mu.Lock()
	ms, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return Session{}, false
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return *ms.session, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CleanupIdle drops sessions untouched for longer than maxIdle and reports
// how many were removed.
func (m *Manager) CleanupIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, ms := range m.sessions {
		ms.mu.Lock()
		idle := ms.session.UpdatedAt.Before(cutoff)
		ms.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
