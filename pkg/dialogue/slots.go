package dialogue

import (
	"fmt"
	"regexp"
	"time"

	"ReservaGolang/pkg/nlp"
)

const (
	MinAdults   = 1
	MaxAdults   = 10
	MinChildren = 0
	MaxChildren = 8
)

var (
	emailShape = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneShape = regexp.MustCompile(`^\d{10,15}$`)
)

// Slots is the validated reservation state. Values only land here after
// passing their field check, a rejected value leaves the previous one alone.
type Slots struct {
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Adults        int       `json:"adults"`
	Children      int       `json:"children"`
	RoomType      string    `json:"room_type"`
	GuestName     string    `json:"guest_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	PaymentMethod string    `json:"payment_method"`
}

// Merge folds a typed intent into the slots. It is idempotent, applying the
// same intent twice changes nothing the second time. Invalid values are
// reported and dropped, never stored and never fatal.
func (s *Slots) Merge(intent nlp.Intent) (changed bool, rejected []string) {
	switch v := intent.(type) {
	case nlp.DatesIntent:
		return s.mergeDates(v)
	case nlp.GuestsIntent:
		return s.mergeGuests(v)
	case nlp.RoomIntent:
		if v.RoomType == "" || s.RoomType == v.RoomType {
			return false, nil
		}
		// Only catalog rooms land here, free text never does.
		if !nlp.IsRoomType(v.RoomType) {
			return false, []string{"room type must be one of the offered rooms"}
		}
		s.RoomType = v.RoomType
		return true, nil
	case nlp.GuestInfoIntent:
		return s.mergeGuestInfo(v)
	case nlp.PaymentIntent:
		if v.Method == "" || s.PaymentMethod == v.Method {
			return false, nil
		}
		if !nlp.IsPaymentMethod(v.Method) {
			return false, []string{"payment method must be one of the offered options"}
		}
		s.PaymentMethod = v.Method
		return true, nil
	default:
		return false, nil
	}
}

func (s *Slots) mergeDates(v nlp.DatesIntent) (bool, []string) {
	in, out := v.CheckIn, v.CheckOut

	// A date without a stated role fills the first empty slot.
	if !v.Unassigned.IsZero() {
		if s.CheckIn.IsZero() && in.IsZero() {
			in = v.Unassigned
		} else if s.CheckOut.IsZero() && out.IsZero() {
			out = v.Unassigned
		}
	}

	var changed bool
	var rejected []string

	if !in.IsZero() && !in.Equal(s.CheckIn) {
		ref := s.CheckOut
		if !out.IsZero() {
			ref = out
		}
		switch {
		case !ref.IsZero() && !in.Before(ref):
			rejected = append(rejected, "check-in must fall before check-out")
		case in.Before(time.Now().AddDate(-1, 0, 0)):
			rejected = append(rejected, "check-in date is too far in the past")
		default:
			s.CheckIn = in
			changed = true
		}
	}
	if !out.IsZero() && !out.Equal(s.CheckOut) {
		if !s.CheckIn.IsZero() && !out.After(s.CheckIn) {
			rejected = append(rejected, "check-out must fall after check-in")
		} else {
			s.CheckOut = out
			changed = true
		}
	}

	if v.Adults > 0 || v.Children > 0 {
		guestsChanged, guestsRejected := s.mergeGuests(nlp.GuestsIntent{Adults: v.Adults, Children: v.Children})
		changed = changed || guestsChanged
		rejected = append(rejected, guestsRejected...)
	}
	return changed, rejected
}

func (s *Slots) mergeGuests(v nlp.GuestsIntent) (bool, []string) {
	var changed bool
	var rejected []string

	if v.Adults > 0 {
		if v.Adults > MaxAdults {
			rejected = append(rejected, fmt.Sprintf("adults must be between %d and %d", MinAdults, MaxAdults))
		} else if v.Adults != s.Adults {
			s.Adults = v.Adults
			changed = true
		}
	}
	if v.Children > 0 {
		if v.Children > MaxChildren {
			rejected = append(rejected, fmt.Sprintf("children must be between %d and %d", MinChildren, MaxChildren))
		} else if v.Children != s.Children {
			s.Children = v.Children
			changed = true
		}
	}
	return changed, rejected
}

func (s *Slots) mergeGuestInfo(v nlp.GuestInfoIntent) (bool, []string) {
	var changed bool
	var rejected []string

	if v.Name != "" && v.Name != s.GuestName {
		if len(v.Name) < 2 {
			rejected = append(rejected, "guest name looks too short")
		} else {
			s.GuestName = v.Name
			changed = true
		}
	}
	if v.Phone != "" && v.Phone != s.Phone {
		if !phoneShape.MatchString(v.Phone) {
			rejected = append(rejected, "phone number must be 10 to 15 digits")
		} else {
			s.Phone = v.Phone
			changed = true
		}
	}
	if v.Email != "" && v.Email != s.Email {
		if !emailShape.MatchString(v.Email) {
			rejected = append(rejected, "email address looks malformed")
		} else {
			s.Email = v.Email
			changed = true
		}
	}
	return changed, rejected
}

func (s *Slots) HasDates() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

func (s *Slots) HasGuests() bool {
	return s.Adults >= MinAdults
}

func (s *Slots) HasGuestInfo() bool {
	return s.GuestName != "" && s.Phone != "" && s.Email != ""
}

// MissingFields lists every field still needed for a complete reservation,
// in the order the conversation asks for them.
func (s *Slots) MissingFields() []string {
	var missing []string
	if s.CheckIn.IsZero() {
		missing = append(missing, "check-in date")
	}
	if s.CheckOut.IsZero() {
		missing = append(missing, "check-out date")
	}
	if !s.HasGuests() {
		missing = append(missing, "number of adults")
	}
	if s.RoomType == "" {
		missing = append(missing, "room type")
	}
	if s.GuestName == "" {
		missing = append(missing, "guest name")
	}
	if s.Phone == "" {
		missing = append(missing, "phone number")
	}
	if s.Email == "" {
		missing = append(missing, "email address")
	}
	if s.PaymentMethod == "" {
		missing = append(missing, "payment method")
	}
	return missing
}
