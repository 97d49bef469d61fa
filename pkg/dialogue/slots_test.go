package dialogue_test

import (
	"reflect"
	"testing"
	"time"

	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/nlp"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nextJuly(d int) time.Time {
	y := time.Now().Year() + 1
	return day(y, time.July, d)
}

func TestMergeIdempotent(t *testing.T) {
	t.Parallel()

	intents := []nlp.Intent{
		nlp.DatesIntent{CheckIn: nextJuly(15), CheckOut: nextJuly(18), Adults: 2, Children: 1},
		nlp.RoomIntent{RoomType: "Deluxe King Room"},
		nlp.GuestInfoIntent{Name: "John Smith", Phone: "5551234567", Email: "john@example.com"},
		nlp.PaymentIntent{Method: "Credit Card"},
	}

	var once dialogue.Slots
	for _, intent := range intents {
		once.Merge(intent)
	}

	twice := once
	for _, intent := range intents {
		changed, rejected := twice.Merge(intent)
		if changed {
			t.Errorf("re-applying %T reported a change", intent)
		}
		if len(rejected) != 0 {
			t.Errorf("re-applying %T rejected %v", intent, rejected)
		}
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("slots diverged after re-apply:\n once: %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeRejectsCheckOutBeforeCheckIn(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots
	s.Merge(nlp.DatesIntent{CheckIn: nextJuly(15)})

	_, rejected := s.Merge(nlp.DatesIntent{CheckOut: nextJuly(10)})
	if len(rejected) == 0 {
		t.Fatal("check-out before check-in was accepted")
	}
	if !s.CheckOut.IsZero() {
		t.Errorf("CheckOut = %v, want unset", s.CheckOut)
	}

	// The invariant holds in the other direction too.
	s.Merge(nlp.DatesIntent{CheckOut: nextJuly(18)})
	_, rejected = s.Merge(nlp.DatesIntent{CheckIn: nextJuly(20)})
	if len(rejected) == 0 {
		t.Fatal("check-in after check-out was accepted")
	}
	if !s.CheckIn.Equal(nextJuly(15)) {
		t.Errorf("CheckIn = %v, want %v", s.CheckIn, nextJuly(15))
	}
}

func TestMergeRejectsDistantPastCheckIn(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots
	_, rejected := s.Merge(nlp.DatesIntent{CheckIn: day(2019, time.July, 15)})
	if len(rejected) == 0 {
		t.Fatal("distant past check-in was accepted")
	}
	if !s.CheckIn.IsZero() {
		t.Errorf("CheckIn = %v, want unset", s.CheckIn)
	}
}

func TestMergeUnassignedDateFillsFirstEmptySlot(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots
	s.Merge(nlp.DatesIntent{Unassigned: nextJuly(15)})
	if !s.CheckIn.Equal(nextJuly(15)) {
		t.Fatalf("first bare date landed in %v/%v, want check-in", s.CheckIn, s.CheckOut)
	}

	s.Merge(nlp.DatesIntent{Unassigned: nextJuly(18)})
	if !s.CheckOut.Equal(nextJuly(18)) {
		t.Errorf("second bare date landed in %v/%v, want check-out", s.CheckIn, s.CheckOut)
	}
}

func TestMergeGuestBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		intent       nlp.GuestsIntent
		wantAdults   int
		wantChildren int
		wantRejected bool
	}{
		{"in range", nlp.GuestsIntent{Adults: 2, Children: 1}, 2, 1, false},
		{"max adults", nlp.GuestsIntent{Adults: 10}, 10, 0, false},
		{"too many adults", nlp.GuestsIntent{Adults: 11}, 0, 0, true},
		{"too many children", nlp.GuestsIntent{Adults: 2, Children: 9}, 2, 0, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var s dialogue.Slots
			_, rejected := s.Merge(tc.intent)
			if (len(rejected) > 0) != tc.wantRejected {
				t.Errorf("rejected = %v, want rejection %v", rejected, tc.wantRejected)
			}
			if s.Adults != tc.wantAdults || s.Children != tc.wantChildren {
				t.Errorf("slots = %d adults %d children, want %d/%d",
					s.Adults, s.Children, tc.wantAdults, tc.wantChildren)
			}
		})
	}
}

func TestMergeRejectsMalformedGuestInfo(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots
	_, rejected := s.Merge(nlp.GuestInfoIntent{Email: "notanemail", Phone: "12345"})
	if len(rejected) != 2 {
		t.Fatalf("rejected = %v, want 2 entries", rejected)
	}
	if s.Email != "" || s.Phone != "" {
		t.Errorf("invalid values stored: email=%q phone=%q", s.Email, s.Phone)
	}
}

func TestMergeRejectsOffCatalogRoomAndPayment(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots

	_, rejected := s.Merge(nlp.RoomIntent{RoomType: "penthouse igloo"})
	if len(rejected) == 0 || s.RoomType != "" {
		t.Errorf("off-catalog room: rejected=%v stored=%q", rejected, s.RoomType)
	}

	_, rejected = s.Merge(nlp.PaymentIntent{Method: "beads and shells"})
	if len(rejected) == 0 || s.PaymentMethod != "" {
		t.Errorf("off-catalog payment: rejected=%v stored=%q", rejected, s.PaymentMethod)
	}

	// Ten characters is not enough, the phone must be all digits too.
	_, rejected = s.Merge(nlp.GuestInfoIntent{Phone: "abcdefghij"})
	if len(rejected) == 0 || s.Phone != "" {
		t.Errorf("non-digit phone: rejected=%v stored=%q", rejected, s.Phone)
	}

	changed, rejected := s.Merge(nlp.RoomIntent{RoomType: "Executive Suite"})
	if !changed || len(rejected) > 0 || s.RoomType != "Executive Suite" {
		t.Errorf("catalog room refused: changed=%v rejected=%v stored=%q", changed, rejected, s.RoomType)
	}
}

func TestMissingFieldsOrder(t *testing.T) {
	t.Parallel()

	var s dialogue.Slots
	missing := s.MissingFields()
	want := []string{
		"check-in date", "check-out date", "number of adults", "room type",
		"guest name", "phone number", "email address", "payment method",
	}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingFields() = %v, want %v", missing, want)
	}

	s.Merge(nlp.DatesIntent{CheckIn: nextJuly(15), CheckOut: nextJuly(18), Adults: 2})
	s.Merge(nlp.RoomIntent{RoomType: "Family Room"})
	missing = s.MissingFields()
	want = []string{"guest name", "phone number", "email address", "payment method"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingFields() after partial fill = %v, want %v", missing, want)
	}
}
