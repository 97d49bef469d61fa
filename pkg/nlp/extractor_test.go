package nlp_test

import (
	"testing"

	"ReservaGolang/pkg/nlp"
)

func TestExtractGuests(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()
	cases := []struct {
		in       string
		adults   int
		children int
	}{
		{"2 adults and 1 child", 2, 1},
		{"two adults with two kids", 2, 2},
		{"we are four adults", 4, 0},
		{"just one adult no children", 1, 0},
		{"twenty adults", 20, 0},
		{"a couple and three children", 0, 3},
		{"3 people", 3, 0},
		{"dua dewasa satu anak", 2, 1},
		{"dos adultos y un nino", 2, 1},
		{"the weather is lovely", 0, 0},
	}
	for _, tc := range cases {
		got := e.ExtractGuests(tc.in)
		if got.Adults != tc.adults || got.Children != tc.children {
			t.Errorf("ExtractGuests(%q) = %d adults %d children, want %d/%d",
				tc.in, got.Adults, got.Children, tc.adults, tc.children)
		}
	}
}

func TestExtractRoomType(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()
	cases := []struct {
		in   string
		want string
	}{
		{"i want the deluxe king room", "Deluxe King Room"},
		{"deluxe twin please", "Deluxe Twin Room"},
		{"the executive suite", "Executive Suite"},
		{"a suite would be nice", "Executive Suite"},
		{"family room for us", "Family Room"},
		{"standard room is fine", "Standard Room"},
		{"just a standard one", "Standard Room"},
		{"give me the deluxe", "Deluxe King Room"},
		{"famly room", "Family Room"}, // typo, fuzzy assist
		{"nice lobby", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := e.ExtractRoomType(tc.in)
		if got.RoomType != tc.want {
			t.Errorf("ExtractRoomType(%q) = %q, want %q", tc.in, got.RoomType, tc.want)
		}
	}
}

func TestExtractGuestInfo(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()
	cases := []struct {
		in    string
		name  string
		phone string
		email string
	}{
		{
			in:    "my name is John Smith and my phone is 5551234567",
			name:  "John Smith",
			phone: "5551234567",
		},
		{
			in:    "i am Maria Garcia, email maria@example.com",
			name:  "Maria Garcia",
			email: "maria@example.com",
		},
		{
			in:    "this is Robert, 415-555-0123, robert.j@mail.co",
			name:  "Robert",
			phone: "4155550123",
			email: "robert.j@mail.co",
		},
		{
			in:    "call me at (555) 123 4567",
			phone: "5551234567",
		},
		{
			in:    "my email is notanemail",
			email: "notanemail",
		},
		{
			in: "looking forward to the stay",
		},
	}
	for _, tc := range cases {
		got := e.ExtractGuestInfo(tc.in)
		if got.Name != tc.name {
			t.Errorf("ExtractGuestInfo(%q).Name = %q, want %q", tc.in, got.Name, tc.name)
		}
		if got.Phone != tc.phone {
			t.Errorf("ExtractGuestInfo(%q).Phone = %q, want %q", tc.in, got.Phone, tc.phone)
		}
		if got.Email != tc.email {
			t.Errorf("ExtractGuestInfo(%q).Email = %q, want %q", tc.in, got.Email, tc.email)
		}
	}
}

func TestExtractPayment(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()
	cases := []struct {
		in   string
		want string
	}{
		{"i will pay with my credit card", "Credit Card"},
		{"pay by card", "Credit Card"},
		{"visa", "Credit Card"},
		{"upi works for me", "UPI or Digital Wallet"},
		{"digital wallet", "UPI or Digital Wallet"},
		{"i will pay cash on arrival", "Pay at Hotel"},
		{"pay at the hotel", "Pay at Hotel"},
		{"gold bars", ""},
	}
	for _, tc := range cases {
		got := e.ExtractPayment(tc.in)
		if got.Method != tc.want {
			t.Errorf("ExtractPayment(%q) = %q, want %q", tc.in, got.Method, tc.want)
		}
	}
}

func TestExtractScopedByLabel(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()

	// Room wording in a guest-info utterance must not leak anywhere.
	intent := e.Extract("my name is King Family", nlp.IntentGuestInfo)
	info, ok := intent.(nlp.GuestInfoIntent)
	if !ok {
		t.Fatalf("Extract returned %T, want GuestInfoIntent", intent)
	}
	if info.Name != "King Family" {
		t.Errorf("Name = %q, want %q", info.Name, "King Family")
	}

	// The same text scoped as a room choice resolves a room instead.
	intent = e.Extract("deluxe king please", nlp.IntentChooseRoom)
	room, ok := intent.(nlp.RoomIntent)
	if !ok {
		t.Fatalf("Extract returned %T, want RoomIntent", intent)
	}
	if room.RoomType != "Deluxe King Room" {
		t.Errorf("RoomType = %q, want %q", room.RoomType, "Deluxe King Room")
	}
}

func TestExtractDatesCarriesGuestCounts(t *testing.T) {
	t.Parallel()

	e := nlp.NewExtractor()
	intent := e.Extract("check in July 15 to check out July 18, 2 adults and 1 child", nlp.IntentProvideDates)
	dates, ok := intent.(nlp.DatesIntent)
	if !ok {
		t.Fatalf("Extract returned %T, want DatesIntent", intent)
	}
	if dates.CheckIn.IsZero() || dates.CheckOut.IsZero() {
		t.Errorf("dates missing: in=%v out=%v", dates.CheckIn, dates.CheckOut)
	}
	if dates.Adults != 2 || dates.Children != 1 {
		t.Errorf("party = %d adults %d children, want 2/1", dates.Adults, dates.Children)
	}
}

func TestCanonicalCatalogResolution(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"exact room passes through", nlp.CanonicalRoomType("Executive Suite"), "Executive Suite"},
		{"loose room resolves", nlp.CanonicalRoomType("deluxe king"), "Deluxe King Room"},
		{"unknown room resolves to nothing", nlp.CanonicalRoomType("penthouse igloo"), ""},
		{"exact payment passes through", nlp.CanonicalPaymentMethod("Pay at Hotel"), "Pay at Hotel"},
		{"loose payment resolves", nlp.CanonicalPaymentMethod("visa card"), "Credit Card"},
		{"unknown payment resolves to nothing", nlp.CanonicalPaymentMethod("beads and shells"), ""},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}

	if nlp.IsRoomType("deluxe king") {
		t.Error("IsRoomType accepted a non-catalog spelling")
	}
	if !nlp.IsPaymentMethod("Credit Card") {
		t.Error("IsPaymentMethod refused a catalog name")
	}
}
