package nlp_test

import (
	"testing"
	"time"

	"ReservaGolang/pkg/nlp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractDates(t *testing.T) {
	t.Parallel()

	now := date(2026, time.March, 1)

	cases := []struct {
		name       string
		in         string
		checkIn    time.Time
		checkOut   time.Time
		unassigned time.Time
	}{
		{
			name:     "explicit roles",
			in:       "check in July 15 to check out July 18",
			checkIn:  date(2026, time.July, 15),
			checkOut: date(2026, time.July, 18),
		},
		{
			name:     "from to range",
			in:       "from June 3 to June 7",
			checkIn:  date(2026, time.June, 3),
			checkOut: date(2026, time.June, 7),
		},
		{
			name:     "bare range reads in order",
			in:       "July 15 through July 18 would be perfect",
			checkIn:  date(2026, time.July, 15),
			checkOut: date(2026, time.July, 18),
		},
		{
			name:     "range tail inherits month",
			in:       "from july 15 to 18",
			checkIn:  date(2026, time.July, 15),
			checkOut: date(2026, time.July, 18),
		},
		{
			name:     "day month order",
			in:       "arriving on the 12th of August",
			checkIn:  date(2026, time.August, 12),
			checkOut: time.Time{},
		},
		{
			name:     "numeric with year",
			in:       "check out on 08/20/2026",
			checkOut: date(2026, time.August, 20),
		},
		{
			name:     "until marks departure",
			in:       "staying until September 2",
			checkOut: date(2026, time.September, 2),
		},
		{
			name:       "single bare date has no role",
			in:         "July 22 works for us",
			unassigned: date(2026, time.July, 22),
		},
		{
			name:     "month day with year",
			in:       "check in December 30, 2026",
			checkIn:  date(2026, time.December, 30),
			checkOut: time.Time{},
		},
		{
			name: "no dates at all",
			in:   "we love the ocean view",
		},
		{
			name: "impossible day rejected",
			in:   "check in February 30",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := nlp.ExtractDates(tc.in, now)
			if !got.CheckIn.Equal(tc.checkIn) {
				t.Errorf("CheckIn = %v, want %v", got.CheckIn, tc.checkIn)
			}
			if !got.CheckOut.Equal(tc.checkOut) {
				t.Errorf("CheckOut = %v, want %v", got.CheckOut, tc.checkOut)
			}
			if !got.Unassigned.Equal(tc.unassigned) {
				t.Errorf("Unassigned = %v, want %v", got.Unassigned, tc.unassigned)
			}
		})
	}
}

func TestExtractDatesYearDefaultsToCurrent(t *testing.T) {
	t.Parallel()

	got := nlp.ExtractDates("check in July 15", date(2031, time.January, 5))
	want := date(2031, time.July, 15)
	if !got.CheckIn.Equal(want) {
		t.Errorf("CheckIn = %v, want %v", got.CheckIn, want)
	}
}
