package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January, "januari": time.January, "enero": time.January,
	"february": time.February, "feb": time.February, "februari": time.February, "febrero": time.February,
	"march": time.March, "mar": time.March, "maret": time.March, "marzo": time.March,
	"april": time.April, "apr": time.April, "abril": time.April,
	"may": time.May, "mei": time.May, "mayo": time.May,
	"june": time.June, "jun": time.June, "juni": time.June, "junio": time.June,
	"july": time.July, "jul": time.July, "juli": time.July, "julio": time.July,
	"august": time.August, "aug": time.August, "agustus": time.August, "agosto": time.August,
	"september": time.September, "sep": time.September, "sept": time.September, "septiembre": time.September,
	"october": time.October, "oct": time.October, "oktober": time.October, "octubre": time.October,
	"november": time.November, "nov": time.November, "noviembre": time.November,
	"december": time.December, "dec": time.December, "desember": time.December, "diciembre": time.December,
}

const monthAlternatives = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`januari|februari|maret|mei|juni|juli|agustus|oktober|desember|` +
	`enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	monthDayPattern = regexp.MustCompile(`\b(` + monthAlternatives + `)\s+(\d{1,2})(?:st|nd|rd|th)?(?:\s*,?\s*(\d{4}))?\b`)
	dayMonthPattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+|de\s+)?(` + monthAlternatives + `)(?:\s+(?:de\s+)?(\d{4}))?\b`)
	numericPattern  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	rangeTailDay    = regexp.MustCompile(`\b(?:to|until|till|through|hasta|sampai)\s+(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)?\b`)
)

var (
	checkInMarkers  = []string{"check in", "check-in", "checkin", "arriving", "arrival", "arrive", "starting", "from", "llegada", "llegando", "desde", "masuk", "mulai", "dari"}
	checkOutMarkers = []string{"check out", "check-out", "checkout", "departing", "departure", "depart", "leaving", "until", "till", "through", "salida", "hasta", "keluar", "sampai"}
)

type dateMention struct {
	date  time.Time
	start int
	end   int
}

// ExtractDates finds up to two dates and assigns check-in and check-out roles
// from the surrounding wording. A single date with no role wording lands in
// Unassigned, the dialogue layer puts it in the first empty slot.
func ExtractDates(text string, now time.Time) DatesIntent {
	lower := strings.ToLower(text)
	mentions := collectDateMentions(lower, now)
	if len(mentions) == 0 {
		return DatesIntent{}
	}

	var out DatesIntent
	var unassigned []dateMention
	for _, m := range mentions {
		// A role whose slot is already taken spills the date to the other
		// one, "from july 15 to 18" keeps both dates.
		switch dateRole(lower, m.start) {
		case "check_out":
			if out.CheckOut.IsZero() {
				out.CheckOut = m.date
			} else if out.CheckIn.IsZero() {
				out.CheckIn = m.date
			}
		case "check_in":
			if out.CheckIn.IsZero() {
				out.CheckIn = m.date
			} else if out.CheckOut.IsZero() {
				out.CheckOut = m.date
			}
		default:
			unassigned = append(unassigned, m)
		}
	}

	// A lone bare date keeps no role, the session decides. Multiple bare
	// dates read as a range, earlier mention first.
	if len(mentions) == 1 && len(unassigned) == 1 {
		out.Unassigned = unassigned[0].date
		return out
	}
	for _, m := range unassigned {
		switch {
		case out.CheckIn.IsZero():
			out.CheckIn = m.date
		case out.CheckOut.IsZero():
			out.CheckOut = m.date
		}
	}

	return out
}

func collectDateMentions(lower string, now time.Time) []dateMention {
	var mentions []dateMention

	appendMention := func(date time.Time, start, end int) {
		for _, m := range mentions {
			if start < m.end && end > m.start {
				return // overlapping span already captured
			}
		}
		mentions = append(mentions, dateMention{date: date, start: start, end: end})
	}

	for _, idx := range monthDayPattern.FindAllStringSubmatchIndex(lower, -1) {
		month := monthNames[lower[idx[2]:idx[3]]]
		day, _ := strconv.Atoi(lower[idx[4]:idx[5]])
		year := yearOrDefault(lower, idx[6], idx[7], now)
		if d, ok := makeDate(year, month, day); ok {
			appendMention(d, idx[0], idx[1])
		}
	}

	for _, idx := range dayMonthPattern.FindAllStringSubmatchIndex(lower, -1) {
		day, _ := strconv.Atoi(lower[idx[2]:idx[3]])
		month := monthNames[lower[idx[4]:idx[5]]]
		year := yearOrDefault(lower, idx[6], idx[7], now)
		if d, ok := makeDate(year, month, day); ok {
			appendMention(d, idx[0], idx[1])
		}
	}

	for _, idx := range numericPattern.FindAllStringSubmatchIndex(lower, -1) {
		monthNum, _ := strconv.Atoi(lower[idx[2]:idx[3]])
		day, _ := strconv.Atoi(lower[idx[4]:idx[5]])
		year := now.Year()
		if idx[6] >= 0 {
			year, _ = strconv.Atoi(lower[idx[6]:idx[7]])
			if year < 100 {
				year += 2000
			}
		}
		if monthNum < 1 || monthNum > 12 {
			continue
		}
		if d, ok := makeDate(year, time.Month(monthNum), day); ok {
			appendMention(d, idx[0], idx[1])
		}
	}

	// "from july 15 to 18": a bare day after a range word inherits the month
	// of the previous mention.
	if len(mentions) == 1 {
		prev := mentions[0]
		for _, idx := range rangeTailDay.FindAllStringSubmatchIndex(lower, -1) {
			if idx[0] < prev.end {
				continue
			}
			day, _ := strconv.Atoi(lower[idx[2]:idx[3]])
			if d, ok := makeDate(prev.date.Year(), prev.date.Month(), day); ok {
				appendMention(d, idx[0], idx[1])
				break
			}
		}
	}

	return mentions
}

// dateRole inspects the wording just before a date mention. Check-out
// markers win over check-in markers so "check in july 15 to check out july
// 18" assigns the second date correctly even though "to" sits in between.
func dateRole(lower string, start int) string {
	windowStart := start - 25
	if windowStart < 0 {
		windowStart = 0
	}
	window := lower[windowStart:start]

	outPos, inPos := -1, -1
	for _, marker := range checkOutMarkers {
		if p := strings.LastIndex(window, marker); p > outPos {
			outPos = p
		}
	}
	for _, marker := range checkInMarkers {
		if p := strings.LastIndex(window, marker); p > inPos {
			inPos = p
		}
	}

	switch {
	case outPos < 0 && inPos < 0:
		return ""
	case outPos >= inPos:
		return "check_out"
	default:
		return "check_in"
	}
}

func yearOrDefault(lower string, start, end int, now time.Time) int {
	if start >= 0 {
		year, _ := strconv.Atoi(lower[start:end])
		return year
	}
	return now.Year()
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false // e.g. february 30 rolled over
	}
	return d, true
}
