package nlp

import (
	"strconv"
	"time"
)

// IntentFromExternal builds a typed intent from the flat entity map a remote
// fallback model returns. Unknown keys are ignored, unparsable values leave
// their field empty, room and payment resolve through the catalog matcher so
// free text never reaches the slots, the dialogue layer validates the rest.
func IntentFromExternal(label IntentLabel, entities map[string]string) Intent {
	switch label {
	case IntentSelectLanguage:
		lang := Language(entities["language"])
		switch lang {
		case LangEnglish, LangIndonesian, LangSpanish:
			return LanguageIntent{Language: lang}
		}
		return LanguageIntent{Language: LangEnglish}
	case IntentProvideDates:
		adults, _ := strconv.Atoi(entities["adults"])
		children, _ := strconv.Atoi(entities["children"])
		return DatesIntent{
			CheckIn:  parseExternalDate(entities["check_in"]),
			CheckOut: parseExternalDate(entities["check_out"]),
			Adults:   adults,
			Children: children,
		}
	case IntentProvideGuests:
		adults, _ := strconv.Atoi(entities["adults"])
		children, _ := strconv.Atoi(entities["children"])
		return GuestsIntent{Adults: adults, Children: children}
	case IntentChooseRoom:
		return RoomIntent{RoomType: CanonicalRoomType(entities["room_type"])}
	case IntentGuestInfo:
		name := entities["guest_name"]
		if name == "" {
			name = entities["name"]
		}
		return GuestInfoIntent{
			Name:  name,
			Phone: entities["phone"],
			Email: entities["email"],
		}
	case IntentChoosePayment:
		method := entities["payment_method"]
		if method == "" {
			method = entities["method"]
		}
		return PaymentIntent{Method: CanonicalPaymentMethod(method)}
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

func parseExternalDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Truncate(24 * time.Hour)
		}
	}
	return time.Time{}
}
