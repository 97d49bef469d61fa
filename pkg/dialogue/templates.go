package dialogue

import (
	"fmt"
	"strings"

	"ReservaGolang/pkg/nlp"
)

// Template keys used by the step handlers.
const (
	tplGreeting       = "greeting"
	tplPromptLanguage = "prompt_language"
	tplPromptService  = "prompt_service"
	tplPromptDates    = "prompt_dates"
	tplPromptGuests   = "prompt_guests"
	tplPromptRoom     = "prompt_room"
	tplPromptInfo     = "prompt_guest_info"
	tplPromptPayment  = "prompt_payment"
	tplPromptConfirm  = "prompt_confirm"
	tplCompleted      = "completed"
	tplResetDone      = "reset_done"
	tplMissing        = "missing"
	tplStatus         = "status"
	tplNothingMissing = "nothing_missing"
	tplNoMatch        = "no_match"
	tplAlreadyDone    = "already_done"
	tplRejected       = "rejected"
)

type Templates struct {
	byLang map[nlp.Language]map[string]string
}

func NewTemplates() *Templates {
	return &Templates{
		byLang: map[nlp.Language]map[string]string{
			nlp.LangEnglish: {
				tplGreeting:       "Welcome! I can help you book a hotel room.",
				tplPromptLanguage: "Which language would you like to use? English, Bahasa Indonesia or Español.",
				tplPromptService:  "Great. Would you like to book a room?",
				tplPromptDates:    "When would you like to stay? Please give me your check-in and check-out dates.",
				tplPromptGuests:   "How many guests? For example, 2 adults and 1 child.",
				tplPromptRoom:     "Which room would you like? We have Standard Room, Deluxe King, Deluxe Twin, Executive Suite and Family Room.",
				tplPromptInfo:     "Almost there. Please share your name, phone number and email address.",
				tplPromptPayment:  "How would you like to pay? Credit Card, UPI or Digital Wallet, or Pay at Hotel.",
				tplPromptConfirm:  "Please review your booking: %s. Shall I confirm it?",
				tplCompleted:      "Your booking is confirmed! Confirmation number: %s. We look forward to your stay.",
				tplResetDone:      "No problem, I cleared everything. Let's start again. Which language would you like to use?",
				tplMissing:        "I still need: %s.",
				tplStatus:         "So far I have: %s. I still need: %s.",
				tplNothingMissing: "I have everything I need. Say confirm to finish your booking.",
				tplNoMatch:        "Sorry, I didn't quite catch that. You could try something like: %s.",
				tplAlreadyDone:    "This booking is already complete. Say reset if you'd like to make a new one.",
				tplRejected:       "I couldn't use part of that: %s.",
			},
			nlp.LangIndonesian: {
				tplGreeting:       "Selamat datang! Saya bisa bantu pesan kamar hotel.",
				tplPromptLanguage: "Mau pakai bahasa apa? English, Bahasa Indonesia atau Español.",
				tplPromptService:  "Baik. Apakah Anda ingin memesan kamar?",
				tplPromptDates:    "Kapan Anda ingin menginap? Sebutkan tanggal check-in dan check-out.",
				tplPromptGuests:   "Berapa jumlah tamu? Misalnya, 2 dewasa dan 1 anak.",
				tplPromptRoom:     "Mau kamar yang mana? Ada Standard Room, Deluxe King, Deluxe Twin, Executive Suite dan Family Room.",
				tplPromptInfo:     "Hampir selesai. Mohon sebutkan nama, nomor telepon dan alamat email Anda.",
				tplPromptPayment:  "Bagaimana cara pembayarannya? Credit Card, UPI or Digital Wallet, atau Pay at Hotel.",
				tplPromptConfirm:  "Mohon periksa pesanan Anda: %s. Boleh saya konfirmasi?",
				tplCompleted:      "Pesanan Anda terkonfirmasi! Nomor konfirmasi: %s. Sampai jumpa di hotel.",
				tplResetDone:      "Baik, semua sudah saya hapus. Mari mulai lagi. Mau pakai bahasa apa?",
				tplMissing:        "Saya masih butuh: %s.",
				tplStatus:         "Sejauh ini saya punya: %s. Saya masih butuh: %s.",
				tplNothingMissing: "Semua data sudah lengkap. Ucapkan konfirmasi untuk menyelesaikan pesanan.",
				tplNoMatch:        "Maaf, saya kurang paham. Coba ucapkan misalnya: %s.",
				tplAlreadyDone:    "Pesanan ini sudah selesai. Ucapkan ulang dari awal jika ingin memesan lagi.",
				tplRejected:       "Sebagian data tidak bisa dipakai: %s.",
			},
			nlp.LangSpanish: {
				tplGreeting:       "¡Bienvenido! Puedo ayudarle a reservar una habitación.",
				tplPromptLanguage: "¿Qué idioma prefiere? English, Bahasa Indonesia o Español.",
				tplPromptService:  "Perfecto. ¿Desea reservar una habitación?",
				tplPromptDates:    "¿Cuándo desea hospedarse? Indique sus fechas de llegada y salida.",
				tplPromptGuests:   "¿Cuántos huéspedes? Por ejemplo, 2 adultos y 1 niño.",
				tplPromptRoom:     "¿Qué habitación prefiere? Tenemos Standard Room, Deluxe King, Deluxe Twin, Executive Suite y Family Room.",
				tplPromptInfo:     "Casi listo. Comparta su nombre, teléfono y correo electrónico.",
				tplPromptPayment:  "¿Cómo desea pagar? Credit Card, UPI or Digital Wallet, o Pay at Hotel.",
				tplPromptConfirm:  "Revise su reserva: %s. ¿La confirmo?",
				tplCompleted:      "¡Su reserva está confirmada! Número de confirmación: %s. Le esperamos.",
				tplResetDone:      "Sin problema, borré todo. Empecemos de nuevo. ¿Qué idioma prefiere?",
				tplMissing:        "Todavía necesito: %s.",
				tplStatus:         "Hasta ahora tengo: %s. Todavía necesito: %s.",
				tplNothingMissing: "Tengo todo lo necesario. Diga confirmar para terminar su reserva.",
				tplNoMatch:        "Perdón, no le entendí. Puede intentar algo como: %s.",
				tplAlreadyDone:    "Esta reserva ya está completa. Diga cancelar para hacer una nueva.",
				tplRejected:       "No pude usar parte de eso: %s.",
			},
		},
	}
}

func (t *Templates) Render(lang nlp.Language, key string, args ...interface{}) string {
	table, ok := t.byLang[lang]
	if !ok {
		table = t.byLang[nlp.LangEnglish]
	}
	text, ok := table[key]
	if !ok {
		text = t.byLang[nlp.LangEnglish][key]
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// Captured renders the slots already filled, in capture order. Empty when
// nothing is filled yet.
func (t *Templates) Captured(s *Slots) string {
	var parts []string
	if !s.CheckIn.IsZero() {
		parts = append(parts, "check-in "+s.CheckIn.Format("Jan 2, 2006"))
	}
	if !s.CheckOut.IsZero() {
		parts = append(parts, "check-out "+s.CheckOut.Format("Jan 2, 2006"))
	}
	if s.Adults > 0 {
		parts = append(parts, fmt.Sprintf("%d adult(s)", s.Adults))
	}
	if s.Children > 0 {
		parts = append(parts, fmt.Sprintf("%d child(ren)", s.Children))
	}
	if s.RoomType != "" {
		parts = append(parts, s.RoomType)
	}
	if s.GuestName != "" {
		parts = append(parts, s.GuestName)
	}
	if s.Phone != "" {
		parts = append(parts, s.Phone)
	}
	if s.Email != "" {
		parts = append(parts, s.Email)
	}
	if s.PaymentMethod != "" {
		parts = append(parts, s.PaymentMethod)
	}
	return strings.Join(parts, ", ")
}

// Summary renders the one-line booking recap shown before confirmation.
func (t *Templates) Summary(s *Slots) string {
	parts := []string{
		fmt.Sprintf("%s from %s to %s", s.RoomType, s.CheckIn.Format("Jan 2, 2006"), s.CheckOut.Format("Jan 2, 2006")),
		fmt.Sprintf("%d adult(s), %d child(ren)", s.Adults, s.Children),
		fmt.Sprintf("for %s (%s, %s)", s.GuestName, s.Phone, s.Email),
		fmt.Sprintf("paying by %s", s.PaymentMethod),
	}
	return strings.Join(parts, ", ")
}
