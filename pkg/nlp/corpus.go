package nlp

import "sync"

type TrainingExample struct {
	Text   string      `json:"text"`
	Label  IntentLabel `json:"label"`
	Weight float64     `json:"weight"`
	vector []float64
}

// Corpus holds the pre-vectorized training examples. Entries are append-only:
// hot training adds new examples without touching existing vectors, so
// classification stays deterministic for everything already learned.
type Corpus struct {
	mu         sync.RWMutex
	vectorizer *Vectorizer
	entries    []TrainingExample
}

func NewCorpus(vectorizer *Vectorizer, cfg Config) *Corpus {
	c := &Corpus{vectorizer: vectorizer}

	for _, seed := range seedExamples() {
		c.add(seed.text, seed.label, cfg.ExampleWeight)
	}
	for _, seed := range seedKeywordEntries() {
		c.add(seed.text, seed.label, cfg.KeywordWeight)
	}

	return c
}

// NewCorpusFromSeed builds a corpus from explicit examples instead of the
// stock set. The stock examples are a swappable fixture, not ground truth.
func NewCorpusFromSeed(vectorizer *Vectorizer, examples []TrainingExample) *Corpus {
	c := &Corpus{vectorizer: vectorizer}
	for _, ex := range examples {
		c.add(ex.Text, ex.Label, ex.Weight)
	}
	return c
}

// AddExample appends a full-weight training example at runtime.
func (c *Corpus) AddExample(text string, label IntentLabel, weight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(text, label, weight)
}

func (c *Corpus) add(text string, label IntentLabel, weight float64) {
	c.entries = append(c.entries, TrainingExample{
		Text:   text,
		Label:  label,
		Weight: weight,
		vector: c.vectorizer.Vectorize(text),
	})
}

func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Corpus) Examples() []TrainingExample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]TrainingExample, len(c.entries))
	copy(out, c.entries)
	return out
}

// snapshot returns the live entry slice. Appends only ever grow the slice,
// readers iterating a snapshot never observe a partial entry.
func (c *Corpus) snapshot() []TrainingExample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

type seedEntry struct {
	text  string
	label IntentLabel
}

func seedExamples() []seedEntry {
	return []seedEntry{
		// greeting
		{"hello", IntentGreeting},
		{"hi there", IntentGreeting},
		{"good morning", IntentGreeting},
		{"halo selamat pagi", IntentGreeting},
		{"hola buenos dias", IntentGreeting},

		// language selection
		{"i want to continue in english", IntentSelectLanguage},
		{"english please", IntentSelectLanguage},
		{"saya mau pakai bahasa indonesia", IntentSelectLanguage},
		{"bahasa indonesia saja", IntentSelectLanguage},
		{"quiero continuar en espanol", IntentSelectLanguage},
		{"espanol por favor", IntentSelectLanguage},

		// booking
		{"i want to book a room", IntentBookRoom},
		{"i would like to make a reservation", IntentBookRoom},
		{"can i reserve a hotel room", IntentBookRoom},
		{"book a room for me please", IntentBookRoom},
		{"saya mau pesan kamar", IntentBookRoom},
		{"saya ingin reservasi kamar hotel", IntentBookRoom},
		{"quiero reservar una habitacion", IntentBookRoom},
		{"me gustaria hacer una reserva", IntentBookRoom},

		// dates
		{"i want to check in on july 15 and check out on july 18", IntentProvideDates},
		{"from june 3 to june 7", IntentProvideDates},
		{"arriving on the 12th of august", IntentProvideDates},
		{"check out on 08/20", IntentProvideDates},
		{"we are staying from monday until friday", IntentProvideDates},
		{"check in tanggal 15 juli check out 18 juli", IntentProvideDates},
		{"llegada el 15 de julio salida el 18", IntentProvideDates},

		// guests
		{"2 adults and 1 child", IntentProvideGuests},
		{"we are four adults", IntentProvideGuests},
		{"two adults with two kids", IntentProvideGuests},
		{"just one adult no children", IntentProvideGuests},
		{"dua dewasa satu anak", IntentProvideGuests},
		{"dos adultos y un nino", IntentProvideGuests},

		// room selection
		{"i want the deluxe king room", IntentChooseRoom},
		{"give me a standard room", IntentChooseRoom},
		{"the executive suite please", IntentChooseRoom},
		{"a family room would be great", IntentChooseRoom},
		{"saya pilih kamar deluxe", IntentChooseRoom},
		{"la habitacion familiar por favor", IntentChooseRoom},

		// guest info
		{"my name is john smith", IntentGuestInfo},
		{"i am maria garcia and my phone is 5551234567", IntentGuestInfo},
		{"this is robert, email robert@example.com", IntentGuestInfo},
		{"you can reach me at 4155550123", IntentGuestInfo},
		{"nama saya budi santoso", IntentGuestInfo},
		{"mi nombre es carlos lopez", IntentGuestInfo},

		// payment
		{"i will pay with my credit card", IntentChoosePayment},
		{"pay by card", IntentChoosePayment},
		{"i prefer upi", IntentChoosePayment},
		{"digital wallet please", IntentChoosePayment},
		{"i will pay at the hotel", IntentChoosePayment},
		{"cash on arrival", IntentChoosePayment},
		{"bayar di hotel saja", IntentChoosePayment},
		{"pagare en el hotel", IntentChoosePayment},

		// confirm / advance
		{"yes confirm the booking", IntentConfirm},
		{"that is correct go ahead", IntentConfirm},
		{"looks good confirm it", IntentConfirm},
		{"ya benar lanjutkan", IntentConfirm},
		{"si confirmar la reserva", IntentConfirm},

		// reset
		{"cancel everything and start over", IntentReset},
		{"reset the booking", IntentReset},
		{"forget all of that", IntentReset},
		{"batalkan semua ulangi dari awal", IntentReset},
		{"cancelar todo y empezar de nuevo", IntentReset},

		// status
		{"what is still missing", IntentStatus},
		{"what do you need from me", IntentStatus},
		{"what information is left", IntentStatus},
		{"apa yang masih kurang", IntentStatus},
		{"que falta todavia", IntentStatus},
	}
}

// seedKeywordEntries are short keyword phrases folded into the corpus at the
// keyword weight. They anchor single-word utterances the longer examples
// would otherwise dilute.
func seedKeywordEntries() []seedEntry {
	return []seedEntry{
		{"book", IntentBookRoom},
		{"reservation", IntentBookRoom},
		{"reserve", IntentBookRoom},
		{"pesan kamar", IntentBookRoom},
		{"reservar", IntentBookRoom},
		{"check in check out dates", IntentProvideDates},
		{"adults children guests", IntentProvideGuests},
		{"deluxe suite standard family room", IntentChooseRoom},
		{"name phone email contact", IntentGuestInfo},
		{"credit card upi wallet cash payment", IntentChoosePayment},
		{"yes confirm correct", IntentConfirm},
		{"cancel restart reset", IntentReset},
		{"missing remaining status", IntentStatus},
		{"english indonesian spanish language", IntentSelectLanguage},
	}
}
