package dialogue

import (
	"time"

	"github.com/sirupsen/logrus"

	"ReservaGolang/pkg/nlp"
	"ReservaGolang/pkg/utils"
)

// Engine is the local understanding engine. It owns the corpus, the
// classifier and the dialogue machine, and is safe for concurrent use. There
// is exactly one way to get one: NewEngine. No package-level state.
type Engine struct {
	log        *logrus.Logger
	cfg        nlp.Config
	vectorizer *nlp.Vectorizer
	corpus     *nlp.Corpus
	classifier *nlp.Classifier
	patterns   *nlp.PatternMatcher
	extractor  *nlp.Extractor
	templates  *Templates
	machine    *machine
	sessions   *Manager
}

type EngineOption func(*engineSettings)

type engineSettings struct {
	cfg             nlp.Config
	log             *logrus.Logger
	newConfirmation func() string
}

func WithConfig(cfg nlp.Config) EngineOption {
	return func(s *engineSettings) { s.cfg = cfg }
}

func WithEngineLogger(log *logrus.Logger) EngineOption {
	return func(s *engineSettings) { s.log = log }
}

func WithConfirmationFunc(fn func() string) EngineOption {
	return func(s *engineSettings) { s.newConfirmation = fn }
}

func NewEngine(opts ...EngineOption) *Engine {
	settings := &engineSettings{
		cfg: nlp.DefaultConfig(),
		log: logrus.New(),
	}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.newConfirmation == nil {
		idGen := utils.New()
		settings.newConfirmation = func() string {
			id, err := idGen.NewULIDFromTimestamp(time.Now())
			if err != nil {
				return time.Now().UTC().Format("20060102150405.000000000")
			}
			return id
		}
	}

	vectorizer := nlp.NewVectorizer(settings.cfg.Dimension)
	corpus := nlp.NewCorpus(vectorizer, settings.cfg)
	templates := NewTemplates()

	return &Engine{
		log:        settings.log,
		cfg:        settings.cfg,
		vectorizer: vectorizer,
		corpus:     corpus,
		classifier: nlp.NewClassifier(vectorizer, corpus, settings.cfg),
		patterns:   nlp.NewPatternMatcher(),
		extractor:  nlp.NewExtractor(),
		templates:  templates,
		machine:    newMachine(templates, settings.newConfirmation),
		sessions:   NewManager(),
	}
}

func (e *Engine) Sessions() *Manager {
	return e.sessions
}

func (e *Engine) Corpus() *nlp.Corpus {
	return e.corpus
}

// ClassifyIntent tries the language's keyword table first, then the vector
// classifier. Nil means nothing cleared the threshold.
func (e *Engine) ClassifyIntent(text string, lang nlp.Language) *nlp.IntentMatch {
	if match := e.patterns.Match(text, lang); match != nil {
		return match
	}
	return e.classifier.Classify(text)
}

func (e *Engine) ExtractEntities(text string, label nlp.IntentLabel) nlp.Intent {
	return e.extractor.Extract(text, label)
}

// Suggest returns nearby corpus examples for a clarification prompt.
func (e *Engine) Suggest(text string, limit int) []string {
	return e.classifier.Suggest(text, limit)
}

// Train hot-appends a full-weight example. Concurrent classifications keep
// running against the corpus as it grows.
func (e *Engine) Train(text string, label nlp.IntentLabel) {
	e.corpus.AddExample(text, label, e.cfg.ExampleWeight)
	e.log.WithFields(logrus.Fields{
		"label":       label,
		"corpus_size": e.corpus.Len(),
	}).Info("training example added")
}

// AdvanceSession applies one understood turn to the session. A nil match
// reports no_intent_match and leaves the session untouched.
func (e *Engine) AdvanceSession(session *Session, match *nlp.IntentMatch) *AdvanceResult {
	if match == nil {
		return &AdvanceResult{
			Step:  session.Step,
			Reply: e.templates.Render(session.Language, tplNoMatch, "book a room"),
			Err:   &FlowError{Kind: ErrNoIntentMatch, Message: "no intent cleared the confidence threshold"},
		}
	}

	intent := match.Intent
	if intent == nil {
		// No entities attached, advance on the bare variant.
		intent = e.extractor.Extract("", match.Label)
	}

	result := e.machine.advance(session, intent)

	e.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"intent":     match.Label,
		"confidence": match.Confidence,
		"source":     match.Source,
		"step":       result.Step,
	}).Debug("session advanced")

	return result
}

// ProcessTurn is the whole turn in one call: classify, extract, advance.
// The caller holds the session lock via Manager.WithSession.
func (e *Engine) ProcessTurn(session *Session, text string) *AdvanceResult {
	match := e.ClassifyIntent(text, session.Language)
	if match == nil {
		suggestions := e.Suggest(text, 2)
		hint := "book a room"
		if len(suggestions) > 0 {
			hint = suggestions[0]
		}
		return &AdvanceResult{
			Step:  session.Step,
			Reply: e.templates.Render(session.Language, tplNoMatch, hint),
			Err:   &FlowError{Kind: ErrNoIntentMatch, Message: "no intent cleared the confidence threshold"},
		}
	}

	match.Intent = e.extractor.Extract(text, match.Label)
	return e.AdvanceSession(session, match)
}

// AdvanceExternal feeds a fallback interpretation, typically from a remote
// model, through the exact same advance path a local match takes.
func (e *Engine) AdvanceExternal(session *Session, label nlp.IntentLabel, entities map[string]string) *AdvanceResult {
	match := &nlp.IntentMatch{
		Label:      label,
		Confidence: 1.0,
		Source:     "external",
		Intent:     nlp.IntentFromExternal(label, entities),
	}
	return e.AdvanceSession(session, match)
}

func (e *Engine) ResetSession(session *Session) *AdvanceResult {
	session.Reset()
	return &AdvanceResult{Step: session.Step, Reply: e.templates.Render(session.Language, tplResetDone)}
}
