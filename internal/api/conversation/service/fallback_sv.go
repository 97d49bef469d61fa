package conversationService

import (
	contextPkg "ReservaGolang/pkg/context"
	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/nlp"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// tryFallback asks the remote model to interpret an utterance the local
// pipeline could not match. The interpretation re-enters the engine through
// the same advance path a local match takes, so every slot check still runs.
func (s *conversationService) tryFallback(ctx context.Context, text string, session *dialogue.Session) *nlp.IntentMatch {
	requestID := contextPkg.GetRequestID(ctx)

	fallbackCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.gemini.InterpretUtterance(fallbackCtx, text, string(session.Step), string(session.Language))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Warn("Fallback interpretation failed")
		return nil
	}

	label, ok := nlp.ParseIntentLabel(result.Label)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"label":      result.Label,
		}).Warn("Fallback returned unknown intent label")
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"label":      label,
	}).Debug("Fallback interpretation accepted")

	return &nlp.IntentMatch{
		Label:      label,
		Confidence: 1.0,
		Source:     "external",
		Intent:     nlp.IntentFromExternal(label, result.Entities),
	}
}
