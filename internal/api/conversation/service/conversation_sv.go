package conversationService

import (
	"ReservaGolang/internal/api/conversation"
	"ReservaGolang/internal/entity"
	contextPkg "ReservaGolang/pkg/context"
	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/nlp"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (s *conversationService) ProcessMessage(ctx context.Context, req conversation.MessageRequest) (*conversation.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, conversation.ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else {
		s.restoreSessionFromCache(ctx, sessionID)
	}

	var (
		result  *dialogue.AdvanceResult
		match   *nlp.IntentMatch
		session dialogue.Session
	)

	err := s.engine.Sessions().WithSession(sessionID, func(sess *dialogue.Session) error {
		match = s.engine.ClassifyIntent(text, sess.Language)

		if match == nil && s.config.EnableFallback && s.gemini != nil {
			fallback := s.tryFallback(ctx, text, sess)
			if fallback != nil {
				match = fallback
			}
		}

		if match == nil {
			result = s.engine.AdvanceSession(sess, nil)
		} else {
			if match.Intent == nil {
				match.Intent = s.engine.ExtractEntities(text, match.Label)
			}
			result = s.engine.AdvanceSession(sess, match)
		}

		session = *sess
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to advance session")
		return nil, err
	}

	resp := s.buildResponse(sessionID, text, match, result)

	s.recordTurn(ctx, sessionID, text, match, result)
	s.cacheSession(ctx, &session)

	if result.Booking != nil {
		s.handleCompletedBooking(ctx, result.Booking)
	}

	return resp, nil
}

func (s *conversationService) ProcessVoiceMessage(ctx context.Context, req conversation.VoiceMessageRequest) (*conversation.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateAudioFile(req.AudioFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid audio file")
		return nil, conversation.ErrInvalidAudioFile
	}

	if req.AudioFile.Size > s.config.MaxAudioSize {
		return nil, conversation.ErrAudioFileTooLarge
	}

	audio, err := s.utils.ReadMultipartFile(req.AudioFile)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read audio file")
		return nil, conversation.ErrInvalidAudioFile
	}

	language := string(nlp.LangEnglish)
	if req.SessionID != "" {
		if snapshot, ok := s.engine.Sessions().Snapshot(req.SessionID); ok {
			language = string(snapshot.Language)
		}
	}

	transcript, err := s.speech.Transcribe(audio, language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
			"error":      err.Error(),
		}).Error("Failed to transcribe audio")
		return nil, conversation.ErrTranscriptionFailed
	}

	resp, err := s.ProcessMessage(ctx, conversation.MessageRequest{
		SessionID: req.SessionID,
		Text:      transcript,
	})
	if err != nil {
		return nil, err
	}

	resp.Transcript = transcript
	return resp, nil
}

func (s *conversationService) GetSessionState(ctx context.Context, sessionID string) (*conversation.SessionStateResponse, error) {
	s.restoreSessionFromCache(ctx, sessionID)

	snapshot, ok := s.engine.Sessions().Snapshot(sessionID)
	if !ok {
		return nil, conversation.ErrSessionNotFound
	}

	return &conversation.SessionStateResponse{
		SessionID: snapshot.ID,
		Language:  string(snapshot.Language),
		Step:      string(snapshot.Step),
		Slots:     slotsToMap(&snapshot.Slots),
		Missing:   snapshot.Slots.MissingFields(),
		UpdatedAt: snapshot.UpdatedAt,
	}, nil
}

func (s *conversationService) ResetSession(ctx context.Context, sessionID string) (*conversation.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var (
		result  *dialogue.AdvanceResult
		session dialogue.Session
	)

	err := s.engine.Sessions().WithSession(sessionID, func(sess *dialogue.Session) error {
		result = s.engine.ResetSession(sess)
		session = *sess
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to reset session")
		return nil, err
	}

	s.cacheSession(ctx, &session)

	return &conversation.MessageResponse{
		SessionID: sessionID,
		Reply:     result.Reply,
		Step:      string(result.Step),
	}, nil
}

func (s *conversationService) GetHistory(ctx context.Context, sessionID string, page, limit int) ([]conversation.TurnHistoryItem, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 {
		limit = s.config.HistoryPageSize
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	turns, total, err := repo.Turns.GetTurnsBySessionID(ctx, sessionID, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to load conversation history")
		return nil, 0, conversation.ErrHistoryUnavailable
	}

	items := make([]conversation.TurnHistoryItem, 0, len(turns))
	for _, turn := range turns {
		items = append(items, conversation.TurnHistoryItem{
			ID:         turn.ID,
			SessionID:  turn.SessionID,
			UserText:   turn.UserText,
			Intent:     turn.Intent,
			Confidence: turn.Confidence,
			Source:     turn.Source,
			Step:       turn.Step,
			Reply:      turn.Reply,
			CreatedAt:  turn.CreatedAt,
		})
	}

	return items, total, nil
}

func (s *conversationService) GetAnalytics(ctx context.Context) (*conversation.ConversationAnalytics, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)

	turns, err := repo.Turns.GetTurnsSince(ctx, since, 1000)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load turns for analytics")
		return nil, err
	}

	completed, err := repo.Turns.CountCompletedSince(ctx, since)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to count completed flows for analytics")
		return nil, err
	}

	analytics := &conversation.ConversationAnalytics{
		TotalTurns:     len(turns),
		IntentCounts:   make(map[string]int),
		SourceCounts:   make(map[string]int),
		AvgConfidence:  make(map[string]float64),
		CompletedFlows: completed,
	}

	confidenceSums := make(map[string]float64)
	for _, turn := range turns {
		if turn.Intent == "" {
			continue
		}
		analytics.MatchedTurns++
		analytics.IntentCounts[turn.Intent]++
		analytics.SourceCounts[turn.Source]++
		confidenceSums[turn.Intent] += turn.Confidence
	}

	for intent, sum := range confidenceSums {
		analytics.AvgConfidence[intent] = sum / float64(analytics.IntentCounts[intent])
	}

	if analytics.TotalTurns > 0 {
		analytics.MatchRate = float64(analytics.MatchedTurns) / float64(analytics.TotalTurns)
	}

	return analytics, nil
}

func (s *conversationService) GetSuggestions(ctx context.Context, sessionID string) (*conversation.SuggestionsResponse, error) {
	s.restoreSessionFromCache(ctx, sessionID)

	snapshot, ok := s.engine.Sessions().Snapshot(sessionID)
	if !ok {
		return nil, conversation.ErrSessionNotFound
	}

	return &conversation.SuggestionsResponse{
		SessionID:   sessionID,
		Step:        string(snapshot.Step),
		Suggestions: suggestionsForStep(snapshot.Step, s.config.SuggestionLimit),
	}, nil
}

func (s *conversationService) buildResponse(sessionID, text string, match *nlp.IntentMatch, result *dialogue.AdvanceResult) *conversation.MessageResponse {
	resp := &conversation.MessageResponse{
		SessionID: sessionID,
		Reply:     result.Reply,
		Step:      string(result.Step),
		Missing:   result.Missing,
	}

	if match != nil {
		resp.Intent = string(match.Label)
		resp.Confidence = match.Confidence
		resp.Source = match.Source
	}

	if result.Err != nil && result.Err.Kind == dialogue.ErrNoIntentMatch {
		resp.Suggestions = s.engine.Suggest(text, s.config.SuggestionLimit)
	}

	if result.Booking != nil {
		resp.Booking = &conversation.BookingSummary{
			ConfirmationNumber: result.Booking.ConfirmationNumber,
			GuestName:          result.Booking.GuestName,
			Email:              result.Booking.Email,
			Phone:              result.Booking.Phone,
			RoomType:           result.Booking.RoomType,
			CheckIn:            result.Booking.CheckIn.Format("2006-01-02"),
			CheckOut:           result.Booking.CheckOut.Format("2006-01-02"),
			Adults:             result.Booking.Adults,
			Children:           result.Booking.Children,
			PaymentMethod:      result.Booking.PaymentMethod,
		}
	}

	return resp
}

func (s *conversationService) recordTurn(ctx context.Context, sessionID, text string, match *nlp.IntentMatch, result *dialogue.AdvanceResult) {
	requestID := contextPkg.GetRequestID(ctx)

	turnID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate turn ID")
		return
	}

	turn := entity.ConversationTurn{
		ID:        turnID,
		SessionID: sessionID,
		UserText:  text,
		Step:      string(result.Step),
		Reply:     result.Reply,
		CreatedAt: time.Now(),
	}

	if match != nil {
		turn.Intent = string(match.Label)
		turn.Confidence = match.Confidence
		turn.Source = match.Source
	}

	if result.Err != nil {
		turn.Metadata = map[string]interface{}{
			"error_kind": string(result.Err.Kind),
		}
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return
	}

	if err := repo.Turns.CreateTurn(ctx, turn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist conversation turn")
	}
}

func (s *conversationService) cacheSession(ctx context.Context, session *dialogue.Session) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(session)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to marshal session for cache")
		return
	}

	ttl := time.Duration(s.config.SessionTTLMinutes) * time.Minute
	if err := s.redis.SetSession(ctx, session.ID, string(payload), ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Warn("Failed to cache session")
	}
}

// restoreSessionFromCache rehydrates a session that fell out of memory, for
// example after a restart. A cache miss is not an error, the session simply
// starts fresh when the next message arrives.
func (s *conversationService) restoreSessionFromCache(ctx context.Context, sessionID string) {
	if s.redis == nil {
		return
	}

	if _, ok := s.engine.Sessions().Snapshot(sessionID); ok {
		return
	}

	payload, err := s.redis.GetSession(ctx, sessionID)
	if err != nil || payload == "" {
		return
	}

	var cached dialogue.Session
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to decode cached session")
		return
	}

	_ = s.engine.Sessions().WithSession(sessionID, func(sess *dialogue.Session) error {
		sess.Language = cached.Language
		sess.Step = cached.Step
		sess.Slots = cached.Slots
		sess.ConfirmationNumber = cached.ConfirmationNumber
		sess.CreatedAt = cached.CreatedAt
		sess.UpdatedAt = cached.UpdatedAt
		return nil
	})
}

func slotsToMap(slots *dialogue.Slots) map[string]string {
	out := make(map[string]string)

	if !slots.CheckIn.IsZero() {
		out["check_in"] = slots.CheckIn.Format("2006-01-02")
	}
	if !slots.CheckOut.IsZero() {
		out["check_out"] = slots.CheckOut.Format("2006-01-02")
	}
	if slots.Adults > 0 {
		out["adults"] = strconv.Itoa(slots.Adults)
		out["children"] = strconv.Itoa(slots.Children)
	}
	if slots.RoomType != "" {
		out["room_type"] = slots.RoomType
	}
	if slots.GuestName != "" {
		out["guest_name"] = slots.GuestName
	}
	if slots.Phone != "" {
		out["phone"] = slots.Phone
	}
	if slots.Email != "" {
		out["email"] = slots.Email
	}
	if slots.PaymentMethod != "" {
		out["payment_method"] = slots.PaymentMethod
	}

	return out
}

func suggestionsForStep(step dialogue.Step, limit int) []string {
	var suggestions []string

	switch step {
	case dialogue.StepLanguage:
		suggestions = []string{"english", "bahasa indonesia", "español"}
	case dialogue.StepServiceSelect:
		suggestions = []string{"i want to book a room", "what's my booking status", "start over"}
	case dialogue.StepDates:
		suggestions = []string{"check in july 15 to check out july 18", "from 12/20 to 12/24", "2 adults and 1 child"}
	case dialogue.StepGuests:
		suggestions = []string{"2 adults and 1 child", "just one adult", "3 adults"}
	case dialogue.StepRoomSelect:
		suggestions = []string{"deluxe king room", "executive suite", "family room"}
	case dialogue.StepGuestInfo:
		suggestions = []string{"my name is John Smith, phone 5551234567, email john@example.com"}
	case dialogue.StepPayment:
		suggestions = []string{"credit card", "upi", "pay at hotel"}
	case dialogue.StepConfirmation:
		suggestions = []string{"yes, confirm", "what's missing", "start over"}
	case dialogue.StepComplete:
		suggestions = []string{"start over"}
	}

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}
