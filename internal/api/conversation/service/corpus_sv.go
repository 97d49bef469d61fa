package conversationService

import (
	"ReservaGolang/internal/api/conversation"
	"ReservaGolang/internal/entity"
	contextPkg "ReservaGolang/pkg/context"
	"ReservaGolang/pkg/nlp"
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *conversationService) TestNLP(ctx context.Context, req conversation.NLPTestRequest) (*conversation.NLPTestResponse, error) {
	started := time.Now()

	lang := nlp.Language(req.Language)
	if req.Language == "" {
		lang = nlp.DetectLanguage(req.Text)
	}

	resp := &conversation.NLPTestResponse{
		Input:    req.Text,
		Language: string(lang),
		Processing: conversation.ProcessingDetail{
			CleanedText: nlp.CleanText(req.Text),
			CorpusSize:  s.engine.Corpus().Len(),
		},
	}

	match := s.engine.ClassifyIntent(req.Text, lang)
	if match != nil {
		resp.Intent = string(match.Label)
		resp.Confidence = match.Confidence
		resp.Source = match.Source
		resp.Entities = entitiesToMap(s.engine.ExtractEntities(req.Text, match.Label))
	}

	resp.Processing.ProcessingTime = time.Since(started).String()

	return resp, nil
}

func (s *conversationService) ListTrainingPhrases(ctx context.Context) ([]conversation.TrainingPhraseItem, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	phrases, err := repo.Phrases.GetAllTrainingPhrases(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]conversation.TrainingPhraseItem, 0, len(phrases))
	for _, phrase := range phrases {
		items = append(items, conversation.TrainingPhraseItem{
			ID:        phrase.ID,
			Text:      phrase.Text,
			Label:     phrase.Label,
			Weight:    phrase.Weight,
			CreatedAt: phrase.CreatedAt,
		})
	}

	return items, nil
}

func (s *conversationService) AddTrainingPhrase(ctx context.Context, req conversation.TrainingPhraseRequest) (*conversation.TrainingPhraseItem, error) {
	requestID := contextPkg.GetRequestID(ctx)

	label, ok := nlp.ParseIntentLabel(req.Label)
	if !ok {
		return nil, conversation.ErrUnknownIntentLabel
	}

	weight := req.Weight
	if weight == 0 {
		weight = 1.0
	}

	phraseID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	phrase := entity.TrainingPhrase{
		ID:        phraseID,
		Text:      req.Text,
		Label:     string(label),
		Weight:    weight,
		CreatedAt: time.Now(),
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if err := repo.Phrases.CreateTrainingPhrase(ctx, phrase); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"label":      label,
			"error":      err.Error(),
		}).Error("Failed to persist training phrase")
		return nil, err
	}

	s.engine.Train(req.Text, label)

	return &conversation.TrainingPhraseItem{
		ID:        phrase.ID,
		Text:      phrase.Text,
		Label:     phrase.Label,
		Weight:    phrase.Weight,
		CreatedAt: phrase.CreatedAt,
	}, nil
}

// LoadTrainingPhrases replays persisted phrases into the corpus. Called once
// at startup so hot training survives restarts.
func (s *conversationService) LoadTrainingPhrases(ctx context.Context) error {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	phrases, err := repo.Phrases.GetAllTrainingPhrases(ctx)
	if err != nil {
		return err
	}

	loaded := 0
	for _, phrase := range phrases {
		label, ok := nlp.ParseIntentLabel(phrase.Label)
		if !ok {
			s.log.WithFields(logrus.Fields{
				"phrase_id": phrase.ID,
				"label":     phrase.Label,
			}).Warn("Skipping training phrase with unknown label")
			continue
		}
		s.engine.Train(phrase.Text, label)
		loaded++
	}

	s.log.WithFields(logrus.Fields{
		"loaded":      loaded,
		"corpus_size": s.engine.Corpus().Len(),
	}).Info("Training phrases loaded")

	return nil
}

func entitiesToMap(intent nlp.Intent) map[string]string {
	out := make(map[string]string)

	switch v := intent.(type) {
	case nlp.LanguageIntent:
		if v.Language != "" {
			out["language"] = string(v.Language)
		}
	case nlp.DatesIntent:
		if !v.CheckIn.IsZero() {
			out["check_in"] = v.CheckIn.Format("2006-01-02")
		}
		if !v.CheckOut.IsZero() {
			out["check_out"] = v.CheckOut.Format("2006-01-02")
		}
		if !v.Unassigned.IsZero() {
			out["date"] = v.Unassigned.Format("2006-01-02")
		}
		if v.Adults > 0 {
			out["adults"] = strconv.Itoa(v.Adults)
		}
		if v.Children > 0 {
			out["children"] = strconv.Itoa(v.Children)
		}
	case nlp.GuestsIntent:
		if v.Adults > 0 {
			out["adults"] = strconv.Itoa(v.Adults)
		}
		if v.Children > 0 {
			out["children"] = strconv.Itoa(v.Children)
		}
	case nlp.RoomIntent:
		if v.RoomType != "" {
			out["room_type"] = v.RoomType
		}
	case nlp.GuestInfoIntent:
		if v.Name != "" {
			out["guest_name"] = v.Name
		}
		if v.Phone != "" {
			out["phone"] = v.Phone
		}
		if v.Email != "" {
			out["email"] = v.Email
		}
	case nlp.PaymentIntent:
		if v.Method != "" {
			out["payment_method"] = v.Method
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
