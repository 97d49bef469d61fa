package conversationService

import (
	"ReservaGolang/internal/api/conversation"
	conversationRepository "ReservaGolang/internal/api/conversation/repository"
	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/gemini"
	"ReservaGolang/pkg/redis"
	"ReservaGolang/pkg/smtp"
	"ReservaGolang/pkg/utils"
	websocketPkg "ReservaGolang/pkg/websocket"
	"ReservaGolang/pkg/whatsapp"
	"context"

	"github.com/sirupsen/logrus"
)

type IConversationService interface {
	ProcessMessage(ctx context.Context, req conversation.MessageRequest) (*conversation.MessageResponse, error)
	ProcessVoiceMessage(ctx context.Context, req conversation.VoiceMessageRequest) (*conversation.MessageResponse, error)
	GetSessionState(ctx context.Context, sessionID string) (*conversation.SessionStateResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*conversation.MessageResponse, error)

	GetHistory(ctx context.Context, sessionID string, page, limit int) ([]conversation.TurnHistoryItem, int, error)
	GetAnalytics(ctx context.Context) (*conversation.ConversationAnalytics, error)
	GetSuggestions(ctx context.Context, sessionID string) (*conversation.SuggestionsResponse, error)

	TestNLP(ctx context.Context, req conversation.NLPTestRequest) (*conversation.NLPTestResponse, error)
	ListTrainingPhrases(ctx context.Context) ([]conversation.TrainingPhraseItem, error)
	AddTrainingPhrase(ctx context.Context, req conversation.TrainingPhraseRequest) (*conversation.TrainingPhraseItem, error)
	LoadTrainingPhrases(ctx context.Context) error
}

type conversationService struct {
	log      *logrus.Logger
	repo     conversationRepository.Repository
	engine   *dialogue.Engine
	redis    redis.IRedis
	gemini   gemini.IGemini
	speech   websocketPkg.ISpeechGateway
	whatsapp whatsapp.IWhatsappSender
	mailer   smtp.ItfSmtp
	utils    utils.IUtils
	config   *ConversationConfig
}

type ConversationConfig struct {
	MaxAudioSize      int64 `json:"max_audio_size"`
	SessionTTLMinutes int   `json:"session_ttl_minutes"`
	HistoryPageSize   int   `json:"history_page_size"`
	SuggestionLimit   int   `json:"suggestion_limit"`
	EnableFallback    bool  `json:"enable_fallback"`
	NotifyOnBooking   bool  `json:"notify_on_booking"`
}

func DefaultConfig() *ConversationConfig {
	return &ConversationConfig{
		MaxAudioSize:      10 * 1024 * 1024,
		SessionTTLMinutes: 30,
		HistoryPageSize:   20,
		SuggestionLimit:   3,
		EnableFallback:    true,
		NotifyOnBooking:   true,
	}
}

func NewConversationService(
	log *logrus.Logger,
	repo conversationRepository.Repository,
	engine *dialogue.Engine,
	redisClient redis.IRedis,
	geminiClient gemini.IGemini,
	speech websocketPkg.ISpeechGateway,
	whatsappSender whatsapp.IWhatsappSender,
	mailer smtp.ItfSmtp,
	utilsPkg utils.IUtils,
	config *ConversationConfig,
) IConversationService {
	if config == nil {
		config = DefaultConfig()
	}

	return &conversationService{
		log:      log,
		repo:     repo,
		engine:   engine,
		redis:    redisClient,
		gemini:   geminiClient,
		speech:   speech,
		whatsapp: whatsappSender,
		mailer:   mailer,
		utils:    utilsPkg,
		config:   config,
	}
}
