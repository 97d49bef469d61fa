package conversationHandler

import (
	conversationService "ReservaGolang/internal/api/conversation/service"
	"ReservaGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ConversationHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	conversationService conversationService.IConversationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs conversationService.IConversationService,
) *ConversationHandler {
	return &ConversationHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		conversationService: cs,
	}
}

func (h *ConversationHandler) Start(srv fiber.Router) {
	chat := srv.Group("/conversation")
	chat.Use(h.middleware.NewRateLimiter)

	// Turn processing
	chat.Post("/message", h.ProcessMessage)
	chat.Post("/voice", h.ProcessVoiceMessage)
	chat.Post("/reset", h.ResetSession)

	// Session inspection
	chat.Get("/session/:session_id", h.GetSessionState)
	chat.Get("/history/:session_id", h.GetHistory)
	chat.Get("/suggestions/:session_id", h.GetSuggestions)
	chat.Get("/analytics", h.GetAnalytics)

	// NLP testing and hot training (admin endpoints)
	nlp := chat.Group("/nlp")
	nlp.Post("/test", h.TestNLP)
	nlp.Get("/phrases", h.ListTrainingPhrases)
	nlp.Post("/phrases", h.AddTrainingPhrase)

	// Live chat over WebSocket
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleChatWebSocket))
}
