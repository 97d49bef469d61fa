package config

import (
	"ReservaGolang/database/postgres"
	conversationHandler "ReservaGolang/internal/api/conversation/handler"
	conversationRepository "ReservaGolang/internal/api/conversation/repository"
	conversationService "ReservaGolang/internal/api/conversation/service"
	"ReservaGolang/internal/middleware"
	"ReservaGolang/pkg/dialogue"
	"ReservaGolang/pkg/gemini"
	"ReservaGolang/pkg/redis"
	"ReservaGolang/pkg/smtp"
	"ReservaGolang/pkg/utils"
	websocketPkg "ReservaGolang/pkg/websocket"
	"ReservaGolang/pkg/whatsapp"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	dialogueEngine *dialogue.Engine
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	speechGateway  websocketPkg.ISpeechGateway
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini

	conversationServices conversationService.IConversationService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithDialogueEngine() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the dialogue engine")
		}
		s.dialogueEngine = dialogue.NewEngine(dialogue.WithEngineLogger(s.log))
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithSpeechGateway(gateway websocketPkg.ISpeechGateway) ServerOption {
	return func(s *Server) error {
		s.speechGateway = gateway
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Conversation Domain
	conversationRepo := conversationRepository.New(s.db, s.log)
	s.conversationServices = conversationService.NewConversationService(
		s.log,
		conversationRepo,
		s.dialogueEngine,
		s.redisServer,
		s.geminiClient,
		s.speechGateway,
		s.whatsappClient,
		s.smtpMailer,
		s.utils,
		conversationService.DefaultConfig(),
	)
	conversationHandlers := conversationHandler.New(s.log, s.validator, s.middleware, s.conversationServices)

	// Replay hot-trained phrases so the corpus matches its pre-restart state.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.conversationServices.LoadTrainingPhrases(ctx); err != nil {
		s.log.Errorf("Failed to load training phrases: %v", err)
	}

	s.setupHealthCheck()
	s.handlers = append(s.handlers, conversationHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	go s.cleanupIdleSessions()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappClient != nil {
			s.whatsappClient.Disconnect()
		}
		if s.speechGateway != nil {
			s.speechGateway.Close()
		}
		return err
	}

	return nil
}

func (s *Server) cleanupIdleSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		removed := s.dialogueEngine.Sessions().CleanupIdle(30 * time.Minute)
		if removed > 0 {
			s.log.Infof("Removed %d idle sessions", removed)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
