package conversation

import "ReservaGolang/pkg/response"

var (
	ErrEmptyMessage        = response.NewError(400, "message text is empty")
	ErrSessionNotFound     = response.NewError(404, "session not found")
	ErrInvalidAudioFile    = response.NewError(400, "invalid audio file")
	ErrAudioFileTooLarge   = response.NewError(400, "audio file too large")
	ErrTranscriptionFailed = response.NewError(500, "failed to transcribe audio")
	ErrUnknownIntentLabel  = response.NewError(400, "unknown intent label")
	ErrFallbackUnavailable = response.NewError(503, "language model fallback unavailable")
	ErrHistoryUnavailable  = response.NewError(500, "failed to load conversation history")
)
