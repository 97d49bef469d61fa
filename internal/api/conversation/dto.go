package conversation

import (
	"mime/multipart"
	"time"
)

type MessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text" validate:"required,min=1,max=500"`
}

type VoiceMessageRequest struct {
	SessionID string                `json:"session_id,omitempty"`
	AudioFile *multipart.FileHeader `json:"audio_file" validate:"required"`
}

type MessageResponse struct {
	SessionID   string          `json:"session_id"`
	Reply       string          `json:"reply"`
	Step        string          `json:"step"`
	Intent      string          `json:"intent,omitempty"`
	Confidence  float64         `json:"confidence,omitempty"`
	Source      string          `json:"source,omitempty"`
	Transcript  string          `json:"transcript,omitempty"`
	Missing     []string        `json:"missing,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	Booking     *BookingSummary `json:"booking,omitempty"`
}

type BookingSummary struct {
	ConfirmationNumber string `json:"confirmation_number"`
	GuestName          string `json:"guest_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	RoomType           string `json:"room_type"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	PaymentMethod      string `json:"payment_method"`
}

type SessionStateResponse struct {
	SessionID string            `json:"session_id"`
	Language  string            `json:"language"`
	Step      string            `json:"step"`
	Slots     map[string]string `json:"slots"`
	Missing   []string          `json:"missing"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ResetRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type TurnHistoryItem struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	UserText   string    `json:"user_text"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
	Step       string    `json:"step"`
	Reply      string    `json:"reply"`
	CreatedAt  time.Time `json:"created_at"`
}

type ConversationAnalytics struct {
	TotalTurns     int                `json:"total_turns"`
	MatchedTurns   int                `json:"matched_turns"`
	MatchRate      float64            `json:"match_rate"`
	IntentCounts   map[string]int     `json:"intent_counts"`
	SourceCounts   map[string]int     `json:"source_counts"`
	AvgConfidence  map[string]float64 `json:"avg_confidence"`
	CompletedFlows int                `json:"completed_flows"`
}

type NLPTestRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en id es"`
}

type NLPTestResponse struct {
	Input      string            `json:"input"`
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Source     string            `json:"source"`
	Language   string            `json:"language"`
	Entities   map[string]string `json:"entities,omitempty"`
	Processing ProcessingDetail  `json:"processing"`
}

type ProcessingDetail struct {
	CleanedText    string `json:"cleaned_text"`
	CorpusSize     int    `json:"corpus_size"`
	ProcessingTime string `json:"processing_time"`
}

type TrainingPhraseRequest struct {
	Text   string  `json:"text" validate:"required,min=1,max=500"`
	Label  string  `json:"label" validate:"required"`
	Weight float64 `json:"weight,omitempty" validate:"omitempty,gt=0,lte=1"`
}

type TrainingPhraseItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Label     string    `json:"label"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

type SuggestionsResponse struct {
	SessionID   string   `json:"session_id"`
	Step        string   `json:"step"`
	Suggestions []string `json:"suggestions"`
}
