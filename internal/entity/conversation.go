package entity

import (
	"time"
)

type ConversationTurn struct {
	ID         string                 `json:"id"`
	SessionID  string                 `json:"session_id"`
	UserText   string                 `json:"user_text"`
	Intent     string                 `json:"intent"`
	Confidence float64                `json:"confidence"`
	Source     string                 `json:"source"`
	Step       string                 `json:"step"`
	Reply      string                 `json:"reply"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

type TrainingPhrase struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Label     string    `json:"label"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}
