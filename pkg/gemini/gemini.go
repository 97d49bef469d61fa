package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type FallbackResult struct {
	Label    string            `json:"label"`
	Entities map[string]string `json:"entities"`
}

type IGemini interface {
	InterpretUtterance(ctx context.Context, utterance string, step string, language string) (*FallbackResult, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {

	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

const interpretPromptTemplate = `You are an intent classifier for a hotel reservation assistant.
The guest is currently at the "%s" step of the booking flow and speaks "%s".
Classify the utterance below into exactly one of these labels:
select_language, book_room, provide_dates, provide_guests, choose_room,
guest_info, choose_payment, confirm, reset, status, greeting.
Extract any entities into a flat string map. Recognized entity keys:
check_in, check_out (YYYY-MM-DD), adults, children, room_type,
guest_name, email, phone, payment_method, language.
Respond with JSON only, no prose: {"label": "...", "entities": {...}}

Utterance: %q`

func (g *geminiClient) InterpretUtterance(ctx context.Context, utterance string, step string, language string) (*FallbackResult, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, errors.New("empty utterance")
	}

	model := g.client.GenerativeModel(g.modelName)
	prompt := fmt.Sprintf(interpretPromptTemplate, step, language, utterance)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no response from Gemini API")
	}

	part := res.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return nil, errors.New("unexpected response format from Gemini API")
	}

	raw := strings.TrimSpace(string(text))
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var result FallbackResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if result.Label == "" {
		return nil, errors.New("Gemini response missing intent label")
	}

	return &result, nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
