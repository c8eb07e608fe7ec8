package gemini

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"ProjectSenorita/pkg/utils"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Message struct {
	Role string // "user" or "assistant"
	Text string
}

type Request struct {
	SystemPrompt string
	History      []Message
	Query        string
}

type IGemini interface {
	Generate(ctx context.Context, req Request) (string, error)
}

const (
	maxAttempts    = 3
	attemptTimeout = 15 * time.Second
	baseBackoff    = time.Second
)

type geminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate sends one turn to the model, replaying the supplied history.
// Transient failures are retried up to three times with a doubling delay
// between attempts.
func (g *geminiClient) Generate(ctx context.Context, req Request) (string, error) {
	model := g.client.GenerativeModel(g.modelName)

	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	chat := model.StartChat()
	for _, msg := range req.History {
		role := "user"
		if msg.Role == "assistant" || msg.Role == "model" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(baseBackoff << (attempt - 1)):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		res, err := chat.SendMessage(attemptCtx, genai.Text(req.Query))
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		text, err := extractText(res)
		if err != nil {
			lastErr = err
			continue
		}
		return cleanReply(text), nil
	}

	return "", lastErr
}

func extractText(res *genai.GenerateContentResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", errors.New("no response from Gemini API")
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("unexpected response format from Gemini API")
	}
	return sb.String(), nil
}

// cleanReply strips the markdown bold the model likes to emit, since the
// reply is spoken as well as displayed.
func cleanReply(text string) string {
	return strings.TrimSpace(utils.CleanMarkdown(text))
}
