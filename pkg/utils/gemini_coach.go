package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiCoachClient implements CoachClientInterface using Google's Gemini
// models.
type GeminiCoachClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

func NewGeminiCoachClient(apiKey, model string) (*GeminiCoachClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCoachClient{
		client:         client,
		model:          model,
		embeddingModel: "text-embedding-004",
	}, nil
}

func (c *GeminiCoachClient) Reply(ctx context.Context, systemPrompt string, history []ChatTurn, userMessage string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	cs := m.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}

func (c *GeminiCoachClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	em := c.client.EmbeddingModel(c.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, err
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return pgvector.Vector{}, ErrEmptyCompletion
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}
