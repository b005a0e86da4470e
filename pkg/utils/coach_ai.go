package utils

import (
	"context"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

type ChatTurn struct {
	Role    string // "user" | "assistant"
	Content string
}

// CoachClientInterface is the boundary to the AI completion provider: one
// coaching reply per call, plus text embeddings for technique retrieval.
// Implementations must honor ctx cancellation and deadlines.
type CoachClientInterface interface {
	Reply(ctx context.Context, systemPrompt string, history []ChatTurn, userMessage string) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// OpenAICoachClient implements CoachClientInterface using OpenAI chat
// completions.
type OpenAICoachClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICoachClient(apiKey, model string) *OpenAICoachClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICoachClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAICoachClient) Reply(ctx context.Context, systemPrompt string, history []ChatTurn, userMessage string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAICoachClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, err
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, ErrEmptyCompletion
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
