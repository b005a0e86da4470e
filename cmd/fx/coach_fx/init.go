package coach_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"mindcaddy/pkg/utils"
)

var Module = fx.Provide(ProvideCoachClient)

// CoachConfig holds configuration for the AI coach backend.
type CoachConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideCoachClient creates a coach client based on environment variables.
func ProvideCoachClient() (utils.CoachClientInterface, error) {
	config := getCoachConfig()

	log.Printf("Initializing %s coach client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return utils.NewOpenAICoachClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiCoachClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported coach provider: %s. Use 'openai' or 'gemini'", config.Provider)
	}
}

func getCoachConfig() CoachConfig {
	provider := getEnvWithDefault("COACH_PROVIDER", "openai")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return CoachConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
