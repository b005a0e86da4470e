package mail_fx

import (
	"os"

	"go.uber.org/fx"

	"mindcaddy/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {
	cfg := services.MailConfig{
		APIKey:    os.Getenv("SENDGRID_API_KEY"),
		FromEmail: getEnvWithDefault("MAIL_FROM", "coach@mindcaddy.app"),
		FromName:  getEnvWithDefault("MAIL_FROM_NAME", "MindCaddy"),
		AppName:   "MindCaddy",
	}

	return services.NewMailService(cfg)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
