package chat_fx

import (
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

const creditWindow = 24 * time.Hour

var Module = fx.Provide(
	provideChatRepo, provideChatService, provideChatController)

func provideChatRepo(db *gorm.DB) repositories.IChatRepository {
	return repositories.NewChatRepository(db)
}

func provideChatService(
	coach utils.CoachClientInterface,
	chatRepo repositories.IChatRepository,
	techniqueRepo repositories.ITechniqueRepository,
	accountRepo repositories.AccountRepository,
) services.ChatServiceInterface {
	cfg := services.ChatConfig{
		ReplyTimeout: time.Duration(envInt("CHAT_REPLY_TIMEOUT_SECONDS", 20)) * time.Second,
	}

	guestCredits := mem.NewUsageCredits(envInt("GUEST_CHAT_CREDITS", 5), creditWindow)
	memberCredits := mem.NewUsageCredits(envInt("FREE_TIER_CHAT_CREDITS", 1), creditWindow)

	return services.NewChatService(cfg, coach, chatRepo, techniqueRepo, accountRepo, guestCredits, memberCredits)
}

func provideChatController(chatService services.ChatServiceInterface) *controllers.ChatController {
	return controllers.NewChatController(chatService)
}

func envInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
