package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
	mem "mindcaddy/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, provideAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	resetTokens mem.ResetTokenStore,
	denylist mem.TokenDenylist,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, resetTokens, denylist)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
