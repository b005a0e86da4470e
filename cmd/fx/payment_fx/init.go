package payment_fx

import (
	"os"

	"go.uber.org/fx"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
	mem "mindcaddy/pkg/memcache"
)

var Module = fx.Provide(
	repositories.NewBillingRepository,
	providePaymentService, providePaymentController,
)

func providePaymentService(
	billingRepo repositories.IBillingRepository,
	accountRepo repositories.AccountRepository,
	planRepo repositories.IPlanRepository,
	pendingTiers mem.PendingTierStore,
	mailService services.IMailService,
) (services.PaymentService, error) {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYMENT_RETURN_URL"),
		CancelURL:    os.Getenv("PAYMENT_CANCEL_URL"),
		ProviderName: "payos",
	}

	return services.NewPaymentService(cfg, billingRepo, accountRepo, planRepo, pendingTiers, mailService)
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
