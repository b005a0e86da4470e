package entitlement_fx

import (
	"go.uber.org/fx"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
)

var Module = fx.Provide(
	provideEntitlementService, provideEntitlementController)

func provideEntitlementService(accountRepo repositories.AccountRepository) services.EntitlementServiceInterface {
	return services.NewEntitlementService(accountRepo)
}

func provideEntitlementController(entitlementService services.EntitlementServiceInterface) *controllers.EntitlementController {
	return controllers.NewEntitlementController(entitlementService)
}
