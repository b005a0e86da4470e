package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

var Module = fx.Provide(
	provideTechniqueRepo, provideTechniqueService, provideTechniqueController,
	provideScenarioRepo, provideScenarioService, provideScenarioController,
)

func provideTechniqueRepo(db *gorm.DB) repositories.ITechniqueRepository {
	return repositories.NewTechniqueRepository(db)
}

func provideTechniqueService(
	techniqueRepo repositories.ITechniqueRepository,
	coach utils.CoachClientInterface,
) services.TechniqueServiceInterface {
	return services.NewTechniqueService(techniqueRepo, coach)
}

func provideTechniqueController(techniqueService services.TechniqueServiceInterface) *controllers.TechniqueController {
	return controllers.NewTechniqueController(techniqueService)
}

func provideScenarioRepo(db *gorm.DB) repositories.IScenarioRepository {
	return repositories.NewScenarioRepository(db)
}

func provideScenarioService(scenarioRepo repositories.IScenarioRepository) services.ScenarioServiceInterface {
	return services.NewScenarioService(scenarioRepo)
}

func provideScenarioController(scenarioService services.ScenarioServiceInterface) *controllers.ScenarioController {
	return controllers.NewScenarioController(scenarioService)
}
