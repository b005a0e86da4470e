package coaching_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/repositories"
	"mindcaddy/internal/services"
)

var Module = fx.Provide(
	provideAssessmentRepo, provideAssessmentService, provideAssessmentController,
	provideGoalRepo, provideGoalService, provideGoalController,
	provideProgressService, provideProgressController,
)

func provideAssessmentRepo(db *gorm.DB) repositories.IAssessmentRepository {
	return repositories.NewAssessmentRepository(db)
}

func provideAssessmentService(
	assessmentRepo repositories.IAssessmentRepository,
	accountRepo repositories.AccountRepository,
) services.AssessmentServiceInterface {
	return services.NewAssessmentService(assessmentRepo, accountRepo)
}

func provideAssessmentController(assessmentService services.AssessmentServiceInterface) *controllers.AssessmentController {
	return controllers.NewAssessmentController(assessmentService)
}

func provideGoalRepo(db *gorm.DB) repositories.IGoalRepository {
	return repositories.NewGoalRepository(db)
}

func provideGoalService(goalRepo repositories.IGoalRepository) services.GoalServiceInterface {
	return services.NewGoalService(goalRepo)
}

func provideGoalController(goalService services.GoalServiceInterface) *controllers.GoalController {
	return controllers.NewGoalController(goalService)
}

func provideProgressService(
	assessmentRepo repositories.IAssessmentRepository,
	goalRepo repositories.IGoalRepository,
) services.ProgressServiceInterface {
	return services.NewProgressService(assessmentRepo, goalRepo)
}

func provideProgressController(progressService services.ProgressServiceInterface) *controllers.ProgressController {
	return controllers.NewProgressController(progressService)
}
