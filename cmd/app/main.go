package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"mindcaddy/cmd/fx/account_fx"
	"mindcaddy/cmd/fx/catalog_fx"
	"mindcaddy/cmd/fx/chat_fx"
	"mindcaddy/cmd/fx/coach_fx"
	"mindcaddy/cmd/fx/coaching_fx"
	"mindcaddy/cmd/fx/db_fx"
	"mindcaddy/cmd/fx/entitlement_fx"
	"mindcaddy/cmd/fx/mail_fx"
	"mindcaddy/cmd/fx/memcache_fx"
	"mindcaddy/cmd/fx/payment_fx"
	"mindcaddy/cmd/fx/plan_fx"
	"mindcaddy/internal/api/controllers"
	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/services"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		coach_fx.Module,
		account_fx.Module,
		entitlement_fx.Module,
		chat_fx.Module,
		plan_fx.Module,
		payment_fx.Module,
		catalog_fx.Module,
		coaching_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(ProvisionAdmin),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// ProvisionAdmin creates or repairs the admin account from environment
// credentials. Admin access never goes through the public signup flow.
func ProvisionAdmin(accountService services.AccountServiceInterface) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin provisioning")
		return
	}

	if err := accountService.EnsureAdmin(context.Background(), email, password); err != nil {
		log.Printf("Error provisioning admin account: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

type routerDeps struct {
	fx.In

	Denylist           mem.TokenDenylist
	EntitlementService services.EntitlementServiceInterface

	AccountController     *controllers.AccountController
	EntitlementController *controllers.EntitlementController
	ChatController        *controllers.ChatController
	PlanController        *controllers.PlanController
	PaymentController     *controllers.PaymentController
	TechniqueController   *controllers.TechniqueController
	ScenarioController    *controllers.ScenarioController
	AssessmentController  *controllers.AssessmentController
	GoalController        *controllers.GoalController
	ProgressController    *controllers.ProgressController
}

func ProvideRouter(deps routerDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, deps)

	return r
}

func RegisterRoutes(r *gin.Engine, deps routerDeps) {
	optionalAuth := middleware.OptionalAuthMiddleware(deps.Denylist)
	requireAuth := middleware.JWTAuthMiddleware(deps.Denylist)

	accounts := r.Group("/accounts")
	accounts.POST("/register", deps.AccountController.Register)
	accounts.POST("/login", deps.AccountController.Login)
	accounts.POST("/forgot-password", deps.AccountController.ForgotPassword)
	accounts.POST("/reset-password", deps.AccountController.ResetPassword)
	accounts.POST("/logout", requireAuth, deps.AccountController.Logout)
	accounts.GET("/me", requireAuth, deps.AccountController.Me)

	entitlements := r.Group("/entitlements", optionalAuth)
	entitlements.GET("/:feature", deps.EntitlementController.CheckFeature)

	chat := r.Group("/chat", optionalAuth, middleware.GuestSessionMiddleware())
	chat.POST("/send", deps.ChatController.Send)
	chat.GET("/history/:conversationId", deps.ChatController.History)
	chat.GET("/credits", deps.ChatController.Credits)

	r.GET("/plans", deps.PlanController.GetPlans)
	r.GET("/plans/:code", deps.PlanController.GetPlanByCode)

	// The technique library is part of the free pitch, so it stays open.
	r.GET("/techniques", deps.TechniqueController.GetTechniques)
	r.GET("/techniques/:id", deps.TechniqueController.GetTechniqueByID)

	payments := r.Group("/payments")
	payments.POST("/checkout", optionalAuth, deps.PaymentController.CreateCheckout)
	payments.GET("/success", deps.PaymentController.CaptureSuccess)
	payments.POST("/complete-signup", deps.PaymentController.CompleteSignup)
	payments.POST("/webhook", deps.PaymentController.HandleWebhook)

	member := r.Group("/", requireAuth)
	member.POST("/assessments", deps.AssessmentController.CreateAssessment)
	member.GET("/assessments", deps.AssessmentController.ListAssessments)
	member.GET("/assessments/:id", deps.AssessmentController.GetAssessment)
	member.POST("/skills-checks", deps.AssessmentController.CreateSkillsCheck)
	member.GET("/skills-checks", deps.AssessmentController.ListSkillsChecks)
	member.POST("/control-circles", deps.AssessmentController.CreateControlCircle)
	member.GET("/control-circles", deps.AssessmentController.ListControlCircles)
	member.GET("/progress/summary", deps.ProgressController.GetSummary)

	goals := r.Group("/goals", requireAuth,
		controllers.RequireFeature(deps.EntitlementService, entitlement.FeatureGoals))
	goals.POST("", deps.GoalController.CreateGoal)
	goals.GET("", deps.GoalController.ListGoals)
	goals.PUT("/:id", deps.GoalController.UpdateGoal)
	goals.DELETE("/:id", deps.GoalController.DeleteGoal)

	scenarios := r.Group("/scenarios", requireAuth,
		controllers.RequireFeature(deps.EntitlementService, entitlement.FeatureScenarios))
	scenarios.GET("", deps.ScenarioController.GetScenarios)
	scenarios.GET("/:id", deps.ScenarioController.GetScenarioByID)

	admin := r.Group("/admin", requireAuth, middleware.RoleMiddleware("admin"))
	admin.GET("/accounts", deps.AccountController.ListAccounts)
	admin.PUT("/accounts/:id/tier", deps.AccountController.UpdateAccountTier)
	admin.POST("/techniques", deps.TechniqueController.CreateTechnique)
	admin.POST("/scenarios", deps.ScenarioController.CreateScenario)
}
