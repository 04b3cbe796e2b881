package bootstrap

import (
	"database/sql"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/prelimpro/prelimpro-backend/config"
	httpapi "github.com/prelimpro/prelimpro-backend/internal/api/http"
	"github.com/prelimpro/prelimpro-backend/internal/api/middleware"
	"github.com/prelimpro/prelimpro-backend/internal/audit"
	"github.com/prelimpro/prelimpro-backend/internal/auth"
	"github.com/prelimpro/prelimpro-backend/internal/billing"
	"github.com/prelimpro/prelimpro-backend/internal/exports"
	"github.com/prelimpro/prelimpro-backend/internal/notices"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
	"github.com/prelimpro/prelimpro-backend/internal/users"
)

type RouterDeps struct {
	Cfg        *config.Config
	DB         *pgxpool.Pool
	SQLDB      *sql.DB
	Redis      *redis.Client
	AuthClient *fbauth.Client // nil enables the dev OptionalUser middleware
	Store      notices.Storage
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler("prelimpro-backend", dep.Cfg.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	templateRepo := projects.NewTemplateRepo(dep.DB)
	noticeRepo := notices.NewRepo(dep.DB)
	auditRepo := audit.NewRepo(dep.SQLDB)
	planRepo := billing.NewPlanRepo(dep.DB)
	failureRepo := billing.NewFailureRepo(dep.DB)

	events := notices.NewPublisher(dep.Redis)
	noticeSvc := notices.NewService(noticeRepo, projectRepo, userRepo, dep.Store, auditRepo, events)
	noticeHandler := notices.NewHandler(noticeSvc, dep.Cfg.App.CallbackSecret)

	entitlements := billing.NewEntitlements(planRepo, projectRepo, dep.Cfg.App.FreePlanLimit)
	checkout := billing.NewCheckout(dep.Cfg.Stripe)
	processor := billing.NewWebhookProcessor(planRepo, failureRepo, auditRepo)
	billingHandler := billing.NewHandler(planRepo, checkout, processor, dep.Cfg.Stripe.WebhookSecret)

	// Public endpoints: Stripe webhook and the mail vendor's delivery
	// callback authenticate themselves, not the user.
	billingHandler.RegisterWebhook(r)
	noticeHandler.RegisterCallback(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())

	if dep.AuthClient != nil {
		api.Use(auth.FirebaseAuthMiddleware(dep.AuthClient))
	} else {
		api.Use(auth.OptionalUser())
	}
	api.Use(auth.WithUser(userRepo))

	users.Register(api.Group("/users"), userRepo)
	projects.Register(api.Group("/projects"), projectRepo, auditRepo, entitlements)
	projects.RegisterTemplates(api.Group("/project-templates"), templateRepo)
	noticeHandler.Register(api)
	audit.Register(api.Group("/audit"), auditRepo)
	billingHandler.Register(api.Group("/billing"))
	exports.Register(api.Group("/exports"), projectRepo)

	return r
}
