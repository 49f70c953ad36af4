package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/audit"
	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/handlers"
	infraRepo "github.com/infopontes/leishai-backend/internal/infra/repository"
	"github.com/infopontes/leishai-backend/internal/limiter"
	"github.com/infopontes/leishai-backend/internal/mail"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/ml"
	"github.com/infopontes/leishai-backend/internal/security"
	"github.com/infopontes/leishai-backend/internal/storage"
	ucAssessment "github.com/infopontes/leishai-backend/internal/usecase/assessment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm)
	mailer := mail.NewSender(cfg)

	authLimiter, err := limiter.New(cfg.RedisURL, 5, time.Hour)
	if err != nil {
		log.Printf("redis limiter disabled: %v", err)
	}
	if cfg.Testing {
		authLimiter = nil
	}

	var photos storage.PhotoStore
	if store := storage.NewS3Store(cfg); store != nil {
		photos = store
	}

	predictor, err := ml.NewPredictor(cfg.ModelDir)
	if err != nil {
		// A API de CRUD continua servindo mesmo sem o modelo.
		log.Printf("prediction disabled: %v", err)
	}

	assessmentRepo := infraRepo.NewAssessmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ASSESSMENTS
	// ======================================================
	createAssessmentUC := ucAssessment.NewCreateAssessment(
		assessmentRepo,
		auditDispatcher,
	)

	deleteAssessmentUC := ucAssessment.NewDeleteAssessment(
		assessmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, tokens, mailer, authLimiter)
	userHandler := handlers.NewUserHandler(db, cfg, tokens, mailer, authLimiter, auditDispatcher)
	roleHandler := handlers.NewRoleHandler(db)
	ownerHandler := handlers.NewOwnerHandler(db, auditDispatcher)
	breedHandler := handlers.NewBreedHandler(db, auditDispatcher)
	animalHandler := handlers.NewAnimalHandler(db, auditDispatcher, photos)
	assessmentHandler := handlers.NewAssessmentHandler(db, createAssessmentUC, deleteAssessmentUC, auditDispatcher)
	predictionHandler := handlers.NewPredictionHandler(predictor)

	// ======================================================
	// MÉTRICAS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// ROTAS PÚBLICAS
	// ======================================================
	r.POST("/auth/token", authHandler.Token)
	r.POST("/auth/forgot-password", authHandler.ForgotPassword)
	r.POST("/auth/reset-password", authHandler.ResetPassword)
	r.POST("/auth/activate", authHandler.Activate)

	r.POST("/users/", userHandler.Register)

	// ======================================================
	// ROTAS AUTENTICADAS
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.RequireUser(db, tokens))
	{
		secured.GET("/users/me", userHandler.Me)

		secured.GET("/roles/", roleHandler.List)

		secured.POST("/owners/", ownerHandler.Create)
		secured.GET("/owners/", ownerHandler.List)
		secured.GET("/owners/:id", ownerHandler.Get)
		secured.PUT("/owners/:id", ownerHandler.Update)
		secured.DELETE("/owners/:id", ownerHandler.Delete)

		secured.GET("/breeds/", breedHandler.List)
		secured.GET("/breeds/:id", breedHandler.Get)

		secured.POST("/animals/", animalHandler.Create)
		secured.GET("/animals/", animalHandler.List)
		secured.GET("/animals/:id", animalHandler.Get)
		secured.PUT("/animals/:id", animalHandler.Update)
		secured.DELETE("/animals/:id", animalHandler.Delete)
		secured.POST("/animals/:id/photo", animalHandler.UploadPhoto)

		secured.POST("/assessments/", assessmentHandler.Create)
		secured.GET("/assessments/", assessmentHandler.List)
		secured.GET("/assessments/:id", assessmentHandler.Get)
		secured.PUT("/assessments/:id", assessmentHandler.Update)
		secured.DELETE("/assessments/:id", assessmentHandler.Delete)

		secured.POST("/predict/", predictionHandler.Predict)
	}

	// ======================================================
	// ROTAS DE ADMINISTRAÇÃO
	// ======================================================
	admin := r.Group("/")
	admin.Use(middleware.RequireUser(db, tokens), middleware.RequireAdmin())
	{
		admin.GET("/users/", userHandler.List)
		admin.PUT("/users/:id", userHandler.Update)
		admin.DELETE("/users/:id", userHandler.Deactivate)

		admin.POST("/roles/", roleHandler.Create)

		admin.POST("/breeds/", breedHandler.Create)
		admin.PUT("/breeds/:id", breedHandler.Update)
		admin.DELETE("/breeds/:id", breedHandler.Delete)
	}
}
