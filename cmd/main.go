package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/config"
	"github.com/lambourne/crownprep/database"
	adminctrl "github.com/lambourne/crownprep/internal/controller/admin"
	userctrl "github.com/lambourne/crownprep/internal/controller/user"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/logger"
	"github.com/lambourne/crownprep/internal/middleware"
	"github.com/lambourne/crownprep/internal/model"
	"github.com/lambourne/crownprep/internal/repository"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title CrownPrep Assessment API
// @version 1.0
// @description Civil service exam preparation: timed test attempts, automated scoring and Success Profile behaviour feedback.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewGradeRepository,
			repository.NewBehaviourRepository,
			repository.NewQuestionRepository,
			repository.NewTestRepository,
			repository.NewTestAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewStatementRepository,
		),

		// Engine wiring: the catalog and attempt store adapt the repositories
		// to the scoring engine's contracts.
		fx.Provide(
			service.NewCatalogProvider,
			service.NewAttemptStore,
			func(store engine.AttemptStore, catalog engine.Catalog) *engine.Manager {
				return engine.NewManager(store, catalog)
			},
		),

		fx.Provide(
			service.NewAuthService,
			service.NewCatalogService,
			service.NewAttemptService,
			service.NewStatementService,
			service.NewAdminCatalogService,
		),

		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewCatalogController,
			userctrl.NewAttemptController,
			userctrl.NewStatementController,
			adminctrl.NewCatalogController,
			adminctrl.NewAttemptController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedReferenceData),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	catalogCtrl *userctrl.CatalogController,
	attemptCtrl *userctrl.AttemptController,
	statementCtrl *userctrl.StatementController,
	adminCatalogCtrl *adminctrl.CatalogController,
	adminAttemptCtrl *adminctrl.AttemptController,
) {
	api := router.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	// Authenticated learner routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.GET("/auth/me", authCtrl.Me)

		authed.GET("/grades", catalogCtrl.ListGrades)
		authed.GET("/behaviours", catalogCtrl.ListBehaviours)
		authed.GET("/behaviours/:behaviour_id", catalogCtrl.GetBehaviour)
		authed.GET("/tests", catalogCtrl.ListTests)
		authed.GET("/tests/:test_id", catalogCtrl.GetTestDetails)

		authed.POST("/tests/:test_id/attempts", attemptCtrl.StartTest)
		authed.GET("/attempts", attemptCtrl.ListAttempts)
		authed.PUT("/attempts/:attempt_id/answers", attemptCtrl.SaveAnswer)
		authed.GET("/attempts/:attempt_id/time", attemptCtrl.TimeRemaining)
		authed.GET("/attempts/:attempt_id/resume", attemptCtrl.Resume)
		authed.POST("/attempts/:attempt_id/submit", attemptCtrl.Submit)
		authed.GET("/attempts/:attempt_id/results", attemptCtrl.Results)
		authed.DELETE("/attempts/:attempt_id", attemptCtrl.Abandon)

		authed.POST("/statements", statementCtrl.CreateDraft)
		authed.GET("/statements", statementCtrl.ListDrafts)
		authed.GET("/statements/:draft_id", statementCtrl.GetDraft)
		authed.PUT("/statements/:draft_id", statementCtrl.UpdateDraft)
		authed.DELETE("/statements/:draft_id", statementCtrl.DeleteDraft)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.POST("/behaviours", adminCatalogCtrl.CreateBehaviour)
		admin.PUT("/behaviours/:behaviour_id", adminCatalogCtrl.UpdateBehaviour)
		admin.DELETE("/behaviours/:behaviour_id", adminCatalogCtrl.DeleteBehaviour)

		admin.POST("/questions", adminCatalogCtrl.CreateQuestion)
		admin.GET("/questions", adminCatalogCtrl.ListQuestions)
		admin.GET("/questions/:question_id", adminCatalogCtrl.GetQuestion)
		admin.PUT("/questions/:question_id", adminCatalogCtrl.UpdateQuestion)
		admin.DELETE("/questions/:question_id", adminCatalogCtrl.DeleteQuestion)

		admin.POST("/tests", adminCatalogCtrl.CreateTest)
		admin.GET("/tests", adminCatalogCtrl.ListTests)
		admin.POST("/tests/:test_id/publish", adminCatalogCtrl.PublishTest)
		admin.DELETE("/tests/:test_id/publish", adminCatalogCtrl.UnpublishTest)
		admin.DELETE("/tests/:test_id", adminCatalogCtrl.DeleteTest)

		admin.GET("/attempts/:attempt_id/results", adminAttemptCtrl.Results)
		admin.PUT("/attempts/:attempt_id/answers/:question_id/override", adminAttemptCtrl.OverrideAnswer)

		admin.GET("/analytics", adminCatalogCtrl.Analytics)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("CrownPrep API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Grade{},
		&model.Behaviour{},
		&model.Question{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestAttempt{},
		&model.Answer{},
		&model.StatementDraft{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
