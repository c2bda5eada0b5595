package main

import (
	"context"
	"net/http"
	"time"

	"github.com/devly/devly/config"
	"github.com/devly/devly/database"
	_ "github.com/devly/devly/docs" // Swagger docs
	"github.com/devly/devly/internal/controller"
	professorctrl "github.com/devly/devly/internal/controller/professor"
	studentctrl "github.com/devly/devly/internal/controller/student"
	"github.com/devly/devly/internal/logger"
	"github.com/devly/devly/internal/middleware"
	"github.com/devly/devly/internal/model"
	"github.com/devly/devly/internal/repository"
	"github.com/devly/devly/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title DevLy Test Platform API
// @version 1.0
// @description Scheduled multiple-choice tests with server-side grading: professors author and schedule tests sampled from a question bank, students attempt them once inside the scheduled window.
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
			repository.NewQuestionRepository,
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			service.NewAuthoringService,
			service.NewSessionService,
			service.NewQuestionService,
			service.NewAuthService,
		),

		fx.Provide(
			controller.NewAuthController,
			professorctrl.NewTestController,
			studentctrl.NewTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	professorTestCtrl *professorctrl.TestController,
	studentTestCtrl *studentctrl.TestController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authCtrl.Login)

		professorGroup := api.Group("", middleware.RequireRole(cfg.Auth.JWTSecret, model.RoleProfessor))
		{
			professorGroup.GET("/tests", professorTestCtrl.ListTests)
			professorGroup.POST("/tests", professorTestCtrl.CreateTest)
			professorGroup.PUT("/tests/:id", professorTestCtrl.UpdateTest)
			professorGroup.DELETE("/tests/:id", professorTestCtrl.DeleteTest)
			professorGroup.POST("/questions/import", professorTestCtrl.ImportQuestions)
		}

		studentGroup := api.Group("/student-tests", middleware.RequireRole(cfg.Auth.JWTSecret, model.RoleStudent))
		{
			studentGroup.GET("/available", studentTestCtrl.AvailableTests)
			studentGroup.GET("/:id", studentTestCtrl.GetTest)
			studentGroup.POST("/:id/submit", studentTestCtrl.SubmitTest)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("DevLy API server starting on port %s", cfg.Server.Port)
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
		&model.Question{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestResult{},
		&model.ResultAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
