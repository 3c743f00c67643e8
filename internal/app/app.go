package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dailygoals/dailygoals/internal/config"
	"github.com/dailygoals/dailygoals/internal/db"
	"github.com/dailygoals/dailygoals/internal/llm"
	"github.com/dailygoals/dailygoals/internal/repository"
	"github.com/dailygoals/dailygoals/internal/service"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	UserRepository       repository.UserRepository
	AuthService          *service.AuthService
	EmailService         *service.EmailService
	QuestionnaireService *service.QuestionnaireService
	GoalService          *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	responseRepository := repository.NewResponseRepository(database)
	goalRepository := repository.NewGoalRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	questionnaireService := service.NewQuestionnaireService(responseRepository)

	generator := llm.NewClient(
		cfg.OpenAIBaseURL,
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAITimeout,
		cfg.OpenAIMaxRetries,
	)
	goalService := service.NewGoalService(goalRepository, responseRepository, generator)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		UserRepository:       userRepository,
		AuthService:          authService,
		EmailService:         emailService,
		QuestionnaireService: questionnaireService,
		GoalService:          goalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
