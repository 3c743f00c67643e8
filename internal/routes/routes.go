package routes

import (
	"net/http"

	"github.com/dailygoals/dailygoals/internal/app"
	"github.com/dailygoals/dailygoals/internal/handler"
	"github.com/dailygoals/dailygoals/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Cfg.AppName)
	auth := handler.NewAuthHandler(app.AuthService, app.QuestionnaireService)
	questionnaire := handler.NewQuestionnaireHandler(app.QuestionnaireService)
	dashboard := handler.NewDashboardHandler(app.GoalService)
	goal := handler.NewGoalHandler(app.GoalService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", home.Healthz)

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app/me", middleware.RequireAuth(auth.Me))

	// Questionnaire
	mux.HandleFunc("GET /app/questionnaire", middleware.RequireAuth(questionnaire.Questions))
	mux.HandleFunc("POST /app/questionnaire", middleware.RequireAuth(questionnaire.Submit))

	// Dashboard
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Goals
	mux.HandleFunc("POST /app/goals/generate", middleware.RequireAuth(goal.Generate))
	mux.HandleFunc("GET /app/goals/today", middleware.RequireAuth(goal.Today))
	mux.HandleFunc("POST /app/goals/{id}/complete", middleware.RequireAuth(goal.Complete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed downstream)
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserRepository),
	)

	return handler
}
