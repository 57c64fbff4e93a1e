package routers

import (
	"github.com/go-chi/chi/v5"

	"jobsforce/api/internal/handlers"
	"jobsforce/api/internal/metrics"
	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/models"
)

// AuthRoutes wires registration and login; /me requires a token.
func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, jwtSecret string) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.Register)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.Login)
		r.With(middleware.RequireAuth(jwtSecret)).Get("/me", authHandler.Me)
	})
}

// JobRoutes wires the catalogue. Reads are public, writes admin-only.
func JobRoutes(router *chi.Mux, jobHandler *handlers.JobHandler, jwtSecret string) {
	router.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Use(middleware.RequireAdmin)
			r.With(middleware.ValidateRequest[*models.CreateJobRequest]()).Post("/", jobHandler.Create)
			r.With(middleware.ValidateRequest[*models.CreateJobRequest]()).Put("/{id}", jobHandler.Update)
			r.Delete("/{id}", jobHandler.Delete)
		})
	})
}

// InterviewRoutes wires the interview lifecycle; everything requires a token.
func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/", interviewHandler.Start)
		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.Start)
		r.Get("/", interviewHandler.List)
		r.Get("/statistics", interviewHandler.Statistics)
		r.With(middleware.ValidateRequest[*models.GenerateQuestionRequest]()).Post("/generate-question", interviewHandler.GenerateQuestion)
		r.With(middleware.ValidateRequest[*models.GetTestCasesRequest]()).Post("/get-test-cases", interviewHandler.GetTestCases)
		r.Get("/{id}", interviewHandler.Get)
		r.With(middleware.ValidateRequest[*models.UpdateInterviewRequest]()).Put("/{id}/update", interviewHandler.Update)
		r.With(middleware.ValidateRequest[*models.SubmitRequest]()).Put("/{id}/submit", interviewHandler.Submit)
		r.With(middleware.ValidateRequest[*models.SubmitRequest]()).Post("/{id}/submit", interviewHandler.Submit)
		r.With(middleware.ValidateRequest[*models.FeedbackRequest]()).Post("/{id}/feedback", interviewHandler.Feedback)
	})
}

// CodeRoutes wires the execution proxy.
func CodeRoutes(router *chi.Mux, codeHandler *handlers.CodeHandler, jwtSecret string) {
	router.Route("/api/code", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.ExecuteRequest]()).Post("/execute", codeHandler.Execute)
		r.With(middleware.ValidateRequest[*models.TestRunRequest]()).Post("/test", codeHandler.RunTests)
	})
}

// OpsRoutes wires health and metrics endpoints.
func OpsRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.Healthz)
	router.Get("/readyz", healthHandler.Readyz)
	router.Method("GET", "/metrics", metrics.Handler())
}
