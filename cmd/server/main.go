package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobsforce/api/internal/cache"
	"jobsforce/api/internal/config"
	"jobsforce/api/internal/cooldown"
	"jobsforce/api/internal/execution"
	"jobsforce/api/internal/handlers"
	"jobsforce/api/internal/interviews"
	"jobsforce/api/internal/jobs"
	"jobsforce/api/internal/llm"
	"jobsforce/api/internal/llm/gemini"
	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/prompts"
	mongorepo "jobsforce/api/internal/repositories/mongo"
	"jobsforce/api/internal/routers"
	"jobsforce/api/internal/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// config failed before the logger exists
		panic("failed to load configuration: " + err.Error())
	}

	utils.InitLogger(cfg.Env)
	logger := utils.GetLogger()
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.Provider),
		zap.Duration("cooldown", cfg.CooldownWindow))

	ctx := context.Background()

	// storage
	mongoClient, err := mongorepo.NewClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	interviewRepo, err := mongorepo.NewInterviewRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to initialize interview repository", zap.Error(err))
	}
	questionRepo, err := mongorepo.NewQuestionRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to initialize question repository", zap.Error(err))
	}
	jobRepo, err := mongorepo.NewJobRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to initialize job repository", zap.Error(err))
	}
	userRepo, err := mongorepo.NewUserRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to initialize user repository", zap.Error(err))
	}

	// optional question cache
	var questionCache *cache.QuestionCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, question cache disabled", zap.Error(err))
		} else {
			questionCache = cache.NewQuestionCache(rdb, cfg.CacheTTL)
			logger.Info("question cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	// AI provider; a missing API key degrades the AI features instead of
	// failing startup
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		if errors.Is(err, gemini.ErrNoAPIKey) {
			logger.Warn("AI provider not configured, generation endpoints will return 503")
			aiProvider = nil
		} else {
			logger.Fatal("failed to initialize AI provider", zap.Error(err))
		}
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("failed to initialize prompt manager", zap.Error(err))
	}

	guard := cooldown.New(cooldown.WithWindow(cfg.CooldownWindow))

	serviceOpts := []interviews.Option{}
	if questionCache != nil {
		serviceOpts = append(serviceOpts, interviews.WithQuestionCache(questionCache))
	}
	interviewService := interviews.NewService(
		interviewRepo, questionRepo, jobRepo,
		aiProvider, promptManager, guard, logger,
		serviceOpts...,
	)

	// optional execution backend
	var execClient *execution.Client
	if cfg.Judge0URL != "" {
		execClient = execution.NewClient(cfg.Judge0URL, cfg.Judge0Key, logger)
		logger.Info("code execution enabled", zap.String("url", cfg.Judge0URL))
	} else {
		logger.Warn("JUDGE0_API_URL not set, code execution endpoints will return 503")
	}

	interviewHandler := handlers.NewInterviewHandler(interviewService, logger, cfg.Env)
	jobHandler := handlers.NewJobHandler(jobRepo, logger)
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, logger)
	codeHandler := handlers.NewCodeHandler(execClient, logger)
	healthHandler := handlers.NewHealthHandler(mongoClient, aiProvider != nil, logger)

	// nightly review export
	exporterJob := jobs.NewReviewExporterJob(interviewRepo, &jobs.ExporterConfig{
		Schedule:  cfg.FeedbackExportSchedule,
		ExportDir: cfg.FeedbackExportDir,
		Enabled:   cfg.FeedbackExportEnabled,
	}, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("failed to start review exporter", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Logger,
		chimiddleware.Recoverer,
		chimiddleware.Timeout(60*time.Second),
		middleware.CountRequests,
	)

	routers.AuthRoutes(router, authHandler, cfg.JWTSecret)
	routers.JobRoutes(router, jobHandler, cfg.JWTSecret)
	routers.InterviewRoutes(router, interviewHandler, cfg.JWTSecret)
	routers.CodeRoutes(router, codeHandler, cfg.JWTSecret)
	routers.OpsRoutes(router, healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("api server shutting down...")
	exporterJob.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("api server exited")
}
