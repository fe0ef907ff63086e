package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agentcrm/internal/config"
	"agentcrm/internal/database"
	"agentcrm/internal/domain"
	"agentcrm/internal/llm"
	"agentcrm/internal/middleware"
	"agentcrm/internal/modules/agent"
	"agentcrm/internal/modules/auth"
	"agentcrm/internal/modules/events"
	"agentcrm/internal/modules/lead"
	"agentcrm/internal/modules/session"
	jwtsvc "agentcrm/internal/pkg/jwt"
	"agentcrm/internal/pkg/logger"
	"agentcrm/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Log.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Log.Fatal("database connect failed", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			logger.Log.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	agentRepo := repository.NewAgentRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	if err := seedDefaultAgent(agentRepo, cfg); err != nil {
		logger.Log.Fatal("default agent bootstrap failed", zap.Error(err))
	}

	jwtService := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// без baseURL генератор не подключается, сессии живут на шаблоне
	var generator session.Generator
	if cfg.AI.BaseURL != "" {
		generator = llm.NewClient(llm.Options{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Timeout:     cfg.AI.Timeout,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		})
	}

	hub := events.NewHub()
	defer hub.Close()

	leadService := lead.NewService(leadRepo, hub)
	leadHandler := lead.NewHandler(leadService)

	agentService := agent.NewService(agentRepo)
	agentHandler := agent.NewHandler(agentService)

	authService := auth.NewService(agentRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	sessionService := session.NewService(sessionRepo, agentRepo, leadRepo, generator)
	sessionHandler := session.NewHandler(sessionService)

	eventsHandler := events.NewHandler(hub, jwtService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// public: приём лидов, вход, живая лента
		leadHandler.RegisterPublicRoutes(api)
		authHandler.RegisterPublicRoutes(api)
		eventsHandler.RegisterRoutes(api)

		admin := api.Group("")
		admin.Use(middleware.AdminTokenAuth(cfg.Auth.AdminToken))
		{
			agentHandler.RegisterAdminRoutes(admin)
		}

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			leadHandler.RegisterRoutes(protected)
			agentHandler.RegisterRoutes(protected)
			sessionHandler.RegisterRoutes(protected)
			authHandler.RegisterRoutes(protected)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Log.Info("starting server",
		zap.String("addr", addr),
		zap.String("environment", cfg.Environment))

	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

// seedDefaultAgent заводит агента из конфига при пустой таблице,
// чтобы в систему можно было войти сразу после первого запуска.
func seedDefaultAgent(agents *repository.AgentRepository, cfg *config.Config) error {
	ctx := context.Background()

	n, err := agents.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAgent.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a := &domain.Agent{
		ID:           uuid.NewString(),
		FirstName:    cfg.DefaultAgent.FirstName,
		LastName:     cfg.DefaultAgent.LastName,
		Phone:        cfg.DefaultAgent.Phone,
		Email:        cfg.DefaultAgent.Email,
		Login:        cfg.DefaultAgent.Login,
		PasswordHash: string(hash),
	}
	if err := agents.Create(ctx, a); err != nil {
		return err
	}

	logger.Log.Info("default agent seeded, change the password after first login",
		zap.String("login", a.Login))
	return nil
}
