package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ton-arcade-backend/internal/common/config"
	"ton-arcade-backend/internal/common/logger"
	commonmw "ton-arcade-backend/internal/common/middleware"
	authhttp "ton-arcade-backend/internal/features/auth/delivery/http"
	authservice "ton-arcade-backend/internal/features/auth/service"
	"ton-arcade-backend/internal/features/auth/telegram"
	"ton-arcade-backend/internal/features/auth/wallet"
	gamehttp "ton-arcade-backend/internal/features/game/delivery/http"
	gamepg "ton-arcade-backend/internal/features/game/repository/postgres"
	gameservice "ton-arcade-backend/internal/features/game/service"
	sessionmw "ton-arcade-backend/internal/features/session/middleware"
	sessionredis "ton-arcade-backend/internal/features/session/repository/redis"
	sessionservice "ton-arcade-backend/internal/features/session/service"
	userhttp "ton-arcade-backend/internal/features/user/delivery/http"
	userpg "ton-arcade-backend/internal/features/user/repository/postgres"
	userservice "ton-arcade-backend/internal/features/user/service"
	"ton-arcade-backend/internal/platform/db"
	redisplatform "ton-arcade-backend/internal/platform/redis"

	_ "ton-arcade-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title TON Arcade Auth API
// @version 1.0
// @description Telegram and TON wallet authentication backend with scores and leaderboards.
func main() {
	// Create cancellable root context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init("ton-arcade-backend", cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Telegram.InsecureSkipVerify {
		logger.Warn().Msg("TELEGRAM_INSECURE_SKIP_VERIFY is enabled: widget signatures are NOT verified")
	}

	pg, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres open")
	}
	defer pg.Close()
	if err := db.EnsureSchema(ctx, pg); err != nil {
		logger.Fatal().Err(err).Msg("apply schema")
	}

	var sessions sessionservice.Service
	switch cfg.Session.Mode {
	case "jwt":
		sessions = sessionservice.NewJWT(cfg.Session.SecretKey, cfg.Session.TTL)
	default:
		rdb, err := redisplatform.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis open")
		}
		defer rdb.Close()
		sessions = sessionservice.NewOpaque(sessionredis.NewRepository(rdb.Client), cfg.Session.TTL)
	}

	policy := wallet.NewPolicy(wallet.Config{
		MinLength:        cfg.Wallet.MinLength,
		RequirePrefix:    cfg.Wallet.RequirePrefix,
		Strict:           cfg.Wallet.Strict,
		RequireSignature: cfg.Wallet.RequireSignature,
	})

	users := userservice.NewUserService(userpg.NewPostgresRepository(pg), policy)
	verifier := telegram.NewVerifier(cfg.Telegram.BotToken, cfg.Telegram.AuthTTL, cfg.Telegram.InsecureSkipVerify)
	auth := authservice.NewService(verifier, policy, users, cfg.Telegram.BotToken, cfg.Telegram.AuthTTL)
	games := gameservice.NewGameService(gamepg.NewPostgresRepository(pg))

	router := gin.New()
	router.Use(commonmw.RequestID(), commonmw.Logger(), commonmw.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireSession := sessionmw.RequireSession(sessions, users)
	root := &router.RouterGroup
	authhttp.NewAuthHandler(auth, sessions, !cfg.Debug).RegisterRoutes(root, requireSession)
	userhttp.NewUserHandler(users).RegisterRoutes(root, requireSession)
	gamehttp.NewGameHandler(games).RegisterRoutes(root, requireSession)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}
