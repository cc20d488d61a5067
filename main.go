package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "tombola/docs"
	"tombola/internal/auth"
	"tombola/internal/config"
	"tombola/internal/handlers"
	"tombola/internal/metrics"
	"tombola/internal/storage"
	"tombola/internal/tasks"
	"tombola/internal/tombola"
	"tombola/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Tombola API
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Loading .env")
		if err := godotenv.Load(); err != nil {
			fmt.Println("No .env file, using the process environment")
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	defer logger.Init("tombola", true, false, io.Discard).Close()
	if cfg.LogVerbose {
		logger.SetLevel(1)
	}

	if err := cfg.RequireAdmin(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, db, err := storage.OpenStore(cfg)
	if err != nil {
		logger.Fatalf("storage: %v", err)
	}

	sessions, closeSessions := openSessions(ctx, cfg)
	defer closeSessions()
	manager, err := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL, sessions)
	if err != nil {
		logger.Fatalf("auth: %v", err)
	}
	authHandler, err := handlers.NewAuthHandler(manager, cfg.AdminUsername, cfg.AdminPassword, cfg.CookieSecure)
	if err != nil {
		logger.Fatalf("auth: %v", err)
	}

	hub := ws.NewHub(cfg.CORSOrigins...)
	go hub.Run(ctx)

	svc, err := tombola.NewService(store, tombola.WithNotifier(hub))
	if err != nil {
		logger.Fatalf("tombola: %v", err)
	}

	scheduler, err := tasks.InitScheduler(cfg.StatsCron, svc)
	if err != nil {
		logger.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	if !cfg.LogVerbose {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", metrics.Handler())
	r.GET("/health", handlers.Health(cfg.StorageDriver, storage.Pinger(db)))

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	tombolaGroup := api.Group("/tombola")
	tombolaGroup.GET("/ws", hub.Handler)
	handlers.NewTombolaHandler(svc, cfg.PublicURL).RegisterRoutes(tombolaGroup, auth.AuthMiddleware(manager))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		logger.Infof("Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
}

// openSessions uses Redis when REDIS_ADDR is set and falls back to memory
// when it is not.
func openSessions(ctx context.Context, cfg config.Config) (auth.SessionStore, func()) {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, admin sessions are kept in memory")
		return auth.NewMemorySessionStore(), func() {}
	}
	client, err := storage.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	return auth.NewRedisSessionStore(client), func() { client.Close() }
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
