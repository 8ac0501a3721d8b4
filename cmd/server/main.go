package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/strideclub/stride/internal/config"
	"github.com/strideclub/stride/internal/database"
	postgresrepo "github.com/strideclub/stride/internal/repository/postgres"
	"github.com/strideclub/stride/internal/service"
	"github.com/strideclub/stride/internal/transport/http/handlers"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"github.com/strideclub/stride/internal/transport/ws"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Database
	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	friendRepo := postgresrepo.NewFriendRepo(pool)
	annotationRepo := postgresrepo.NewAnnotationRepo(pool)
	activityRepo := postgresrepo.NewActivityRepo(pool)
	statsRepo := postgresrepo.NewStatsRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	friendService := service.NewFriendService(friendRepo, userRepo, logger)
	annotationService := service.NewAnnotationService(annotationRepo, logger)
	activityService := service.NewActivityService(activityRepo, friendRepo)
	feedService := service.NewFeedService(friendRepo, activityRepo, annotationRepo, logger)
	leaderboardService := service.NewLeaderboardService(friendRepo, userRepo, statsRepo, logger)

	// WebSocket hub + live notifications
	hub := ws.NewHub(logger)
	go hub.Run()
	notifier := ws.NewHubNotifier(hub, logger)
	friendService.SetNotifier(notifier)
	annotationService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(userRepo, logger)
	friendHandler := handlers.NewFriendHandler(friendService, logger)
	activityHandler := handlers.NewActivityHandler(activityService, annotationService, logger)
	feedHandler := handlers.NewFeedHandler(feedService, logger)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, logger)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", middleware.MetricsHandler())
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, logger))

	// Protected - Users
	mux.Handle("GET /api/v1/users/me", auth(http.HandlerFunc(userHandler.Me)))
	mux.Handle("GET /api/v1/users", auth(http.HandlerFunc(userHandler.Search)))

	// Protected - Friends
	mux.Handle("GET /api/v1/friends", auth(http.HandlerFunc(friendHandler.ListFriends)))
	mux.Handle("DELETE /api/v1/friends/{uid}", auth(http.HandlerFunc(friendHandler.RemoveFriend)))
	mux.Handle("POST /api/v1/friends/requests", auth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/v1/friends/requests/incoming", auth(http.HandlerFunc(friendHandler.ListIncoming)))
	mux.Handle("GET /api/v1/friends/requests/outgoing", auth(http.HandlerFunc(friendHandler.ListOutgoing)))
	mux.Handle("POST /api/v1/friends/requests/{id}/accept", auth(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("POST /api/v1/friends/requests/{id}/decline", auth(http.HandlerFunc(friendHandler.DeclineRequest)))
	mux.Handle("DELETE /api/v1/friends/requests/{id}", auth(http.HandlerFunc(friendHandler.CancelRequest)))

	// Protected - Activities & annotations
	mux.Handle("POST /api/v1/activities", auth(http.HandlerFunc(activityHandler.Record)))
	mux.Handle("GET /api/v1/users/{uid}/activities", auth(http.HandlerFunc(activityHandler.ListForUser)))
	mux.Handle("PUT /api/v1/activities/{uid}/{activityId}/reaction", auth(http.HandlerFunc(activityHandler.SetReaction)))
	mux.Handle("GET /api/v1/activities/{uid}/{activityId}/annotations", auth(http.HandlerFunc(activityHandler.ListAnnotations)))
	mux.Handle("POST /api/v1/activities/{uid}/{activityId}/comments", auth(http.HandlerFunc(activityHandler.AddComment)))
	mux.Handle("DELETE /api/v1/activities/{uid}/{activityId}/comments/{commentId}", auth(http.HandlerFunc(activityHandler.DeleteComment)))

	// Protected - Feed & leaderboard
	mux.Handle("GET /api/v1/feed", auth(http.HandlerFunc(feedHandler.GetFeed)))
	mux.Handle("GET /api/v1/leaderboard", auth(http.HandlerFunc(leaderboardHandler.GetLeaderboard)))

	// Start server with CORS + metrics
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))

	handler := middleware.CORS(cfg.CORSOrigins)(middleware.Metrics(mux))
	return http.ListenAndServe(addr, handler)
}
