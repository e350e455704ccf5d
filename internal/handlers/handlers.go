package handlers

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	recordService *service.RecordService,
	hub *realtime.Hub,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, recordService, logger, config)
	recordHandler := NewRecordHandler(recordService, logger)
	streamHandler := NewStreamHandler(recordService, hub, logger)

	// Public routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Get("/api/schema", Schema)

	// Routes for the signed-in user
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/user", userHandler.Me)
		r.Delete("/api/user", userHandler.Delete)

		r.Post("/api/records", recordHandler.Create)
		r.Get("/api/records", recordHandler.List)
		r.Get("/api/records/stream", streamHandler.Stream)
		r.Delete("/api/records/{id}", recordHandler.Delete)
		r.Get("/api/insights", recordHandler.Insights)
	})

	return &Handler{Router: r}
}
