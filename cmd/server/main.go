package main

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/handlers"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/repo"
	"MoodKeeper/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	bus, err := newBus(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize bus", "error", err)
	}
	defer bus.Close()

	hub := realtime.NewHub(sugar)
	if err := bus.StartForwarder(ctx, hub.Broadcast); err != nil {
		sugar.Fatalw("failed to start forwarder", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB), cfg.RecentLoginWindow)
	recordService := service.NewRecordService(repo.NewRecordRepository(gormDB), bus, sugar)

	h := handlers.NewHandler(userService, recordService, hub, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"RedisAddr", cfg.RedisAddr,
		"RecentLoginWindow", cfg.RecentLoginWindow,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// newBus выбирает Redis при заданном REDIS_ADDR, иначе шину в памяти процесса.
func newBus(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) (realtime.Bus, error) {
	if cfg.RedisAddr == "" {
		sugar.Infow("using in-process bus")
		return realtime.NewMemoryBus(), nil
	}
	return realtime.NewRedisBus(ctx, cfg.RedisAddr, cfg.RedisChannel, sugar)
}
