package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myblog/internal/config"
	"myblog/internal/db"
	"myblog/internal/logger"
	"myblog/internal/mapper"
	"myblog/internal/repository"
	"myblog/internal/server"
	"myblog/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	l := logger.Init(cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		l.Error("Open database", slog.String("path", cfg.DBPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()

	uow := repository.New(database)
	srv := server.New(
		service.NewUserService(uow, mapper.New()),
		service.NewPostService(uow),
		service.NewLikeService(uow),
	)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		l.Info("Listening", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Serve", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		l.Error("Shutdown", slog.Any("error", err))
	}
}
