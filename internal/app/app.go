package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fortune_wheel/internal/config"
	"fortune_wheel/internal/lib/logger/sl"

	"golang.org/x/exp/slog"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := s.ServiceProvider.Logger()
	logger.Info("starting server",
		slog.String("env", s.ServiceProvider.AppCfg().Env()),
		slog.String("storage", s.ServiceProvider.AppCfg().Storage()),
	)

	httpCfg := s.ServiceProvider.HTTPCfg()
	srv := &http.Server{
		Addr:         httpCfg.Address(),
		Handler:      s.ServiceProvider.Router(ctx),
		ReadTimeout:  httpCfg.Timeout(),
		WriteTimeout: httpCfg.Timeout(),
		IdleTimeout:  httpCfg.IdleTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("address", httpCfg.Address()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", sl.Err(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", sl.Err(err))
		return err
	}

	logger.Info("server stopped")

	return nil
}
