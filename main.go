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

	"github.com/avast/retry-go"
	"github.com/pocketledger/backend/internal/config"
	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := logLevel(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(output).With().Timestamp().Logger()

	db, err := connect(cfg.Database)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(controllers.Controller{DB: db}, r.Group("/"), cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("backend startup complete")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	// Wait for an interrupt or termination signal and shut down
	// gracefully, giving in-flight requests the configured time
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("server stopped")
}

// logLevel returns the configured log level. Without configuration, debug
// mode logs at debug level and all other modes at info level.
func logLevel(cfg config.Config) (zerolog.Level, error) {
	if cfg.LogLevel != "" {
		return zerolog.ParseLevel(cfg.LogLevel)
	}

	if cfg.GinMode == "debug" {
		return zerolog.DebugLevel, nil
	}

	return zerolog.InfoLevel, nil
}

// connect opens the database. Connecting is retried as the database server
// might start after the backend.
func connect(cfg config.Database) (*gorm.DB, error) {
	var db *gorm.DB

	err := retry.Do(
		func() error {
			var err error
			db, err = models.Connect(cfg)
			return err
		},
		retry.Attempts(5),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Msg("connecting to the database failed")
		}),
	)

	return db, err
}
