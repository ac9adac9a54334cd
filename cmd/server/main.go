package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/api"
	"github.com/nzambu/coachsim/internal/config"
	"github.com/nzambu/coachsim/internal/repository/allowlist"
	"github.com/nzambu/coachsim/internal/repository/refdoc"
	"github.com/nzambu/coachsim/internal/repository/sheets"
	"github.com/nzambu/coachsim/internal/repository/sqlite"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting coaching simulator API server")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// Reference document store
	refs, err := refdoc.NewStore(cfg.Storage.ReferencePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open reference document store")
	}

	// Durable local archive mirror
	mirror, err := sqlite.NewArchive(context.Background(), cfg.Archive.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open archive mirror")
	}
	defer mirror.Close()

	// Shared spreadsheet archive (optional)
	deps := api.Deps{
		Allowlist: allowlist.NewSource(cfg.Storage.AllowlistPath),
		Reference: refs,
		Mirror:    mirror,
	}
	if cfg.Archive.SpreadsheetID != "" {
		sheet, err := sheets.NewArchive(context.Background(), cfg.Archive)
		if err != nil {
			log.Error().Err(err).Msg("Spreadsheet archive unavailable, exports fall back to the local mirror")
		} else {
			deps.Sheet = sheet
		}
	} else {
		log.Warn().Msg("No spreadsheet configured, sessions archive to the local mirror only")
	}

	router := api.NewRouter(cfg, deps)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var writers []io.Writer
	if os.Getenv("ENV") != "production" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		writers = append(writers, os.Stderr)
	}

	if cfg.File != "" {
		rotator, err := rotatelogs.New(
			cfg.File,
			rotatelogs.WithMaxAge(30*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open rotating log file")
		} else {
			writers = append(writers, rotator)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}
