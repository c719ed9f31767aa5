package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecotrack/internal/client"
	"ecotrack/internal/env"
	"ecotrack/internal/footprint"
	"ecotrack/internal/handler"
	"ecotrack/internal/service"
	"ecotrack/internal/tracing"
	"ecotrack/internal/wrapper"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type App struct{}

const (
	successCode = 0
	failureCode = 1
)

func New() *App {
	return &App{}
}

func (a *App) Run() (exitCode int) {
	env.LoadEnv()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.DefaultContextLogger = &log.Logger

	cfg, err := env.Load()
	if err != nil {
		log.Error().Err(err).Msg("couldn't load configuration")
		return failureCode
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Error().Err(err).Msg("couldn't initialize tracing")
		return failureCode
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("couldn't flush traces")
		}
	}()

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, recommendation requests will fail")
	}
	geminiClient, err := client.NewClient(cfg.GeminiURL, cfg.GeminiModel, cfg.GeminiAPIKey, 0)
	if err != nil {
		log.Error().Err(err).Msg("couldn't initialize a gemini client")
		return failureCode
	}
	textGenerator := wrapper.New(geminiClient, cfg.AITimeout)
	recommender := service.New(textGenerator)

	calculateHandler := handler.NewCalculate(footprint.NewTable())
	recommendationHandler := handler.NewRecommendation(recommender)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(calculateHandler.Handle, recommendationHandler.Handle, cfg.CORSAllowedOrigin),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	if err := serve(ctx, server, cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server crashed")
		return failureCode
	}

	log.Info().Msg("server stopped gracefully")
	return successCode
}

// serve runs server until ctx is done, then shuts it down within shutdownTimeout
func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
