package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	vufindapi "github.com/iziplay/vufind-api"
	routing "github.com/iziplay/vufind-api/pkg/api"
	"github.com/iziplay/vufind-api/pkg/database"
	"github.com/iziplay/vufind-api/pkg/sync"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

func getLogLevelFromEnv() slog.Level {
	levelStr := os.Getenv("LOG_LEVEL")

	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getSyncIntervalFromEnv() time.Duration {
	interval, err := time.ParseDuration(os.Getenv("VUFIND_SYNC_INTERVAL"))
	if err != nil || interval <= 0 {
		return 24 * time.Hour
	}
	return interval
}

func main() {
	ctx := context.Background()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: getLogLevelFromEnv()})))

	exp, err := otlptracegrpc.New(ctx)
	if err != nil {
		panic(err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName("vufind-api"),
			),
		),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if err := database.Connect(); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Ping(); err != nil {
		slog.Error("Failed to ping database", "error", err)
		os.Exit(1)
	}

	if err := database.DB.Use(tracing.NewPlugin()); err != nil {
		slog.Error("Failed to register database tracing", "error", err)
	}

	sync.Options.ExpandFullrecord, _ = strconv.ParseBool(os.Getenv("VUFIND_EXPAND_FULLRECORD"))

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Server"},
		AllowCredentials: false,
	}))

	addr := ":80"
	if port, hasPort := os.LookupEnv("API_PORT"); hasPort {
		addr = ":" + port
	}

	host := "http://localhost"
	if hostEnv, hasHost := os.LookupEnv("API_HOST"); hasHost {
		host = hostEnv
	} else {
		host += addr
	}

	config := huma.DefaultConfig("VuFind API", "1.0.0")
	config.OpenAPI.Info.Description = vufindapi.Readme
	config.OpenAPI.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	config.DocsPath = "/"
	config.Servers = []*huma.Server{
		{URL: host},
	}
	api := humachi.New(router, config)

	routing.Setup(api)

	server := &http.Server{
		Addr:    addr,
		Handler: otelhttp.NewHandler(router, "api"),
	}

	go func() {
		slog.Info("Starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	go database.ComputeAndCacheStats(false)

	path := os.Getenv("VUFIND_DUMP_PATH")
	if path == "" {
		slog.Warn("VUFIND_DUMP_PATH is not set, scheduled sync disabled")
		select {}
	}
	interval := getSyncIntervalFromEnv()

	for {
		ctx := context.Background()

		// Calculate time until next sync
		var sleepDuration time.Duration
		lastSync, err := sync.GetLastSync(ctx)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("Failed to get last sync", "error", err)
			os.Exit(1)
		}
		if lastSync != nil {
			sleepDuration = time.Until(lastSync.Date.Add(interval))
		}

		// If sleep duration is negative, sync immediately
		if sleepDuration < 0 {
			sleepDuration = 0
		}

		slog.Info("Next sync scheduled", "in", sleepDuration, "path", path)
		time.Sleep(sleepDuration)

		if err := sync.Sync(ctx, path); err != nil {
			slog.Error("Sync failed", "error", err, "retry_in", interval)
			time.Sleep(interval)
		}
	}
}
