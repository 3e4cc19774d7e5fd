// Package server wires the HTTP surface: configuration, database pool,
// schema migrations, AI adapter selection, authentication and routes.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/internal/util"
	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	aiollama "github.com/relatiq-ai/newsgraph/backend/pkg/ai/ollama"
	aiopenai "github.com/relatiq-ai/newsgraph/backend/pkg/ai/openai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/graph"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
	"github.com/relatiq-ai/newsgraph/backend/pkg/query"
	storepgx "github.com/relatiq-ai/newsgraph/backend/pkg/store/pgx"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	echomid "github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func runMigrations(databaseURL string) {
	path := util.GetEnvString("MIGRATIONS_PATH", "migrations")
	m, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		logger.Fatal("Failed to load migrations", "err", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to apply migrations", "err", err)
	}
}

func newAIClient() ai.GraphAIClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := aiollama.NewGraphOllamaClient(aiollama.NewGraphOllamaClientParams{
			QueryModel:   util.GetEnv("AI_QUERY_MODEL"),
			InsightModel: util.GetEnv("AI_INSIGHT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return aiopenai.NewGraphOpenAIClient(aiopenai.NewGraphOpenAIClientParams{
			QueryModel:   util.GetEnv("AI_QUERY_MODEL"),
			InsightModel: util.GetEnv("AI_INSIGHT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	// Auth is optional: without AUTH_URL the API runs open.
	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	}

	aiClient := newAIClient()
	graphStore := storepgx.NewGraphDBStorageWithConnection(conn)

	var agentOpts []query.QueryOption
	if thinking := util.GetEnv("AI_THINKING"); thinking != "" {
		agentOpts = append(agentOpts, query.WithThinking(thinking))
	}
	if budget := int(util.GetEnvNumeric("AI_INSIGHT_CONTEXT_TOKENS", 0)); budget > 0 {
		agentOpts = append(agentOpts, query.WithMaxContextTokens(budget))
	}

	app := &middleware.App{
		DBConn:       conn,
		Store:        graphStore,
		Graph:        graph.NewGraphClient(graph.NewGraphClientParams{Store: graphStore}),
		Agent:        query.NewGraphQueryClient(aiClient, graphStore, agentOpts),
		AiClient:     aiClient,
		Key:          key,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(middleware.AppContextMiddleware(app))
	e.Use(echomid.CORS())
	e.Use(echomid.RequestLogger())
	e.Use(echomid.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
