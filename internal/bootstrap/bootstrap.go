package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"ragserve/internal/config"
	"ragserve/internal/core/ports"
	"ragserve/internal/core/usecase"
	"ragserve/internal/infrastructure/chunking"
	"ragserve/internal/infrastructure/llm/openai"
	"ragserve/internal/infrastructure/loader"
	"ragserve/internal/infrastructure/resilience"
	"ragserve/internal/infrastructure/vector/memindex"
	"ragserve/internal/observability/logging"
	"ragserve/internal/observability/metrics"
)

const ServiceName = "ragserve"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.HTTPServerMetrics

	QueryUC ports.QuestionAnswerer

	IndexSize      int
	IndexDimension int
}

// New builds the whole graph. The document is loaded, chunked, embedded and
// indexed here, before the App is returned, so the serving path only ever
// observes a fully built index.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.Setup(ServiceName, cfg.LogLevel)
	m := metrics.NewHTTPServerMetrics(ServiceName)

	doc, err := loader.Load(cfg.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: cfg.RetryInitialBackoff,
		RetryMaxBackoff:     cfg.RetryMaxBackoff,
		BreakerEnabled:      cfg.BreakerEnabled,
	})
	client := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIGenModel, cfg.OpenAIEmbedModel, executor)
	embedder := openai.NewEmbedder(client)
	generator := openai.NewGenerator(client)

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	indexUC := usecase.NewIndexDocumentUseCase(chunker, embedder, memindex.Builder{})

	index, chunks, err := indexUC.Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		QueryUC:   usecase.NewQueryUseCase(embedder, index, generator, cfg.RAGTopK),
		IndexSize: len(chunks),
	}
	if mi, ok := index.(*memindex.Index); ok {
		app.IndexDimension = mi.Dimension()
	}
	m.SetIndexInfo(app.IndexSize, app.IndexDimension)

	logger.Info("index_built",
		"document", doc.Path,
		"chunks", app.IndexSize,
		"dimension", app.IndexDimension,
		"chunk_size", cfg.ChunkSize,
		"chunk_overlap", cfg.ChunkOverlap,
	)
	return app, nil
}

// Healthy reports whether the process can serve grounded answers.
func (a *App) Healthy() bool {
	return a.Config.OpenAIAPIKey != "" && a.QueryUC != nil
}
