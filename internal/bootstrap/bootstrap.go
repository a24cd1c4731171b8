package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/complykit/filingreview/internal/config"
	"github.com/complykit/filingreview/internal/core/ports"
	"github.com/complykit/filingreview/internal/core/usecase"
	"github.com/complykit/filingreview/internal/export"
	"github.com/complykit/filingreview/internal/infrastructure/checklist"
	"github.com/complykit/filingreview/internal/infrastructure/classifier/keyword"
	"github.com/complykit/filingreview/internal/infrastructure/extractor"
	"github.com/complykit/filingreview/internal/infrastructure/knowledge"
	natsqueue "github.com/complykit/filingreview/internal/infrastructure/queue/nats"
	"github.com/complykit/filingreview/internal/infrastructure/repository/postgres"
	"github.com/complykit/filingreview/internal/infrastructure/resilience"
	"github.com/complykit/filingreview/internal/infrastructure/storage/localfs"
	"github.com/complykit/filingreview/internal/infrastructure/structure"
	"github.com/complykit/filingreview/internal/observability/logging"
)

// App holds every wired dependency shared by the api and worker binaries.
// Close releases the external connections in reverse wiring order.
type App struct {
	Config config.Config
	Logger *slog.Logger

	DB    *sql.DB
	Queue *natsqueue.Queue

	Repository *postgres.DocumentRepository
	Checklists checklist.Set

	Ingestor   ports.DocumentIngestor
	Processor  ports.DocumentProcessor
	Review     ports.ReviewService
	Classifier ports.DocumentClassifier
	Retriever  ports.KnowledgeRetriever
	Exporter   *export.Service
}

// Setup wires the full dependency graph from configuration. A missing or
// malformed checklist file is fatal; a missing knowledge base degrades to an
// empty store and is only logged.
func Setup(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	store, err := localfs.New(cfg.StoragePath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultPolicy()),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect queue: %w", err)
	}

	table := keyword.DefaultTable()
	if cfg.LabelTablePath != "" {
		table, err = keyword.LoadTable(cfg.LabelTablePath)
		if err != nil {
			queue.Close()
			db.Close()
			return nil, fmt.Errorf("load label table: %w", err)
		}
	}
	clf := keyword.NewClassifier(table)
	scanner := structure.NewScanner(cfg.MaxSections)

	checklists, err := checklist.Load(cfg.ChecklistPath)
	if err != nil {
		queue.Close()
		db.Close()
		return nil, fmt.Errorf("load checklists: %w", err)
	}
	knowledgeStore := knowledge.Load(cfg.KnowledgeBasePath, logger)
	logger.Info("knowledge_base_loaded", "snippets", knowledgeStore.Len(), "path", cfg.KnowledgeBasePath)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Queue:      queue,
		Repository: repo,
		Checklists: checklists,
		Ingestor:   usecase.NewIngestDocumentUseCase(repo, store, queue),
		Processor:  usecase.NewProcessDocumentUseCase(repo, extractor.NewSelector(store), clf, scanner),
		Review:     usecase.NewReviewUseCase(checklists),
		Classifier: clf,
		Retriever:  knowledgeStore,
		Exporter:   export.NewService(logger),
	}, nil
}

func (a *App) Close() {
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("db_close_error", "error", err)
		}
	}
}
