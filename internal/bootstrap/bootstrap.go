// Package bootstrap wires infrastructure and usecases for the api and
// worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/taxforge/tax-filing-assistant/internal/config"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
	"github.com/taxforge/tax-filing-assistant/internal/core/usecase"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/export"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/extraction"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/ocr"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/queue/nats"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/repository/postgres"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/resilience"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Docs  ports.DocumentRepository

	IngestUC   ports.DocumentIngestor
	ReadUC     ports.DocumentReader
	ProcessUC  ports.DocumentProcessor
	CalcUC     ports.ReturnCalculator
	FormsUC    ports.FormService
	SubmitUC   ports.ReturnSubmitter
	Classifier ports.DocumentClassifier
	Exporter   ports.SubmissionExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	docs := postgres.NewDocumentRepository(db)
	drafts := postgres.NewDraftRepository(db)
	submissions := postgres.NewSubmissionRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:  cfg.RetryMaxAttempts,
		PerAttemptTimeout: time.Duration(cfg.ProcessTimeoutSec) * time.Second,
		BreakerEnabled:    cfg.BreakerEnabled,
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	recognizer := ocr.WithResilience(ocr.New(
		ocr.WithTessdataPrefix(cfg.TessdataPrefix),
		ocr.WithLanguage(cfg.OCRLanguage),
	), executor)
	classifier := extraction.NewFilenameClassifier()
	extractor := extraction.NewPatternExtractor()

	accumulator := usecase.NewDraftAccumulator(drafts)

	ingestUC := usecase.NewIngestDocumentUseCase(docs, storage, queue)
	readUC := usecase.NewDocumentReadUseCase(docs)
	processUC := usecase.NewProcessDocumentUseCase(docs, storage, recognizer, classifier, extractor, accumulator)
	calcUC := usecase.NewCalculateReturnUseCase(accumulator)
	formsUC := usecase.NewFormUseCase(accumulator)
	submitUC := usecase.NewSubmitReturnUseCase(submissions)

	return &App{
		Config: cfg,

		Queue: queue,
		Docs:  docs,

		IngestUC:   ingestUC,
		ReadUC:     readUC,
		ProcessUC:  processUC,
		CalcUC:     calcUC,
		FormsUC:    formsUC,
		SubmitUC:   submitUC,
		Classifier: classifier,
		Exporter:   export.NewXLSXExporter(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
