package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complykit/filingreview/internal/bootstrap"
	"github.com/complykit/filingreview/internal/config"
	"github.com/complykit/filingreview/internal/observability/metrics"
)

const serviceName = "filing-review-worker"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := bootstrap.Setup(ctx, cfg, serviceName)
	if err != nil {
		os.Stderr.WriteString("bootstrap failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           metricsMux(workerMetrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		app.Logger.Info("worker_metrics_listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("metrics_server_error", "error", err)
		}
	}()

	handler := func(handlerCtx context.Context, documentID string) error {
		start := time.Now()
		workerMetrics.StartDocument()

		if doc, err := app.Repository.GetByID(handlerCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
		}

		err := app.Processor.ProcessByID(handlerCtx, documentID)
		workerMetrics.FinishDocument(serviceName, time.Since(start), err)
		if err != nil {
			return err
		}

		if doc, err := app.Repository.GetByID(handlerCtx, documentID); err == nil {
			workerMetrics.RecordClassification(serviceName, string(doc.InferredType))
			app.Logger.Info("document_processed",
				"document_id", documentID,
				"inferred_type", doc.InferredType,
				"sections", len(doc.DetectedSections),
				"word_count", doc.WordCount,
			)
		}
		return nil
	}

	app.Logger.Info("worker_started", "subject", cfg.NATSSubject)
	if err := app.Queue.SubscribeDocumentIngested(ctx, handler); err != nil {
		app.Logger.Error("subscribe_error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("metrics_shutdown_error", "error", err)
	}
	app.Logger.Info("worker_stopped")
}

func metricsMux(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}
