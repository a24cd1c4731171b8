package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/complykit/filingreview/internal/adapters/http"
	"github.com/complykit/filingreview/internal/bootstrap"
	"github.com/complykit/filingreview/internal/config"
	"github.com/complykit/filingreview/internal/observability/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := bootstrap.Setup(ctx, cfg, "filing-review-api")
	if err != nil {
		// Logger may not be wired yet, write to stderr and exit.
		os.Stderr.WriteString("bootstrap failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer app.Close()

	router := httpadapter.NewRouter(httpadapter.RouterOptions{
		Logger:           app.Logger,
		Metrics:          metrics.NewHTTPServerMetrics("filing-review-api"),
		Ingestor:         app.Ingestor,
		Documents:        app.Repository,
		Review:           app.Review,
		Retriever:        app.Retriever,
		Classifier:       app.Classifier,
		Exporter:         app.Exporter,
		ProcessTypes:     app.Checklists.ProcessTypes(),
		ContextMaxTokens: cfg.ContextMaxTokens,
		RateLimitRPS:     cfg.APIRateLimitRPS,
		RateLimitBurst:   cfg.APIRateLimitBurst,
		MaxConcurrent:    cfg.APIMaxConcurrent,
	})

	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("api_listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		app.Logger.Info("shutdown_signal_received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("server_error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("shutdown_error", "error", err)
	}
	app.Logger.Info("api_stopped")
}
