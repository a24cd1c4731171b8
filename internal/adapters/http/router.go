package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/core/ports"
	"github.com/complykit/filingreview/internal/export"
	"github.com/complykit/filingreview/internal/observability/metrics"
)

const (
	serviceName       = "filing-review-api"
	maxUploadBytes    = 32 << 20
	backpressureWait  = 2 * time.Second
	defaultQueryLimit = 5
)

// Router exposes the review engine over HTTP. Handlers stay thin: decode,
// call a port, map the error, encode.
type Router struct {
	logger    *slog.Logger
	metrics   *metrics.HTTPServerMetrics
	ingestor  ports.DocumentIngestor
	documents ports.DocumentReader
	review     ports.ReviewService
	retriever  ports.KnowledgeRetriever
	classifier ports.DocumentClassifier
	exporter   *export.Service

	processTypes     []string
	contextMaxTokens int
	rateLimitRPS     int
	rateLimitBurst   int
	maxConcurrent    int
}

type RouterOptions struct {
	Logger    *slog.Logger
	Metrics   *metrics.HTTPServerMetrics
	Ingestor  ports.DocumentIngestor
	Documents ports.DocumentReader
	Review     ports.ReviewService
	Retriever  ports.KnowledgeRetriever
	Classifier ports.DocumentClassifier
	Exporter   *export.Service

	ProcessTypes     []string
	ContextMaxTokens int
	RateLimitRPS     int
	RateLimitBurst   int
	MaxConcurrent    int
}

func NewRouter(opts RouterOptions) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger:           logger,
		metrics:          opts.Metrics,
		ingestor:         opts.Ingestor,
		documents:        opts.Documents,
		review:           opts.Review,
		retriever:        opts.Retriever,
		classifier:       opts.Classifier,
		exporter:         opts.Exporter,
		processTypes:     opts.ProcessTypes,
		contextMaxTokens: opts.ContextMaxTokens,
		rateLimitRPS:     opts.RateLimitRPS,
		rateLimitBurst:   opts.RateLimitBurst,
		maxConcurrent:    opts.MaxConcurrent,
	}
}

// Handler builds the full middleware chain around the route table. Order:
// request ID first so every log line carries one, then access log, then
// traffic control, then per-route metrics.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.handleHealth)
	mux.HandleFunc("POST /v1/documents", rt.handleUpload)
	mux.HandleFunc("GET /v1/documents/{document_id}", rt.handleGetDocument)
	mux.HandleFunc("GET /v1/documents/{document_id}/check", rt.handleCheckDocument)
	mux.HandleFunc("POST /v1/classify", rt.handleClassify)
	mux.HandleFunc("POST /v1/reviews", rt.handleGenerateReport)
	mux.HandleFunc("POST /v1/reviews/export", rt.handleExportReport)
	mux.HandleFunc("POST /v1/knowledge/query", rt.handleKnowledgeQuery)
	mux.HandleFunc("GET /v1/process-types", rt.handleProcessTypes)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = backpressureMiddleware(handler, rt.maxConcurrent, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.documents.GetByID(r.Context(), r.PathValue("document_id"))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) handleCheckDocument(w http.ResponseWriter, r *http.Request) {
	processType := strings.TrimSpace(r.URL.Query().Get("process_type"))
	if processType == "" {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("process_type query parameter is required"))
		return
	}

	doc, err := rt.documents.GetByID(r.Context(), r.PathValue("document_id"))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	findings, err := rt.review.CheckDocument(*doc, processType)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"findings":    orEmptyFindings(findings),
	})
}

type classifyRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// handleClassify runs the keyword classifier on caller-supplied text without
// persisting anything. Useful for checking label coverage before an upload.
func (rt *Router) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Filename == "" && req.Text == "" {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("filename or text is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"inferred_type": string(rt.classifier.Classify(req.Filename, req.Text)),
	})
}

type reviewRequest struct {
	ProcessType    string   `json:"process_type"`
	DocumentIDs    []string `json:"document_ids"`
	IncludeContext bool     `json:"include_context"`
}

func (rt *Router) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	report := rt.runReview(w, r)
	if report == nil {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) handleExportReport(w http.ResponseWriter, r *http.Request) {
	report := rt.runReview(w, r)
	if report == nil {
		return
	}
	data, err := rt.exporter.ReportXLSX(report)
	if err != nil {
		rt.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="compliance_report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// runReview decodes the request, runs the report and optionally attaches
// knowledge context per finding. On failure the error response is already
// written and the returned report is nil.
func (rt *Router) runReview(w http.ResponseWriter, r *http.Request) *domain.ComplianceReport {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.writeError(w, r, http.StatusBadRequest, err)
		return nil
	}
	if strings.TrimSpace(req.ProcessType) == "" {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("process_type is required"))
		return nil
	}
	if len(req.DocumentIDs) == 0 {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("document_ids is required"))
		return nil
	}

	docs, err := rt.documents.ListByIDs(r.Context(), req.DocumentIDs)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return nil
	}
	report, err := rt.review.GenerateReport(docs, req.ProcessType)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return nil
	}

	if req.IncludeContext && rt.retriever != nil {
		report = withFindingContext(report, rt.retriever, rt.contextMaxTokens)
	}
	if rt.metrics != nil {
		rt.metrics.RecordReviewRun(serviceName, report.ProcessType,
			len(report.Issues), len(report.MissingDocuments), report.ComplianceScore)
	}
	rt.logger.Info("review.report.ok",
		"request_id", requestIDFromContext(r.Context()),
		"process_type", report.ProcessType,
		"documents", report.TotalDocuments,
		"issues", len(report.Issues),
		"score", report.ComplianceScore,
	)
	return report
}

// withFindingContext returns a copy of the report whose findings carry
// reference text from the knowledge base. The input report is not touched.
func withFindingContext(report *domain.ComplianceReport, retriever ports.KnowledgeRetriever, maxTokens int) *domain.ComplianceReport {
	enriched := *report
	enriched.Issues = make([]domain.Finding, len(report.Issues))
	for i, issue := range report.Issues {
		issue.Context = retriever.RelevantContext(issue.Section+" "+issue.Description, maxTokens)
		enriched.Issues[i] = issue
	}
	return &enriched
}

type knowledgeQueryRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (rt *Router) handleKnowledgeQuery(w http.ResponseWriter, r *http.Request) {
	var req knowledgeQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		rt.writeError(w, r, http.StatusBadRequest, fmt.Errorf("query is required"))
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	results := rt.retriever.Query(req.Query, limit)
	if rt.metrics != nil {
		rt.metrics.RecordKnowledgeQuery(serviceName, len(results))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": orEmptySnippets(results),
	})
}

func (rt *Router) handleProcessTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"process_types": rt.processTypes})
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	rt.writeError(w, r, mapErrorToHTTPStatus(err), err)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= 500 {
		rt.logger.Error("http.handler.error",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func orEmptyFindings(findings []domain.Finding) []domain.Finding {
	if findings == nil {
		return []domain.Finding{}
	}
	return findings
}

func orEmptySnippets(snippets []domain.ScoredSnippet) []domain.ScoredSnippet {
	if snippets == nil {
		return []domain.ScoredSnippet{}
	}
	return snippets
}
