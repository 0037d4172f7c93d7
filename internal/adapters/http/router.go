// Package httpadapter exposes the REST surface of the tax filing assistant.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taxforge/tax-filing-assistant/internal/config"
	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
	"github.com/taxforge/tax-filing-assistant/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg        config.Config
	ingest     ports.DocumentIngestor
	docs       ports.DocumentReader
	classifier ports.DocumentClassifier
	calculator ports.ReturnCalculator
	forms      ports.FormService
	submitter  ports.ReturnSubmitter
	exporter   ports.SubmissionExporter
	metrics    *metrics.HTTPServerMetrics

	// exportLimiter throttles workbook generation separately from the
	// global request limit.
	exportLimiter *rate.Limiter
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	docs ports.DocumentReader,
	classifier ports.DocumentClassifier,
	calculator ports.ReturnCalculator,
	forms ports.FormService,
	submitter ports.ReturnSubmitter,
	exporter ports.SubmissionExporter,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	rt := &Router{
		cfg:        cfg,
		ingest:     ingest,
		docs:       docs,
		classifier: classifier,
		calculator: calculator,
		forms:      forms,
		submitter:  submitter,
		exporter:   exporter,
		metrics:    httpMetrics,
	}
	if cfg.ExportRateLimitRPS > 0 {
		rt.exportLimiter = rate.NewLimiter(rate.Limit(cfg.ExportRateLimitRPS), cfg.ExportRateLimitRPS)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.handleDocuments)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/tax/calculate", rt.calculate)
	mux.HandleFunc("/v1/tax/forms", rt.handleForms)
	mux.HandleFunc("/v1/tax/forms/", rt.getFormTemplate)
	mux.HandleFunc("/v1/tax/draft", rt.getDraft)
	mux.HandleFunc("/v1/tax/filing-statuses", rt.getFilingStatuses)
	mux.HandleFunc("/v1/tax/states", rt.getStates)
	mux.HandleFunc("/v1/submissions", rt.handleSubmissions)
	mux.HandleFunc("/v1/submissions/", rt.getSubmissionSubresource)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	// A typed-nil *HTTPServerMetrics boxed into the interface would pass the
	// observer nil check inside the middleware, so assign only when present.
	var limitObserver rateLimitObserver
	if rt.metrics != nil {
		limitObserver = rt.metrics
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, time.Duration(rt.cfg.APIOverloadWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, serviceName, limitObserver)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID pulls the caller identity from the X-User-Id header. Authentication
// itself lives upstream; the service only scopes data by this value.
func (rt *Router) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "X-User-Id header is required"})
		return "", false
	}
	return userID, true
}

func (rt *Router) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil && rt.classifier != nil {
		rt.metrics.RecordUpload(serviceName, string(rt.classifier.Classify(doc.Filename)))
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	docs, err := rt.docs.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type calculateRequest struct {
	Form1040     domain.CanonicalFields `json:"form_1040"`
	ScheduleA    domain.CanonicalFields `json:"schedule_a"`
	ScheduleC    domain.CanonicalFields `json:"schedule_c"`
	FilingStatus string                 `json:"filing_status"`
	State        string                 `json:"state"`
}

type calculateResponse struct {
	domain.TaxResult
	AutoPopulated domain.CanonicalFields `json:"auto_populated_data"`
}

func (rt *Router) calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	resp, err := rt.calculator.Calculate(r.Context(), userID, ports.CalculationRequest{
		Form1040:     req.Form1040,
		ScheduleA:    req.ScheduleA,
		ScheduleC:    req.ScheduleC,
		FilingStatus: req.FilingStatus,
		State:        req.State,
	})
	if rt.metrics != nil {
		rt.metrics.RecordCalculation(serviceName, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{
		TaxResult:     resp.Result,
		AutoPopulated: resp.AutoPopulated,
	})
}

func (rt *Router) handleForms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.saveForm(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"forms": availableForms})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) saveForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	var req struct {
		FormType string                 `json:"form_type"`
		FormData domain.CanonicalFields `json:"form_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	draft, err := rt.forms.SaveForm(r.Context(), userID, req.FormType, req.FormData)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   strings.ToUpper(req.FormType) + " form saved successfully",
		"form_type": req.FormType,
		"status":    "saved",
		"draft_id":  draft.ID,
		"version":   draft.Version,
	})
}

func (rt *Router) getFormTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	formType := strings.TrimPrefix(r.URL.Path, "/v1/tax/forms/")
	template, ok := formTemplates[formType]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "form type '" + formType + "' not found"})
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (rt *Router) getDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	draft, err := rt.forms.GetDraft(r.Context(), userID)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{
				"form_data": domain.CanonicalFields{},
				"message":   "no draft found",
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (rt *Router) getFilingStatuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filing_statuses": filingStatusOptions})
}

func (rt *Router) getStates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"states": stateOptions})
}

func (rt *Router) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.submitReturn(w, r)
	case http.MethodGet:
		rt.listSubmissions(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) submitReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	var req struct {
		FormData   domain.CanonicalFields `json:"form_data"`
		FilingType string                 `json:"filing_type"`
		TaxResult  *domain.TaxResult      `json:"tax_result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	submission, err := rt.submitter.Submit(r.Context(), userID, req.FilingType, req.FormData, req.TaxResult)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordSubmission(serviceName, submission.FilingType)
	}
	writeJSON(w, http.StatusCreated, submission)
}

func (rt *Router) listSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	subs, err := rt.submitter.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func (rt *Router) getSubmissionSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	userID, ok := rt.userID(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/submissions/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "submission id is required"})
		return
	}

	switch sub {
	case "":
		submission, err := rt.submitter.GetByID(r.Context(), userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, submission)
	case "export":
		rt.exportSubmission(w, r, userID, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown submission resource"})
	}
}

func (rt *Router) exportSubmission(w http.ResponseWriter, r *http.Request, userID, id string) {
	if rt.exportLimiter != nil && !rt.exportLimiter.Allow() {
		if rt.metrics != nil {
			rt.metrics.RecordRateLimited(serviceName, r.URL.Path)
		}
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "export rate limit exceeded"})
		return
	}

	submission, err := rt.submitter.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := rt.exporter.Export(submission)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tax-return-`+submission.ID+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
