package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/config"
	"github.com/iwvelando/hotel-forecast/internal/forecast"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/internal/project"
	"github.com/iwvelando/hotel-forecast/internal/store"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/optimization"
	"github.com/iwvelando/hotel-forecast/pkg/output"
	"github.com/iwvelando/hotel-forecast/pkg/report"
	"github.com/iwvelando/hotel-forecast/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// UserHeader carries the id of the user a request acts for.
const UserHeader = "X-User-ID"

// Options wires the handler to its collaborators. Zero values select an
// in-memory project store, default settings, a private metrics registry and
// no rate limiting.
type Options struct {
	MaxUploadSize int64
	Version       string
	Projects      *project.Service
	Settings      *config.SettingsHolder
	Registry      *prometheus.Registry
	Limiter       *RateLimiter
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	projects      *project.Service
	settings      *config.SettingsHolder
	metrics       *Metrics
	limiter       *RateLimiter
}

// NewHandler constructs the HTTP handler that serves the calculator and project API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	logger = logging.OrNop(logger)

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	projects := opts.Projects
	if projects == nil {
		projects = project.NewService(logger, store.NewMemoryStore())
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.NewSettingsHolder(config.DefaultSettings())
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		projects:      projects,
		settings:      settings,
		metrics:       NewMetrics(registry),
		limiter:       opts.Limiter,
	}

	mux := http.NewServeMux()

	// Single snapshot evaluation
	mux.HandleFunc("POST /api/calculate", h.handleCalculate)

	// Batch forecast from an uploaded configuration file
	mux.HandleFunc("POST /api/forecast", h.handleForecast)

	// Saved projects
	mux.HandleFunc("GET /api/projects", h.handleListProjects)
	mux.HandleFunc("POST /api/projects", h.handleCreateProject)
	mux.HandleFunc("GET /api/projects/{id}", h.handleGetProject)
	mux.HandleFunc("PUT /api/projects/{id}", h.handleUpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", h.handleDeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/export.csv", h.handleExportCSV)
	mux.HandleFunc("GET /api/projects/{id}/export.pdf", h.handleExportPDF)
	mux.HandleFunc("GET /api/projects/{id}/export.yaml", h.handleExportYAML)

	mux.HandleFunc("GET /api/version", h.handleVersion)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return h.instrument(h.rateLimit(mux))
}

type calculateResponse struct {
	Metrics     calculator.CalculationMetrics `json:"metrics"`
	Sweep       []calculator.SweepPoint       `json:"sweep"`
	Suggestions []optimization.Summary        `json:"suggestions,omitempty"`
	Notes       []string                      `json:"notes,omitempty"`
	Warnings    []string                      `json:"warnings,omitempty"`
}

type forecastResponse struct {
	Projects []forecast.Forecast `json:"projects"`
	CSV      string              `json:"csv"`
	Warnings []string            `json:"warnings,omitempty"`
	Duration string              `json:"duration"`
}

type projectResponse struct {
	Project project.SavedProject           `json:"project"`
	Metrics *calculator.CalculationMetrics `json:"metrics,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInputs(w, r, "server.handleCalculate")
	if !ok {
		return
	}

	result := forecast.Evaluate(h.logger, in, h.settings.Get())
	h.metrics.calculations.Inc()

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Metrics:     result.Metrics,
		Sweep:       result.Sweep,
		Suggestions: result.Suggestions,
		Notes:       result.Notes,
		Warnings:    validation.ValidateInputs(in),
	})
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := forecast.GetForecast(h.logger, *cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, forecast.ErrNoActiveProjects) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}
	h.metrics.calculations.Add(float64(len(results)))

	csv, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("projects", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, forecastResponse{
		Projects: results,
		CSV:      csv,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), userID(r))
	if err != nil {
		h.respondStoreError(w, err, "server.handleListProjects")
		return
	}
	if projects == nil {
		projects = []project.SavedProject{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	h.saveProject(w, r, "", http.StatusCreated, "server.handleCreateProject")
}

func (h *handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	h.saveProject(w, r, r.PathValue("id"), http.StatusOK, "server.handleUpdateProject")
}

func (h *handler) saveProject(w http.ResponseWriter, r *http.Request, id string, status int, op string) {
	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	saved, err := h.projects.Save(r.Context(), userID(r), id, in)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.metrics.projectWrites.WithLabelValues("save").Inc()
	h.writeJSON(w, status, projectResponse{Project: saved})
}

func (h *handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	saved, metrics, err := h.projects.Reopen(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleGetProject")
		return
	}
	h.writeJSON(w, http.StatusOK, projectResponse{Project: saved, Metrics: &metrics})
}

func (h *handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		h.respondStoreError(w, err, "server.handleDeleteProject")
		return
	}
	h.metrics.projectWrites.WithLabelValues("delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"

	result, ok := h.reopenForecast(w, r, op)
	if !ok {
		return
	}
	csv, err := output.CsvString([]forecast.Forecast{result})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}
	h.writeAttachment(w, "text/csv; charset=utf-8", report.FileName(result.Name, "csv"), []byte(csv))
}

func (h *handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportPDF"

	result, ok := h.reopenForecast(w, r, op)
	if !ok {
		return
	}
	pdf, err := report.Generate(result, h.settings.Get().CurrencySymbol, time.Now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render pdf: %v", err), op)
		return
	}
	h.writeAttachment(w, "application/pdf", report.FileName(result.Name, "pdf"), pdf)
}

func (h *handler) handleExportYAML(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportYAML"

	saved, err := h.projects.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	in := saved.Inputs
	in.PropertyName = saved.Name
	data, err := config.ExportProject(in, h.settings.Get())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render yaml: %v", err), op)
		return
	}
	h.writeAttachment(w, "application/yaml", report.FileName(saved.Name, "yaml"), data)
}

func (h *handler) reopenForecast(w http.ResponseWriter, r *http.Request, op string) (forecast.Forecast, bool) {
	saved, _, err := h.projects.Reopen(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return forecast.Forecast{}, false
	}
	in := saved.Inputs
	in.PropertyName = saved.Name
	return forecast.Evaluate(h.logger, in, h.settings.Get()), true
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (calculator.InputState, bool) {
	var in calculator.InputState
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return calculator.InputState{}, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return calculator.InputState{}, false
	}
	return in, true
}

func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
		return id
	}
	return constants.DefaultUserID
}

func (h *handler) writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write attachment", zap.String("file", filename), zap.Error(err))
	}
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, project.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing status, so an encoding failure
// still produces a well formed 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
