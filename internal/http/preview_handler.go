package http

import (
	"errors"
	"net/http"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/internal/http/middleware"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/ratelimiter"
)

// PreviewHandler serves the previews the block editor shows next to the
// document, plus the variable catalog it offers in variable blocks.
type PreviewHandler struct {
	service        domain.PreviewService
	logger         logger.Logger
	compileLimiter *ratelimiter.Limiter
}

type PreviewHandlerOption func(*PreviewHandler)

// WithCompileRateLimit bounds how often one client may compile emails
func WithCompileRateLimit(limiter *ratelimiter.Limiter) PreviewHandlerOption {
	return func(h *PreviewHandler) {
		h.compileLimiter = limiter
	}
}

func NewPreviewHandler(service domain.PreviewService, logger logger.Logger, opts ...PreviewHandlerOption) *PreviewHandler {
	h := &PreviewHandler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PreviewHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/notificationRules.preview", h.handlePreview)
	mux.HandleFunc("/api/notificationRules.previewAll", h.handlePreviewAll)

	var compile http.Handler = http.HandlerFunc(h.handleCompileEmail)
	if h.compileLimiter != nil {
		compile = middleware.RateLimitMiddleware(h.compileLimiter)(compile)
	}
	mux.Handle("/api/notificationRules.compileEmail", compile)

	mux.HandleFunc("/api/variables.catalog", h.handleCatalog)
}

// writeSourceError maps the errors of loading a preview source
func (h *PreviewHandler) writeSourceError(w http.ResponseWriter, ruleID string, err error, message string) {
	if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
		WriteJSONError(w, "Notification rule not found", http.StatusNotFound)
		return
	}
	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	h.logger.WithField("rule_id", ruleID).WithField("error", err.Error()).Error(message)
	WriteJSONError(w, message, http.StatusInternalServerError)
}

func (h *PreviewHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PreviewRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Preview(r.Context(), req)
	if err != nil {
		h.writeSourceError(w, req.RuleID, err, "Failed to render preview")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PreviewHandler) handlePreviewAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PreviewAllRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.PreviewAll(r.Context(), req)
	if err != nil {
		h.writeSourceError(w, req.RuleID, err, "Failed to render previews")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PreviewHandler) handleCompileEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CompileEmailRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.CompileEmail(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrCompileDisabled) {
			WriteJSONError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		h.writeSourceError(w, req.RuleID, err, "Failed to compile email")
		return
	}

	// Compilation errors are part of the result, the request itself succeeded
	writeJSON(w, http.StatusOK, result)
}

func (h *PreviewHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Catalog(r.Context()))
}
