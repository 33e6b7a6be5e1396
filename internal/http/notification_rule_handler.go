package http

import (
	"net/http"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/logger"
)

type NotificationRuleHandler struct {
	service domain.NotificationRuleService
	logger  logger.Logger
}

func NewNotificationRuleHandler(service domain.NotificationRuleService, logger logger.Logger) *NotificationRuleHandler {
	return &NotificationRuleHandler{
		service: service,
		logger:  logger,
	}
}

func (h *NotificationRuleHandler) RegisterRoutes(mux *http.ServeMux) {
	// RPC-style endpoints with dot notation
	mux.HandleFunc("/api/notificationRules.list", h.handleList)
	mux.HandleFunc("/api/notificationRules.get", h.handleGet)
	mux.HandleFunc("/api/notificationRules.create", h.handleCreate)
	mux.HandleFunc("/api/notificationRules.update", h.handleUpdate)
	mux.HandleFunc("/api/notificationRules.delete", h.handleDelete)
}

func (h *NotificationRuleHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListNotificationRulesRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.ListRules(r.Context(), req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list notification rules")
		WriteJSONError(w, "Failed to list notification rules", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationRuleHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetNotificationRuleRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.service.GetRule(r.Context(), req.ID)
	if err != nil {
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			WriteJSONError(w, "Notification rule not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("rule_id", req.ID).WithField("error", err.Error()).Error("Failed to get notification rule")
		WriteJSONError(w, "Failed to get notification rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rule": rule,
	})
}

func (h *NotificationRuleHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateNotificationRuleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rule, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreateRule(r.Context(), rule); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create notification rule")
		WriteJSONError(w, "Failed to create notification rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"rule": rule,
	})
}

func (h *NotificationRuleHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateNotificationRuleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rule, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateRule(r.Context(), rule); err != nil {
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			WriteJSONError(w, "Notification rule not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("rule_id", rule.ID).WithField("error", err.Error()).Error("Failed to update notification rule")
		WriteJSONError(w, "Failed to update notification rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rule": rule,
	})
}

func (h *NotificationRuleHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteNotificationRuleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteRule(r.Context(), id); err != nil {
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			WriteJSONError(w, "Notification rule not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("rule_id", id).WithField("error", err.Error()).Error("Failed to delete notification rule")
		WriteJSONError(w, "Failed to delete notification rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
