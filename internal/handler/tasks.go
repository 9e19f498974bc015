package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/motion-bridge/internal/model"
	"github.com/BuzzLyutic/motion-bridge/internal/service"
	"github.com/BuzzLyutic/motion-bridge/pkg/respond"
)

type addTasksRequest struct {
	Tasks []model.TaskInput `json:"tasks"`
}

type addTasksResponse struct {
	Created []model.ItemResult `json:"created"`
}

// AddTasks normalizes a batch of raw tasks and creates each in Motion,
// one at a time. One item failing never aborts its siblings.
func (h *Handler) AddTasks(w http.ResponseWriter, r *http.Request) {
	var req addTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	results, err := h.tasks.CreateBatch(r.Context(), req.Tasks)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, addTasksResponse{Created: results})
}

type routeRequest struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

type routeResponse struct {
	Results []model.ItemResult `json:"results"`
	Count   int                `json:"count"`
}

// Route extracts tasks from free text via OpenAI and creates each in Motion.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	text := req.Message
	if text == "" {
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		respond.Error(w, r, http.StatusBadRequest, "Missing message")
		return
	}

	inputs, err := h.ai.ExtractTasks(r.Context(), text)
	if err != nil {
		h.logger.Error("task extraction failed", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := h.tasks.CreateBatch(r.Context(), inputs)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) {
			// The model found nothing actionable in the text.
			respond.JSON(w, r, http.StatusOK, routeResponse{Results: []model.ItemResult{}, Count: 0})
			return
		}
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, routeResponse{Results: results, Count: len(results)})
}

func (h *Handler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		respond.Error(w, r, http.StatusBadRequest, "tasks array is required")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
