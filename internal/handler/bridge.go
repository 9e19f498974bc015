package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/motion-bridge/internal/config"
	"github.com/BuzzLyutic/motion-bridge/internal/model"
	"github.com/BuzzLyutic/motion-bridge/internal/service"
	"github.com/BuzzLyutic/motion-bridge/pkg/respond"
	"github.com/BuzzLyutic/motion-bridge/pkg/retry"
)

// AIClient is the completion-service surface the handlers need.
type AIClient interface {
	Complete(ctx context.Context, message string) (string, error)
	ExtractTasks(ctx context.Context, text string) ([]model.TaskInput, error)
}

type Handler struct {
	ai        AIClient
	tasks     *service.TaskService
	motionKey string
	attempts  int
	rc        *resty.Client
	logger    *zap.Logger
}

func NewHandler(ai AIClient, tasks *service.TaskService, cfg config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		ai:        ai,
		tasks:     tasks,
		motionKey: cfg.MotionAPIKey,
		attempts:  cfg.RetryMaxAttempts,
		rc:        resty.New().SetHeader("Content-Type", "application/json"),
		logger:    logger,
	}
}

type bridgeRequest struct {
	Message       string         `json:"message"`
	Text          string         `json:"text"`
	MotionWebhook string         `json:"motionWebhook"`
	MotionPayload map[string]any `json:"motionPayload"`
}

type bridgeResponse struct {
	Reply           string `json:"reply"`
	MotionForwarded bool   `json:"motionForwarded"`
}

// Bridge relays a message to OpenAI and optionally forwards the reply to a
// caller-supplied webhook. Failures past body parsing keep the historical
// plain-text 500 contract.
func (h *Handler) Bridge(w http.ResponseWriter, r *http.Request) {
	var req bridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	message := req.Message
	if message == "" {
		message = req.Text
	}
	if strings.TrimSpace(message) == "" {
		respond.Error(w, r, http.StatusBadRequest, "Missing message")
		return
	}

	reply, err := h.ai.Complete(r.Context(), message)
	if err != nil {
		h.logger.Error("completion failed", zap.Error(err))
		respond.Text(w, http.StatusInternalServerError, err.Error())
		return
	}

	forwarded := false
	if req.MotionWebhook != "" {
		if err := h.forwardReply(r.Context(), req.MotionWebhook, reply, req.MotionPayload); err != nil {
			h.logger.Error("webhook forward failed",
				zap.String("webhook", req.MotionWebhook),
				zap.Error(err),
			)
			respond.Text(w, http.StatusInternalServerError, err.Error())
			return
		}
		forwarded = true
	}

	respond.JSON(w, r, http.StatusOK, bridgeResponse{Reply: reply, MotionForwarded: forwarded})
}

func (h *Handler) forwardReply(ctx context.Context, url, reply string, payload map[string]any) error {
	body := map[string]any{}
	for k, v := range payload {
		body[k] = v
	}
	body["reply"] = reply

	headers := map[string]string{}
	if h.motionKey != "" {
		headers["Authorization"] = "Bearer " + h.motionKey
	}

	_, err := retry.Do(ctx, h.rc, url, retry.Options{Headers: headers, Body: body}, h.attempts)
	return err
}
