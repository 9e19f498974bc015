package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/motion-bridge/internal/config"
	"github.com/BuzzLyutic/motion-bridge/internal/handler"
	"github.com/BuzzLyutic/motion-bridge/internal/motion"
	"github.com/BuzzLyutic/motion-bridge/internal/openai"
	"github.com/BuzzLyutic/motion-bridge/internal/service"
)

// FakeOpenAI returns a chat-completions upstream that always replies with
// the given content.
func FakeOpenAI(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

// MotionRecorder collects every task-creation payload the fake Motion
// upstream receives.
type MotionRecorder struct {
	mu      sync.Mutex
	Created []map[string]any
}

func (rec *MotionRecorder) add(payload map[string]any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.Created = append(rec.Created, payload)
}

func (rec *MotionRecorder) Count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.Created)
}

// FakeMotion returns a task-creation upstream plus a recorder of what it saw.
// failFor names task titles that should always get a 502.
func FakeMotion(t *testing.T, failFor ...string) (*httptest.Server, *MotionRecorder) {
	t.Helper()
	rec := &MotionRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for _, name := range failFor {
			if payload["name"] == name {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("motion is down"))
				return
			}
		}
		rec.add(payload)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"task-1"}`))
	}))
	return srv, rec
}

// CaptureWebhook returns a 200-server that decodes its last request body
// into dst.
func CaptureWebhook(t *testing.T, dst *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

// SetupServer wires real clients against the fake upstreams and returns the
// full HTTP surface.
func SetupServer(t *testing.T, openaiURL, motionURL string) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		OpenAIAPIKey:      "test-openai-key",
		OpenAIBaseURL:     openaiURL,
		MotionAPIKey:      "test-motion-key",
		MotionWorkspaceID: "ws-test",
		MotionBaseURL:     motionURL,
		RetryMaxAttempts:  1,
	}

	ai := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	motionClient := motion.NewClient(motion.Config{
		APIKey:      cfg.MotionAPIKey,
		WorkspaceID: cfg.MotionWorkspaceID,
		BaseURL:     cfg.MotionBaseURL,
		MaxAttempts: cfg.RetryMaxAttempts,
	})
	taskService := service.NewTaskService(motionClient, zap.NewNop())
	h := handler.NewHandler(ai, taskService, cfg, zap.NewNop())

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}
