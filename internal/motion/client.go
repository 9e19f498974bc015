package motion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/BuzzLyutic/motion-bridge/internal/model"
	"github.com/BuzzLyutic/motion-bridge/pkg/retry"
)

const defaultBaseURL = "https://api.usemotion.com/v1"

var ErrNotConfigured = errors.New("motion api key or workspace id not configured")

type Config struct {
	APIKey      string
	WorkspaceID string
	BaseURL     string
	MaxAttempts int
}

type Client struct {
	apiKey      string
	workspaceID string
	baseURL     string
	maxAttempts int
	rc          *resty.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = retry.DefaultAttempts
	}
	return &Client{
		apiKey:      cfg.APIKey,
		workspaceID: cfg.WorkspaceID,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: attempts,
		rc:          resty.New().SetHeader("Content-Type", "application/json"),
	}
}

type taskPayload struct {
	Name        string   `json:"name"`
	WorkspaceID string   `json:"workspaceId"`
	Description string   `json:"description,omitempty"`
	Duration    int      `json:"duration"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
}

// CreateTask creates one task in Motion and echoes the record as created.
// A task labeled "Legal" is always created with HIGH priority, whatever the
// record says.
func (c *Client) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	if c.apiKey == "" || c.workspaceID == "" {
		return t, ErrNotConfigured
	}

	priority := t.Priority
	for _, label := range t.Tags {
		if label == "Legal" {
			priority = model.PriorityHigh
			break
		}
	}

	payload := taskPayload{
		Name:        t.Title,
		WorkspaceID: c.workspaceID,
		Description: t.Notes,
		Duration:    t.Minutes,
		Priority:    priority,
		Labels:      t.Tags,
		DueDate:     t.Due,
	}

	opts := retry.Options{
		Headers: map[string]string{"X-API-Key": c.apiKey},
		Body:    payload,
	}
	if _, err := retry.Do(ctx, c.rc, c.baseURL+"/tasks", opts, c.maxAttempts); err != nil {
		return t, fmt.Errorf("create task %q: %w", t.Title, err)
	}

	t.Priority = priority
	return t, nil
}
