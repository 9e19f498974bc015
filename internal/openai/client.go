package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/BuzzLyutic/motion-bridge/internal/model"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	chatModel      = "gpt-4o-mini"

	replyPrompt = "You are a concise assistant for a small operations team. " +
		"Answer in plain text without markdown."

	extractPrompt = "You convert free text into tasks. Respond with ONLY a JSON array. " +
		"Each element may have: title, notes, minutes, priority (LOW|MEDIUM|HIGH), " +
		"tags (array of strings), due (YYYY-MM-DD), domain (legal|biz|personal). " +
		"Omit fields you cannot infer."
)

var ErrNoAPIKey = errors.New("openai api key not configured")

type Client struct {
	apiKey  string
	baseURL string
	rc      *resty.Client
}

// New builds a chat-completions client. An empty baseURL means the public
// OpenAI endpoint; tests point it at a fake server.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		rc:      resty.New().SetHeader("Content-Type", "application/json"),
	}
}

// Complete sends the message and returns the model's plain-text reply.
func (c *Client) Complete(ctx context.Context, message string) (string, error) {
	content, err := c.chat(ctx, replyPrompt, message)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "No reply", nil
	}
	return content, nil
}

// ExtractTasks asks the model for a JSON array of task inputs.
func (c *Client) ExtractTasks(ctx context.Context, text string) ([]model.TaskInput, error) {
	content, err := c.chat(ctx, extractPrompt, text)
	if err != nil {
		return nil, err
	}

	var inputs []model.TaskInput
	if err := json.Unmarshal([]byte(stripFences(content)), &inputs); err != nil {
		return nil, fmt.Errorf("parse extracted tasks: %w", err)
	}
	return inputs, nil
}

func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body := map[string]any{
		"model": chatModel,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(body).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// stripFences removes a ```json ... ``` wrapper the model sometimes adds
// around structured output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
