package completion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
	"github.com/MrSnakeDoc/askgrace/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBody caps how much of a completion response is read.
const maxBody = 4 << 20

// Config holds the settings for a chat-completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string // ex: https://api.openai.com/v1
	Model   string
	Timeout time.Duration
}

// Client submits one question to an OpenAI-compatible chat endpoint.
// It never retries: every failure goes straight back to the caller.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	system     string
	httpClient *http.Client
	logger     logger.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// New creates a client that sends systemPrompt ahead of every question.
func New(cfg Config, systemPrompt string, log logger.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		system:     systemPrompt,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
	}
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.model }

// Submit returns the raw content of the first choice. An empty payload is
// a no_response error; any transport or status failure is completion_failed.
func (c *Client) Submit(ctx context.Context, question string) (string, error) {
	start := time.Now()

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: c.system},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", c.failed(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", c.failed(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.failed(fmt.Errorf("request failed: %w", err))
	}
	defer utils.DrainClose(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", c.failed(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.failed(fmt.Errorf("completion request failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", c.failed(fmt.Errorf("parse response: %w", err))
	}
	if parsed.Error != nil {
		return "", c.failed(fmt.Errorf("completion error: %s", parsed.Error.Message))
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		c.logger.Warn("completion returned no content", logger.String("model", c.model))
		return "", domain.NewError(domain.ErrNoResponse, domain.MsgNoResponse)
	}

	content := parsed.Choices[0].Message.Content
	c.logger.Debug("completion received",
		logger.String("model", c.model),
		logger.Duration("elapsed", time.Since(start)),
		logger.Int("response_len", len(content)))
	return content, nil
}

func (c *Client) failed(err error) error {
	return domain.WrapError(domain.ErrCompletionFailed, domain.MsgCompletionFailed, err)
}
