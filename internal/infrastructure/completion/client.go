package completion

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/llm"
	"clarus-server/services/council-api/internal/infrastructure/metrics"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

const (
	dataPrefix           = "data: "
	doneMarker           = "[DONE]"
	scannerInitialBuffer = 12 * 1024        // 12KB
	scannerMaxBuffer     = 10 * 1024 * 1024 // 10MB
)

// Client talks to an OpenAI-compatible chat completion endpoint. It is
// the only process boundary a debate crosses besides the database.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

var _ llm.Provider = (*Client)(nil)

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	restyClient := resty.New().
		SetTimeout(cfg.CompletionTimeout).
		SetRetryCount(0)

	return &Client{
		client:  restyClient,
		baseURL: normalizeBaseURL(cfg.CompletionBaseURL),
		apiKey:  cfg.CompletionAPIKey,
		logger:  logger.With().Str("component", "completion_client").Logger(),
	}
}

// Complete runs a completion to the end and returns the full text.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	start := time.Now()
	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(c.toChatRequest(req, false)).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		metrics.RecordCompletionRequest(req.Model, "error", time.Since(start))
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion request failed", err, "")
	}
	if resp.IsError() {
		metrics.RecordCompletionRequest(req.Model, "error", time.Since(start))
		return "", c.errorFromResponse(ctx, resp, "completion request failed")
	}
	metrics.RecordCompletionRequest(req.Model, "ok", time.Since(start))
	if len(respBody.Choices) == 0 {
		return "", nil
	}
	return respBody.Choices[0].Message.Content, nil
}

// StreamCompletion opens an SSE completion stream. The returned stream
// yields content deltas until the upstream [DONE] marker.
func (c *Client) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error) {
	start := time.Now()
	resp, err := c.prepareRequest(ctx).
		SetBody(c.toChatRequest(req, true)).
		SetDoNotParseResponse(true).
		SetHeader("Accept-Encoding", "identity").
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		metrics.RecordCompletionRequest(req.Model, "error", time.Since(start))
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"streaming request failed", err, "")
	}
	if resp.IsError() {
		metrics.RecordCompletionRequest(req.Model, "error", time.Since(start))
		return nil, c.errorFromResponse(ctx, resp, "streaming request failed")
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		metrics.RecordCompletionRequest(req.Model, "error", time.Since(start))
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"streaming request failed: empty response body", nil, "")
	}

	scanner := bufio.NewScanner(resp.RawResponse.Body)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

	return &sseStream{
		body:    resp.RawResponse.Body,
		scanner: scanner,
		model:   req.Model,
		start:   start,
		logger:  c.logger,
	}, nil
}

func (c *Client) toChatRequest(req llm.CompletionRequest, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      stream,
	}
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("%s: status %d", message, resp.StatusCode()), nil, "")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: status %d: %s", message, resp.StatusCode(), strings.TrimSpace(string(body))), nil, "")
}

// sseStream pulls content deltas out of an upstream SSE body.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	model   string
	start   time.Time
	closed  bool
	done    bool
	logger  zerolog.Logger
}

func (s *sseStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for s.scanner.Scan() {
		line := s.scanner.Text()
		data, found := strings.CutPrefix(line, dataPrefix)
		if !found {
			continue
		}
		if data == doneMarker {
			s.finish("ok")
			return "", io.EOF
		}

		var chunk openai.ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			s.logger.Error().Err(err).Str("data", data).Msg("failed to parse stream chunk JSON")
			continue
		}
		var delta strings.Builder
		for _, choice := range chunk.Choices {
			delta.WriteString(choice.Delta.Content)
		}
		if delta.Len() == 0 {
			continue
		}
		return delta.String(), nil
	}
	if err := s.scanner.Err(); err != nil {
		s.finish("error")
		return "", err
	}
	// upstream closed without a [DONE] marker; treat as clean end
	s.finish("ok")
	return "", io.EOF
}

func (s *sseStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.done {
		s.finish("canceled")
	}
	return s.body.Close()
}

func (s *sseStream) finish(status string) {
	if s.done {
		return
	}
	s.done = true
	metrics.RecordCompletionRequest(s.model, status, time.Since(s.start))
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
