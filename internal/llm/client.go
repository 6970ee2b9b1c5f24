// Package llm talks to the remote completion service. The service is an
// opaque collaborator reached over a single JSON POST; only the
// request/response contract is known here.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Message is the wire shape of one conversation entry. Only role and
// content cross the boundary; message IDs and meta stay local.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request holds the parameters for a completion call.
type Request struct {
	Kind     RequestKind
	Messages []Message
}

// Response holds the result of a completion call.
type Response struct {
	Text      string
	LatencyMs int64
}

// CompletionClient sends an ordered message sequence to the completion
// service and returns the reply text.
type CompletionClient interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// httpClient implements CompletionClient over plain HTTP.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a CompletionClient that POSTs to the configured
// endpoint.
func NewHTTPClient(cfg Config, observer Observer) CompletionClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// completionRequest is the JSON body sent to the service.
type completionRequest struct {
	Messages []Message `json:"messages"`
}

func (c *httpClient) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, err := c.doRequest(ctx, completionRequest{Messages: req.Messages})
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Kind:      req.Kind,
				LatencyMs: latency,
				Success:   true,
			})
			return &Response{Text: text, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout, and don't retry
		// definitive service rejections.
		if ctx.Err() != nil {
			break
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Kind:      req.Kind,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	var statusErr *StatusError
	if errors.As(lastErr, &statusErr) {
		return nil, lastErr
	}
	if isConnectionError(lastErr) {
		return nil, ErrServiceUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *httpClient) doRequest(ctx context.Context, body completionRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, readErr := io.ReadAll(httpResp.Body)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		detail := httpResp.Status
		if readErr == nil && len(respBody) > 0 {
			detail = strings.TrimSpace(string(respBody))
		}
		return "", &StatusError{StatusCode: httpResp.StatusCode, Body: detail}
	}
	if readErr != nil {
		return "", fmt.Errorf("reading response: %w", readErr)
	}

	return extractReply(respBody), nil
}

// completionResponse captures every reply field shape the service has
// been observed to return.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Reply   string `json:"reply"`
	Message string `json:"message"`
}

// extractReply pulls the reply text out of the response body, trying in
// priority order: the chat-completion nested field, a flat "reply"
// field, a flat "message" field, then the raw body itself.
func extractReply(body []byte) string {
	var resp completionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return string(body)
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		return resp.Choices[0].Message.Content
	}
	if resp.Reply != "" {
		return resp.Reply
	}
	if resp.Message != "" {
		return resp.Message
	}
	return string(body)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrServiceUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("HTTP_%d", statusErr.StatusCode)
	default:
		return "UNKNOWN"
	}
}
