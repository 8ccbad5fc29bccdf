// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

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
	"net/url"
	"strings"
)

// anthropicAPIURL is the Claude Messages API endpoint. Package-level var for
// test substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicBackend calls the Claude Messages API.
type AnthropicBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one request and returns the concatenated text blocks of the
// response. Failures are classified as *UpstreamError so the gateway can
// decide whether to retry.
func (b *AnthropicBackend) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := anthropicRequest{
		Model:     b.Model,
		MaxTokens: 4096,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: user},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &UpstreamError{
			Kind:    classifyStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	var cResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}

	var sb strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &UpstreamError{Kind: KindServer, Message: "empty completion content"}
	}
	return sb.String(), nil
}

// classifyStatus maps HTTP status codes onto the retry allow-list.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return KindTimeout
	case status >= 500:
		return KindServer
	}
	return KindPermanent
}

// classifyTransportError maps network-level failures. Timeouts become
// KindTimeout, everything else KindServer (the connection may recover).
func classifyTransportError(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &UpstreamError{Kind: KindTimeout, Message: err.Error()}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &UpstreamError{Kind: KindTimeout, Message: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: KindTimeout, Message: err.Error()}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &UpstreamError{Kind: KindServer, Message: err.Error()}
}
