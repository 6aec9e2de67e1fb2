// Package probe runs reachability checks against operator-supplied URLs.
// A probe only interprets the HTTP status: 2xx is up, anything else is down.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Target string

const (
	TargetWebhook Target = "webhook"
	TargetN8n     Target = "n8n"
	TargetBackend Target = "backendApi"
)

const N8nTestMessage = "Test message from WhatsApp Dashboard to n8n"

var ErrURLRequired = errors.New("url is required")

// Result is the outcome of one probe
type Result struct {
	Target     Target `json:"target"`
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message"`
}

type Prober struct {
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func New(timeout time.Duration, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Webhook issues a plain GET against the webhook URL.
func (p *Prober) Webhook(ctx context.Context, url string) (Result, error) {
	if url == "" {
		return Result{}, fmt.Errorf("webhook %w", ErrURLRequired)
	}
	return p.do(ctx, TargetWebhook, http.MethodGet, url, nil), nil
}

type n8nTestPayload struct {
	Test      bool   `json:"test"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// N8n posts a small test payload so the workflow run is visible on the n8n side.
func (p *Prober) N8n(ctx context.Context, url string) (Result, error) {
	if url == "" {
		return Result{}, fmt.Errorf("n8n webhook %w", ErrURLRequired)
	}
	body, err := json.Marshal(n8nTestPayload{
		Test:      true,
		Message:   N8nTestMessage,
		Timestamp: p.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return Result{}, err
	}
	return p.do(ctx, TargetN8n, http.MethodPost, url, body), nil
}

// Backend checks the /health endpoint under the backend base URL.
func (p *Prober) Backend(ctx context.Context, baseURL string) (Result, error) {
	if baseURL == "" {
		return Result{}, fmt.Errorf("backend api %w", ErrURLRequired)
	}
	return p.do(ctx, TargetBackend, http.MethodGet, HealthURL(baseURL), nil), nil
}

// HealthURL appends "health" to base without doubling the slash.
func HealthURL(base string) string {
	if strings.HasSuffix(base, "/") {
		return base + "health"
	}
	return base + "/health"
}

func (p *Prober) do(ctx context.Context, target Target, method, url string, body []byte) Result {
	res := Result{Target: target, URL: url}
	log := p.logger.With(slog.String("target", string(target)), slog.String("url", url))

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		res.Message = err.Error()
		log.Error("invalid probe request", "error", err)
		return res
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if target != TargetWebhook {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		res.Message = err.Error()
		log.Error("probe failed", "error", err)
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	res.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 300
	if res.Reachable {
		res.Message = fmt.Sprintf("reachable, status %d", resp.StatusCode)
		log.Info("probe succeeded", "status", resp.StatusCode)
	} else {
		res.Message = fmt.Sprintf("returned an error, status %d", resp.StatusCode)
		log.Warn("probe returned error status", "status", resp.StatusCode)
	}
	return res
}
