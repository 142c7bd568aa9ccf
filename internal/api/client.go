package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/observability"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/auth"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the authenticated JSON request primitive every service goes
// through. It owns bearer auth, body serialization, error-body parsing and
// per-request logging/metrics. It never retries; that policy lives with the
// callers (httpx.Do on idempotent reads only).
type Client struct {
	log        *logger.Logger
	baseURL    string
	tokens     auth.TokenSource
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config, tokens auth.TokenSource) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		log:        log.With("client", "AfterSchoolAPI"),
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout, Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using
// a custom RoundTripper.
func NewWithHTTPClient(log *logger.Logger, cfg Config, tokens auth.TokenSource, httpClient *http.Client) (*Client, error) {
	c, err := New(log, cfg, tokens)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// errorBody is the backend's error envelope convention.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	bodySize := 0
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[%s %s] encode request: %w", method, endpoint, err)
		}
		bodySize = len(raw)
		reqBody = bytes.NewReader(raw)
	}

	requestID := uuid.NewString()
	ctx, span := observability.Tracer().Start(ctx, "api.request")
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.endpoint", endpoint),
		attribute.String("request.id", requestID),
	)
	defer span.End()

	url := c.baseURL + endpoint
	c.log.Debug("api request", "method", method, "url", url, "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("[%s %s] build request: %w", method, endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if metrics := observability.Current(); metrics != nil {
			metrics.ObserveRequest(method, endpoint, "error", time.Since(start))
		}
		return fmt.Errorf("[%s %s] %w", method, endpoint, err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if metrics := observability.Current(); metrics != nil {
		metrics.ObserveRequest(method, endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.buildError(resp, raw, method, endpoint)
		span.SetStatus(codes.Error, apiErr.Detail)
		c.log.Warn("api request failed",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"request_id", requestID,
			"request_body_bytes", bodySize,
			"detail", apiErr.Detail,
		)
		return apiErr
	}

	if readErr != nil {
		span.SetStatus(codes.Error, readErr.Error())
		return fmt.Errorf("[%s %s] read response: %w", method, endpoint, readErr)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("[%s %s] decode response: %w", method, endpoint, err)
	}
	return nil
}

// buildError parses the backend error convention ({detail} or {message}) and
// falls back to a generic status line when neither parses.
func (c *Client) buildError(resp *http.Response, raw []byte, method, endpoint string) *apierr.Error {
	detail := ""
	if len(raw) > 0 {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			if strings.TrimSpace(eb.Detail) != "" {
				detail = strings.TrimSpace(eb.Detail)
			} else if strings.TrimSpace(eb.Message) != "" {
				detail = strings.TrimSpace(eb.Message)
			}
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	apiErr := apierr.New(resp.StatusCode, method, endpoint, detail)
	if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return apiErr
}

// DoMultipart POSTs a multipart form (the bulk image upload path). build
// writes the form fields/files; the writer is closed here.
func (c *Client) DoMultipart(ctx context.Context, endpoint string, build func(w *multipart.Writer) error, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := build(writer); err != nil {
		_ = writer.Close()
		return fmt.Errorf("[POST %s] build multipart form: %w", endpoint, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("[POST %s] close multipart form: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	ctx, span := observability.Tracer().Start(ctx, "api.upload")
	span.SetAttributes(
		attribute.String("http.endpoint", endpoint),
		attribute.String("request.id", requestID),
	)
	defer span.End()

	url := c.baseURL + endpoint
	c.log.Debug("api upload", "url", url, "request_id", requestID, "body_bytes", buf.Len())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("[POST %s] build request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if metrics := observability.Current(); metrics != nil {
			metrics.ObserveRequest(http.MethodPost, endpoint, "error", time.Since(start))
		}
		return fmt.Errorf("[POST %s] %w", endpoint, err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if metrics := observability.Current(); metrics != nil {
		metrics.ObserveRequest(http.MethodPost, endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.buildError(resp, raw, http.MethodPost, endpoint)
		span.SetStatus(codes.Error, apiErr.Detail)
		return apiErr
	}
	if readErr != nil {
		return fmt.Errorf("[POST %s] read response: %w", endpoint, readErr)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("[POST %s] decode response: %w", endpoint, err)
	}
	return nil
}
