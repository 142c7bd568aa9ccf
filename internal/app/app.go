package app

import (
	"net/http"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/auth"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/config"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/afterschool"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/grades"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/notifications"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/progress"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/uploads"
)

// Client is the explicit context object constructed once at app start and
// passed by reference to consumers. Service caches and in-flight maps live
// inside it, never in package globals.
type Client struct {
	Log    *logger.Logger
	Tokens *auth.StaticSource
	API    *api.Client

	AfterSchool   *afterschool.Service
	Grades        *grades.Service
	Uploads       *uploads.Service
	Notifications *notifications.Service
	Progress      *progress.Service
}

func New(log *logger.Logger, cfg config.Config) (*Client, error) {
	return build(log, cfg, nil)
}

// NewWithHTTPClient is intended for tests; it threads a custom RoundTripper
// through every service.
func NewWithHTTPClient(log *logger.Logger, cfg config.Config, httpClient *http.Client) (*Client, error) {
	return build(log, cfg, httpClient)
}

func build(log *logger.Logger, cfg config.Config, httpClient *http.Client) (*Client, error) {
	tokens := auth.NewStatic(cfg.AccessToken)

	apiClient, err := api.NewWithHTTPClient(log, api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout(),
	}, tokens, httpClient)
	if err != nil {
		return nil, err
	}

	retry := httpx.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.RetryBaseDelay(),
	}

	uploadsSvc := uploads.New(log, apiClient)

	return &Client{
		Log:           log,
		Tokens:        tokens,
		API:           apiClient,
		AfterSchool:   afterschool.New(log, apiClient, retry),
		Grades:        grades.New(log, apiClient, uploadsSvc),
		Uploads:       uploadsSvc,
		Notifications: notifications.New(log, apiClient),
		Progress:      progress.New(log, apiClient, retry),
	}, nil
}
