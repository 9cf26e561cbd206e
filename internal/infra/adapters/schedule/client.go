package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"telegram-schedule-notifier/internal/config"
	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.ScheduleFetcher = (*Client)(nil)

// Client calls the group schedule endpoint. The access credential is embedded in the URL.
// Every Fetch is a fresh round trip; nothing is cached.
type Client struct {
	endpoint string
	group    string
	client   *http.Client
	log      *zerolog.Logger
}

func NewClient(cfg config.ScheduleConfig, dev bool, logger *zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("schedule url empty")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid schedule url: %w", err)
	}
	compLog := logger.With().
		Str("component", "ScheduleClient").
		Str("endpoint", logging.Redact(cfg.URL, dev)).
		Logger()
	return &Client{
		endpoint: cfg.URL,
		group:    cfg.Group,
		// Timeout 0 means the call may block for as long as the upstream does.
		client: &http.Client{Timeout: cfg.Timeout},
		log:    &compLog,
	}, nil
}

// Fetch posts the group selector and renders the returned schedule.
// A non-200 status yields domain.ErrUpstreamStatus.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	start := time.Now()
	s, err := c.fetch(ctx)
	metrics.ObserveScheduleFetch(time.Since(start), err == nil)
	if err != nil {
		logging.With(ctx, c.log).Error().Err(err).Msg("failed to fetch schedule")
		return "", err
	}
	return s.Render(), nil
}

func (c *Client) fetch(ctx context.Context) (*model.Schedule, error) {
	form := url.Values{"group": {c.group}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post schedule request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var out model.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &out, nil
}
