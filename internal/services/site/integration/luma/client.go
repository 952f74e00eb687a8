// Package luma reads community events from the Luma public calendar API.
package luma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/config"
	"github.com/thinkinrocks/thinkin.rocks/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the public Luma API origin.
	DefaultBaseURL = "https://public-api.luma.com"

	listEventsPath  = "/v1/calendar/list-events"
	pageLimit       = 100
	maxPages        = 5
	maxResponseBody = 8 << 20

	apiKeyPlaceholder     = "your-luma-api-key-here"
	calendarIDPlaceholder = "your-calendar-id"
)

// Cutoff is the earliest event start the site lists.
var Cutoff = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrCalendarNotConfigured reports a missing calendar id.
	ErrCalendarNotConfigured = errors.New("luma calendar id is not configured")

	keywords = []string{"thinkin", "rocks"}
)

// Config holds client settings.
type Config struct {
	APIKey     string `env:"THINKIN_ROCKS_LUMA_API_KEY"`
	CalendarID string `env:"THINKIN_ROCKS_LUMA_CALENDAR_ID"`
	BaseURL    string `env:"THINKIN_ROCKS_LUMA_BASE_URL" envDefault:"https://public-api.luma.com"`
}

// Client lists calendar events. Concurrent callers share one upstream fetch.
type Client struct {
	apiKey     string
	calendarID string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	group      singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client. Placeholder credentials are treated as unset.
func NewClient(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		apiKey:     config.Setting(cfg.APIKey, apiKeyPlaceholder),
		calendarID: config.Setting(cfg.CalendarID, calendarIDPlaceholder),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeouts.UpstreamRequest},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// CalendarConfigured reports whether a calendar id is set.
func (c *Client) CalendarConfigured() bool {
	return c != nil && c.calendarID != ""
}

// ListEvents returns site events starting on or after Cutoff. Without an API
// key it returns no events. Upstream failures are returned as errors and are
// not retried.
func (c *Client) ListEvents(ctx context.Context) ([]Entry, error) {
	if !c.CalendarConfigured() {
		return nil, ErrCalendarNotConfigured
	}
	if c.apiKey == "" {
		c.logger.Warn("luma api key not configured")
		return []Entry{}, nil
	}

	result, err, shared := c.group.Do(c.calendarID, func() (any, error) {
		return c.fetchAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	entries := result.([]Entry)
	if shared {
		entries = append([]Entry(nil), entries...)
	}
	return entries, nil
}

func (c *Client) fetchAll(ctx context.Context) ([]Entry, error) {
	ctx, span := otel.Tracer("thinkin.rocks/luma").Start(ctx, "luma.list_events")
	defer span.End()

	var (
		all    []Entry
		cursor string
		pages  int
	)
	for pages < maxPages {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		all = append(all, page.Entries...)
		pages++
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	events := FilterSiteEvents(all)
	span.SetAttributes(
		attribute.Int("luma.pages", pages),
		attribute.Int("luma.entries", len(all)),
		attribute.Int("luma.events", len(events)),
	)
	c.logger.Info("fetched luma events",
		zap.Int("pages", pages),
		zap.Int("events", len(events)),
	)
	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, cursor string) (listResponse, error) {
	query := url.Values{}
	query.Set("calendar_api_id", c.calendarID)
	query.Set("after", Cutoff.Format("2006-01-02T15:04:05.000Z"))
	query.Set("pagination_limit", strconv.Itoa(pageLimit))
	if cursor != "" {
		query.Set("pagination_cursor", cursor)
	}
	endpoint := c.baseURL + listEventsPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return listResponse{}, fmt.Errorf("build luma request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-luma-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return listResponse{}, fmt.Errorf("luma request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return listResponse{}, fmt.Errorf("luma api error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return listResponse{}, fmt.Errorf("read luma response: %w", err)
	}
	var page listResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return listResponse{}, fmt.Errorf("decode luma response: %w", err)
	}
	return page, nil
}

// FilterSiteEvents keeps entries that start on or after Cutoff and mention
// the organization anywhere in their payload.
func FilterSiteEvents(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		start, ok := entry.Start()
		if !ok || start.Before(Cutoff) {
			continue
		}
		if !mentionsSite(entry) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func mentionsSite(entry Entry) bool {
	raw := entry.raw
	if len(raw) == 0 {
		encoded, err := json.Marshal(entry)
		if err != nil {
			return false
		}
		raw = encoded
	}
	text := bytes.ToLower(raw)
	for _, keyword := range keywords {
		if bytes.Contains(text, []byte(keyword)) {
			return true
		}
	}
	return false
}
