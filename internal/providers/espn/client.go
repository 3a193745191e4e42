package espn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/sirupsen/logrus"
)

const (
	// BaseURL is the public ESPN site API
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// DefaultUserAgent is browser-like; ESPN rejects default Go client identifiers
	DefaultUserAgent = "Mozilla/5.0"

	maxBodyBytes = 16 << 20
)

// ErrUnavailable is returned for any call that did not yield usable data:
// transport failure, non-200 status, empty body or undecodable JSON.
var ErrUnavailable = errors.New("espn: upstream unavailable")

// Scoreboard is the decoded part of a scoreboard or team schedule response
type Scoreboard struct {
	Events []models.Event `json:"events"`
}

// Options configures the client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client handles ESPN API requests
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     logrus.FieldLogger
	metrics    *metrics.Metrics
}

// New creates a new ESPN API client
func New(opts Options, logger logrus.FieldLogger, m *metrics.Metrics) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		// The default redirect policy follows up to 10 redirects
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		logger:    logger.WithField("component", "espn"),
		metrics:   m,
	}
}

// FetchScoreboard fetches the scoreboard for a sport/league pair.
// If date is zero, fetches whatever ESPN considers "today".
func (c *Client) FetchScoreboard(ctx context.Context, sport, league string, date time.Time) (*Scoreboard, error) {
	query := url.Values{}
	if !date.IsZero() {
		query.Set("dates", date.Format("20060102"))
	}

	return c.fetch(ctx, []string{sport, league, "scoreboard"}, query)
}

// FetchTeamSchedule fetches the full season schedule of one team
func (c *Client) FetchTeamSchedule(ctx context.Context, sport, league, teamID string) (*Scoreboard, error) {
	return c.fetch(ctx, []string{sport, league, "teams", teamID, "schedule"}, nil)
}

// fetch issues one GET and decodes the events array.
// Success requires status 200, a non-empty body and valid JSON.
func (c *Client) fetch(ctx context.Context, segments []string, query url.Values) (*Scoreboard, error) {
	endpoint := endpointLabel(segments)

	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	reqURL := c.baseURL + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	board, outcome, err := c.do(ctx, reqURL)
	c.metrics.ObserveUpstream(endpoint, outcome, time.Since(start))

	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"outcome":  outcome,
		}).Warnf("ESPN request failed: %v", err)
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"events":   len(board.Events),
	}).Debug("ESPN request succeeded")

	return board, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (*Scoreboard, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "request_error", fmt.Errorf("%w: creating request: %v", ErrUnavailable, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "transport_error", fmt.Errorf("%w: making request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, "http_error", fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "transport_error", fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, "empty_body", fmt.Errorf("%w: empty body", ErrUnavailable)
	}

	var board Scoreboard
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&board); err != nil {
		return nil, "decode_error", fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	// The body must be exactly one JSON document
	if _, err := dec.Token(); err != io.EOF {
		return nil, "decode_error", fmt.Errorf("%w: decoding response: trailing data after JSON document", ErrUnavailable)
	}

	if board.Events == nil {
		board.Events = []models.Event{}
	}

	return &board, "ok", nil
}

// endpointLabel keeps metric cardinality fixed: team ids are collapsed
func endpointLabel(segments []string) string {
	if len(segments) == 5 && segments[2] == "teams" {
		return strings.Join([]string{segments[0], segments[1], "teams", "schedule"}, "/")
	}
	return strings.Join(segments, "/")
}
