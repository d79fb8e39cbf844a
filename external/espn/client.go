package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/platform/resilience"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"

	regularSeasonType = "2"
	maxBodyBytes      = 8 << 20
	defaultTimeout    = 15 * time.Second
	defaultBackoff    = time.Second
)

var errESPNTransient = crerr.New("espn transient failure")

// Minute precision is what the scoreboard usually sends.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00"}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public ESPN scoreboard.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	c := &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	if breakerCfg.Enabled {
		c.breaker = resilience.NewCircuitBreaker(breakerCfg)
		c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("espn circuit breaker state changed", "from", from, "to", to)
		})
	}
	return c
}

// FetchWeek returns the regular season games ESPN lists for the week.
func (c *Client) FetchWeek(ctx context.Context, season, week int) ([]usecase.ExternalGame, error) {
	if season <= 0 || week <= 0 {
		return nil, fmt.Errorf("season and week must be greater than zero")
	}

	values := url.Values{}
	values.Set("dates", strconv.Itoa(season))
	values.Set("seasontype", regularSeasonType)
	values.Set("week", strconv.Itoa(week))
	fullURL := c.baseURL + "/scoreboard?" + values.Encode()

	var payload scoreboardEnvelope
	if err := c.doJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("fetch scoreboard season=%d week=%d: %w", season, week, err)
	}

	out := make([]usecase.ExternalGame, 0, len(payload.Events))
	for _, event := range payload.Events {
		item, ok := mapEvent(event, season, week)
		if !ok {
			c.logger.DebugContext(ctx, "skipping espn event", "event_id", event.ID, "season", season, "week", week)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		guardErr := c.breaker.Guard(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		return raw, guardErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errESPNTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errESPNTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errESPNTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapEvent(event scoreboardEvent, season, week int) (usecase.ExternalGame, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(event.ID), 10, 64)
	if err != nil || id <= 0 {
		return usecase.ExternalGame{}, false
	}
	kickoff, ok := parseEventDate(event.Date)
	if !ok {
		return usecase.ExternalGame{}, false
	}
	if len(event.Competitions) == 0 {
		return usecase.ExternalGame{}, false
	}

	item := usecase.ExternalGame{
		ExternalID: id,
		Season:     season,
		Week:       week,
		KickoffAt:  kickoff,
		State:      mapState(event.Status.Type.State),
	}
	for _, competitor := range event.Competitions[0].Competitors {
		name := strings.TrimSpace(competitor.Team.Name)
		switch strings.ToLower(competitor.HomeAway) {
		case "home":
			item.HomeTeamName = name
		case "away":
			item.AwayTeamName = name
		}
		if competitor.Winner {
			item.WinnerName = name
		}
	}
	if item.HomeTeamName == "" || item.AwayTeamName == "" {
		return usecase.ExternalGame{}, false
	}
	if item.State != game.StatusFinal {
		item.WinnerName = ""
	}
	return item, true
}

func mapState(state string) game.Status {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "post":
		return game.StatusFinal
	case "in":
		return game.StatusInProgress
	default:
		return game.StatusScheduled
	}
}

func parseEventDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isTransient(err error) bool {
	return crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
