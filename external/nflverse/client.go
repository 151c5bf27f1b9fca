package nflverse

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-projections/external/csvfeed"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/ingest/fieldmap"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/platform/resilience"
)

const defaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"

var requiredColumns = []string{"player_name", "position", "week", "season"}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads weekly player stats from the nflverse-data release assets.
// One file holds a whole season; rows are filtered to the requested week.
type Client struct {
	feed    *csvfeed.Client
	baseURL string
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		feed: csvfeed.NewClient(csvfeed.ClientConfig{
			HTTPClient:     cfg.HTTPClient,
			Name:           source.NameNFLVerse,
			Timeout:        cfg.Timeout,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *Client) Name() source.Name {
	return source.NameNFLVerse
}

func (c *Client) seasonURL(season int) string {
	return fmt.Sprintf("%s/player_stats/player_stats_%d.csv", c.baseURL, season)
}

func (c *Client) Fetch(ctx context.Context, season, week int) ([]source.RawRecord, error) {
	body, err := c.feed.Get(ctx, c.seasonURL(season))
	if err != nil {
		return nil, err
	}

	wantWeek := strconv.Itoa(week)
	wantSeason := strconv.Itoa(season)
	table, err := csvfeed.Parse(body, func(r source.RawRecord) bool {
		if weekOf(r["week"]) != wantWeek {
			return false
		}
		s, ok := r["season"]
		return !ok || weekOf(s) == wantSeason
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "nflverse season=%d", season)
	}

	if missing := table.MissingColumns(requiredColumns...); len(missing) > 0 {
		return nil, crerr.Mark(
			crerr.Newf("nflverse season=%d: missing columns %s", season, strings.Join(missing, ",")),
			source.ErrUnavailable,
		)
	}
	if !table.HasAnyColumn(fieldmap.StatColumns(source.NameNFLVerse)...) {
		return nil, crerr.Mark(
			crerr.Newf("nflverse season=%d: no recognized stat columns", season),
			source.ErrUnavailable,
		)
	}

	c.logger.InfoContext(ctx, "loaded nflverse rows",
		"season", season,
		"week", week,
		"rows", len(table.Rows),
		"skipped_rows", len(table.Skipped),
	)
	return table.Records(), nil
}

func (c *Client) Probe(ctx context.Context) error {
	return c.feed.Probe(ctx, c.seasonURL(time.Now().Year()-1))
}

// weekOf normalizes "3" and "3.0" to "3".
func weekOf(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, '.'); i > 0 && strings.Trim(v[i+1:], "0") == "" {
		return v[:i]
	}
	return v
}
