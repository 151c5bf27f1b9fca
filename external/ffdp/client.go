package ffdp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-projections/external/csvfeed"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/ingest/fieldmap"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/platform/resilience"
)

const defaultBaseURL = "https://raw.githubusercontent.com/fantasydatapros/data/master"

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the FantasyDataPros weekly CSV files, one file per week.
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
			Name:           source.NameFFDP,
			Timeout:        cfg.Timeout,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *Client) Name() source.Name {
	return source.NameFFDP
}

func (c *Client) weekURL(season, week int) string {
	return fmt.Sprintf("%s/weekly/%d/week%d.csv", c.baseURL, season, week)
}

func (c *Client) Fetch(ctx context.Context, season, week int) ([]source.RawRecord, error) {
	body, err := c.feed.Get(ctx, c.weekURL(season, week))
	if err != nil {
		return nil, err
	}

	table, err := csvfeed.Parse(body, nil)
	if err != nil {
		return nil, crerr.Wrapf(err, "ffdp season=%d week=%d", season, week)
	}
	if !table.HasAnyColumn(fieldmap.PlayerColumns(source.NameFFDP)...) {
		return nil, crerr.Mark(
			crerr.Newf("ffdp season=%d week=%d: no player column in header", season, week),
			source.ErrUnavailable,
		)
	}
	if len(table.Rows) == 0 {
		return nil, crerr.Mark(
			crerr.Newf("ffdp season=%d week=%d: file has no readable rows (%d skipped)", season, week, len(table.Skipped)),
			source.ErrUnavailable,
		)
	}

	c.logger.InfoContext(ctx, "loaded ffdp rows",
		"season", season,
		"week", week,
		"rows", len(table.Rows),
		"skipped_rows", len(table.Skipped),
	)
	return table.Records(), nil
}

func (c *Client) Probe(ctx context.Context) error {
	return c.feed.Probe(ctx, c.weekURL(time.Now().Year()-1, 1))
}
