package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/seenimoa/analisefin/internal/statement"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

const timeseriesPath = "/ws/fundamentals-timeseries/v1/finance/timeseries/"

// period1 is the earliest timestamp requested (1985-08-23). Yahoo only keeps
// the last four or five fiscal years anyway.
const period1 = 493590046

// Options configures a YFinance client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	CacheTTL   time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// YFinance fetches annual statements from the Yahoo Finance fundamentals
// time series endpoint.
type YFinance struct {
	baseURL   string
	client    *http.Client
	userAgent string
	cache     *Cache[statement.Raw]
	limiter   *rate.Limiter
	log       zerolog.Logger
	now       func() time.Time
}

// NewYFinance creates a new Yahoo Finance data source.
func NewYFinance(opts Options, log zerolog.Logger) *YFinance {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 2
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &YFinance{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		client:    client,
		userAgent: opts.UserAgent,
		cache:     NewCache[statement.Raw](opts.CacheTTL),
		limiter:   rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.Burst),
		log:       log.With().Str("component", "yfinance").Logger(),
		now:       time.Now,
	}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance time series types ---

type tsResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *yfError                     `json:"error"`
	} `json:"timeseries"`
}

type tsMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

type tsPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	CurrencyCode  string `json:"currencyCode"`
	ReportedValue *struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	} `json:"reportedValue"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// FetchStatements fetches the balance sheet, cash flow and income statement
// concurrently and returns them in statement.Kinds order. The first failure
// cancels the other requests.
func (y *YFinance) FetchStatements(ctx context.Context, symbol string) ([]statement.Raw, error) {
	raws := make([]statement.Raw, len(statement.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range statement.Kinds {
		g.Go(func() error {
			raw, err := y.FetchStatement(gctx, symbol, kind)
			if err != nil {
				return err
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range raws {
		if len(r.Rows) > 0 {
			return raws, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
}

// FetchStatement returns one annual statement for symbol.
func (y *YFinance) FetchStatement(ctx context.Context, symbol string, kind statement.Kind) (statement.Raw, error) {
	fields := fieldsFor(kind)
	if fields == nil {
		return statement.Raw{}, fmt.Errorf("unknown statement kind %q", kind)
	}

	cacheKey := "ts:" + string(kind) + ":" + symbol
	if raw, ok := y.cache.Get(cacheKey); ok {
		y.log.Debug().Str("symbol", symbol).Str("statement", string(kind)).Msg("cache hit")
		return raw, nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return statement.Raw{}, err
	}

	types := make([]string, len(fields))
	for i, f := range fields {
		types[i] = "annual" + f.Key
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", strings.Join(types, ","))
	q.Set("merge", "false")
	q.Set("period1", strconv.FormatInt(period1, 10))
	q.Set("period2", strconv.FormatInt(y.now().Unix(), 10))
	u := y.baseURL + timeseriesPath + url.PathEscape(symbol) + "?" + q.Encode()

	headers := map[string]string{}
	if y.userAgent != "" {
		headers["User-Agent"] = y.userAgent
	}

	start := time.Now()
	body, err := doGet(ctx, y.client, u, headers)
	if err != nil {
		return statement.Raw{}, fmt.Errorf("yfinance %s %s: %w", kind, symbol, err)
	}
	defer body.Close()

	var resp tsResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return statement.Raw{}, fmt.Errorf("parse yfinance %s: %w", kind, err)
	}
	if e := resp.Timeseries.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return statement.Raw{}, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
		}
		return statement.Raw{}, fmt.Errorf("yfinance API error: %s: %s", e.Code, e.Description)
	}

	raw, err := parseTimeseries(kind, fields, resp.Timeseries.Result)
	if err != nil {
		return statement.Raw{}, fmt.Errorf("parse yfinance %s: %w", kind, err)
	}

	y.log.Debug().
		Str("symbol", symbol).
		Str("statement", string(kind)).
		Int("rows", len(raw.Rows)).
		Strs("periods", raw.Periods).
		Dur("took", time.Since(start)).
		Msg("statement fetched")

	if dropped := y.cache.Cleanup(); dropped > 0 {
		y.log.Debug().Int("dropped", dropped).Int("entries", y.cache.Len()).Msg("expired cache entries removed")
	}
	y.cache.Set(cacheKey, raw)
	return raw, nil
}

// parseTimeseries turns one time series per line item into a Raw statement.
// Series without any annual point are left out, so a line item Yahoo does not
// report for the company is absent rather than zero.
func parseTimeseries(kind statement.Kind, fields []field, results []map[string]json.RawMessage) (statement.Raw, error) {
	labels := make(map[string]string, len(fields))
	for _, f := range fields {
		labels["annual"+f.Key] = f.Label
	}

	rows := make(map[string]statement.RawRow)
	periods := make(map[string]bool)
	for _, res := range results {
		var meta tsMeta
		if m, ok := res["meta"]; ok {
			if err := json.Unmarshal(m, &meta); err != nil {
				return statement.Raw{}, fmt.Errorf("meta: %w", err)
			}
		}
		if len(meta.Type) == 0 {
			continue
		}
		typ := meta.Type[0]
		label, ok := labels[typ]
		if !ok {
			continue
		}
		data, ok := res[typ]
		if !ok {
			continue
		}

		var points []*tsPoint
		if err := json.Unmarshal(data, &points); err != nil {
			return statement.Raw{}, fmt.Errorf("%s: %w", typ, err)
		}
		row := statement.RawRow{Label: label, Values: make(map[string]*float64)}
		for _, p := range points {
			if p == nil || p.AsOfDate == "" {
				continue
			}
			if p.PeriodType != "" && p.PeriodType != "12M" {
				continue
			}
			periods[p.AsOfDate] = true
			if p.ReportedValue == nil || p.ReportedValue.Raw == nil {
				row.Values[p.AsOfDate] = nil
				continue
			}
			v := *p.ReportedValue.Raw
			row.Values[p.AsOfDate] = &v
		}
		if len(row.Values) > 0 {
			rows[typ] = row
		}
	}

	raw := statement.Raw{Kind: kind}
	for p := range periods {
		raw.Periods = append(raw.Periods, p)
	}
	sort.Strings(raw.Periods)
	for _, f := range fields {
		if row, ok := rows["annual"+f.Key]; ok {
			raw.Rows = append(raw.Rows, row)
		}
	}
	return raw, nil
}
