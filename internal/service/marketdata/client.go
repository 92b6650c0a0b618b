package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkghttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// Client fetches daily price history and quotes from a Yahoo-style chart API.
type Client struct {
	http     *pkghttp.Client
	baseURL  string
	currency string
}

type Config struct {
	BaseURL  string
	Currency string
	Timeout  time.Duration
}

func New(cfg Config) *Client {
	return &Client{
		http:     pkghttp.NewClient(pkghttp.WithTimeout(cfg.Timeout)),
		baseURL:  cfg.BaseURL,
		currency: cfg.Currency,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				LongName             string  `json:"longName"`
				ShortName            string  `json:"shortName"`
				Currency             string  `json:"currency"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				PreviousClose        float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				MarketCap            float64 `json:"marketCap"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) chart(ctx context.Context, symbol string, from, to time.Time, interval string) (*chartResponse, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		QueryParams: map[string][]string{
			"period1":  {fmt.Sprintf("%d", from.Unix())},
			"period2":  {fmt.Sprintf("%d", to.Unix())},
			"interval": {interval},
			"events":   {"div,splits"},
		},
		Headers: map[string]string{"User-Agent": "Mozilla/5.0"},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s: %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}
	return &resp, nil
}

// History returns the daily close series for symbol within [from, to],
// ascending by date. Rows with a missing close are skipped. An empty series
// is a valid result, not an error.
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error) {
	resp, err := c.chart(ctx, symbol, from, to, "1d")
	if err != nil {
		return models.PriceSeries{}, err
	}

	r := resp.Chart.Result[0]
	series := models.PriceSeries{
		Symbol:   symbol,
		Name:     displayName(r.Meta.LongName, r.Meta.ShortName, symbol),
		Currency: firstNonEmpty(r.Meta.Currency, c.currency),
	}
	if len(r.Indicators.Quote) == 0 {
		return series, nil
	}

	q := r.Indicators.Quote[0]
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		var vol int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			vol = *q.Volume[i]
		}
		series.Points = append(series.Points, models.PricePoint{
			Date:   time.Unix(ts, 0).UTC(),
			Close:  util.Round2(*q.Close[i]),
			Volume: vol,
		})
	}
	return series, nil
}

// Quote returns the current snapshot for symbol, built from the chart
// metadata of a short window. Missing metadata falls back to symbol-derived
// defaults so one sparse upstream record does not fail the whole overview.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.SnapshotRecord, error) {
	to := time.Now()
	resp, err := c.chart(ctx, symbol, to.AddDate(0, 0, -5), to, "1d")
	if err != nil {
		return nil, err
	}

	meta := resp.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	prev := meta.PreviousClose
	if price == 0 {
		return nil, domrepo.ErrNoData
	}

	var change, changePct float64
	if prev != 0 {
		change = price - prev
		changePct = change / prev * 100
	}

	return &models.SnapshotRecord{
		Symbol:        symbol,
		Name:          displayName(meta.LongName, meta.ShortName, symbol),
		Price:         util.Round2(price),
		Change:        util.Round2(change),
		ChangePercent: util.Round2(changePct),
		Volume:        meta.RegularMarketVolume,
		MarketCap:     meta.MarketCap,
		High:          util.Round2(meta.RegularMarketDayHigh),
		Low:           util.Round2(meta.RegularMarketDayLow),
		Currency:      firstNonEmpty(meta.Currency, c.currency),
		LastUpdate:    time.Now().UTC(),
	}, nil
}

func displayName(long, short, symbol string) string {
	if long != "" {
		return long
	}
	if short != "" {
		return short
	}
	base := strings.TrimSuffix(strings.TrimSuffix(symbol, ".NS"), ".BO")
	return base
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ domrepo.MarketData = (*Client)(nil)
