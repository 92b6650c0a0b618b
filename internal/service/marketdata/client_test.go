package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Currency: "INR", Timeout: 2 * time.Second})
}

func chartBody(meta map[string]interface{}, timestamps []int64, closes []interface{}, volumes []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []map[string]interface{}{
				{
					"meta":      meta,
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote": []map[string]interface{}{
							{"close": closes, "volume": volumes},
						},
					},
				},
			},
		},
	}
}

func TestHistoryParsesSeries(t *testing.T) {
	day := int64(86400)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/INFY.NS" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(chartBody(
			map[string]interface{}{"symbol": "INFY.NS", "longName": "Infosys Limited", "currency": "INR"},
			[]int64{1700000000, 1700000000 + day, 1700000000 + 2*day},
			[]interface{}{100.123, nil, 102.456},
			[]interface{}{10, 20, 30},
		))
	})

	series, err := c.History(context.Background(), "INFY.NS", time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if series.Name != "Infosys Limited" || series.Currency != "INR" {
		t.Fatalf("unexpected metadata %+v", series)
	}
	if len(series.Points) != 2 {
		t.Fatalf("null closes must be skipped, got %d points", len(series.Points))
	}
	if series.Points[0].Close != 100.12 || series.Points[1].Close != 102.46 {
		t.Fatalf("closes must round to 2 places: %+v", series.Points)
	}
	if series.Points[1].Volume != 30 {
		t.Fatalf("volume misaligned after skip: %+v", series.Points[1])
	}
}

func TestHistoryEmptyResultIsNotError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chartBody(
			map[string]interface{}{"symbol": "NEW.NS"},
			nil, nil, nil,
		))
	})

	series, err := c.History(context.Background(), "NEW.NS", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("empty series must not be an error: %v", err)
	}
	if !series.Empty() {
		t.Fatalf("expected empty series")
	}
}

func TestHistoryChartError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"chart": map[string]interface{}{
				"result": nil,
				"error":  map[string]string{"code": "Not Found", "description": "No data found"},
			},
		})
	})

	if _, err := c.History(context.Background(), "BAD.NS", time.Now(), time.Now()); err == nil {
		t.Fatalf("expected chart error")
	}
}

func TestQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chartBody(
			map[string]interface{}{
				"symbol":               "TCS.NS",
				"shortName":            "TCS",
				"currency":             "INR",
				"regularMarketPrice":   4000.0,
				"chartPreviousClose":   3900.0,
				"regularMarketDayHigh": 4050.0,
				"regularMarketDayLow":  3890.0,
				"regularMarketVolume":  123456,
			},
			nil, nil, nil,
		))
	})

	snap, err := c.Quote(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if snap.Price != 4000 || snap.Change != 100 {
		t.Fatalf("unexpected quote %+v", snap)
	}
	if snap.ChangePercent != 2.56 {
		t.Fatalf("change percent must round: %v", snap.ChangePercent)
	}
	if snap.Name != "TCS" {
		t.Fatalf("short name fallback missing: %q", snap.Name)
	}
}

func TestQuoteZeroPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chartBody(
			map[string]interface{}{"symbol": "HALTED.NS"},
			nil, nil, nil,
		))
	})

	if _, err := c.Quote(context.Background(), "HALTED.NS"); err == nil {
		t.Fatalf("zero price must be an error")
	}
}

func TestDisplayNameFallback(t *testing.T) {
	if got := displayName("", "", "TATASTEEL.NS"); got != "TATASTEEL" {
		t.Fatalf("suffix must be stripped, got %q", got)
	}
	if got := displayName("Long", "Short", "X"); got != "Long" {
		t.Fatalf("long name wins, got %q", got)
	}
	if got := displayName("", "Short", "X"); got != "Short" {
		t.Fatalf("short name is second, got %q", got)
	}
}
