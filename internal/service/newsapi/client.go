package newsapi

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkghttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// Client fetches articles from a NewsAPI-compatible endpoint.
type Client struct {
	http     *pkghttp.Client
	baseURL  string
	apiKey   string
	language string
	sources  string
}

type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Sources  string
	Timeout  time.Duration
}

func New(cfg Config) *Client {
	return &Client{
		http:     pkghttp.NewClient(pkghttp.WithTimeout(cfg.Timeout)),
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		sources:  cfg.Sources,
	}
}

// Configured reports whether an API key is present. Without one every Fetch
// fails and callers fall back to placeholder coverage.
func (c *Client) Configured() bool { return c.apiKey != "" }

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

// Fetch queries the everything endpoint for articles matching query within
// [from, to], newest first, capped at limit.
func (c *Client) Fetch(ctx context.Context, query string, from, to time.Time, limit int) ([]models.NewsItem, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("news provider not configured")
	}

	params := map[string][]string{
		"q":        {query},
		"apiKey":   {c.apiKey},
		"language": {c.language},
		"sortBy":   {"publishedAt"},
		"from":     {from.Format("2006-01-02")},
		"to":       {to.Format("2006-01-02")},
		"pageSize": {fmt.Sprintf("%d", limit)},
	}
	if c.sources != "" {
		params["sources"] = []string{c.sources}
	}

	var resp apiResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method:      pkghttp.MethodGet,
		URL:         c.baseURL + "/everything",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("news fetch: upstream status %q: %s", resp.Status, resp.Message)
	}

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Now()),
		})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

var _ domrepo.NewsProvider = (*Client)(nil)
