package api

import (
	"errors"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketEchoHandler exposes the public market API. Validation failures are
// 400, an unknown or empty symbol is 404, provider failures surface as 502,
// and every error body is {"error": "..."}.
type MarketEchoHandler struct {
	logger   *xlogger.Logger
	engine   *usecase.ForecastEngine
	news     *usecase.NewsAggregator
	overview *usecase.MarketOverview
}

func NewMarketEchoHandler(
	logger *xlogger.Logger,
	engine *usecase.ForecastEngine,
	news *usecase.NewsAggregator,
	overview *usecase.MarketOverview,
) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, engine: engine, news: news, overview: overview}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock/:symbol", h.Stock)
	g.GET("/predict/:symbol", h.Predict)
	g.GET("/news", h.MarketNews)
	g.GET("/news/:symbol", h.SymbolNews)
	g.GET("/overview", h.Overview)
	g.GET("/search", h.Search)
}

func (h *MarketEchoHandler) Stock(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != "" {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.engine.History(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		h.logger.Error("stock history error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to fetch stock data").WithError(err))
	}
	if series.Empty() {
		return xhttp.NotFoundResponse(c, "No data available for this symbol")
	}

	return xhttp.SuccessResponse(c, stockResponse(series))
}

func stockResponse(series models.PriceSeries) *models.StockResponse {
	resp := &models.StockResponse{
		Symbol:   series.Symbol,
		Name:     series.Name,
		Currency: series.Currency,
		Dates:    make([]string, len(series.Points)),
		Prices:   make([]float64, len(series.Points)),
		Volumes:  make([]int64, len(series.Points)),
	}
	for i, p := range series.Points {
		resp.Dates[i] = p.Date.Format("2006-01-02")
		resp.Prices[i] = p.Close
		resp.Volumes[i] = p.Volume
	}
	n := len(series.Points)
	resp.CurrentPrice = series.Points[n-1].Close
	resp.PreviousPrice = resp.CurrentPrice
	if n > 1 {
		resp.PreviousPrice = series.Points[n-2].Close
	}
	return resp
}

func (h *MarketEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{UseCache: true}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != "" {
		return xhttp.BadRequestResponse(c, verr)
	}
	if c.QueryParam("use_cache") == "false" {
		req.UseCache = false
	}

	ctx := c.Request().Context()
	result, err := h.engine.Predict(ctx, req.Symbol, req.UseCache)
	if err != nil {
		if errors.Is(err, domrepo.ErrNoData) {
			return xhttp.NotFoundResponse(c, "No data available for this symbol")
		}
		h.logger.Error("predict error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to compute prediction").WithError(err))
	}

	series, err := h.engine.History(ctx, req.Symbol, 0)
	if err != nil || series.Empty() {
		return xhttp.NotFoundResponse(c, "No data available for this symbol")
	}

	return xhttp.SuccessResponse(c, &models.PredictResponse{
		Symbol:       req.Symbol,
		CurrentPrice: series.LastClose(),
		Prediction:   result,
	})
}

func (h *MarketEchoHandler) MarketNews(c echo.Context) error {
	items, err := h.news.FetchMarketNews(c.Request().Context(), c.QueryParam("use_cache") != "false")
	if err != nil {
		h.logger.Error("market news error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to fetch news").WithError(err))
	}

	return xhttp.SuccessResponse(c, &models.NewsResponse{
		Items:     items,
		Sentiment: h.news.Summarize(items),
	})
}

func (h *MarketEchoHandler) SymbolNews(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != "" {
		return xhttp.BadRequestResponse(c, verr)
	}

	items, err := h.news.FetchForSymbol(c.Request().Context(), req.Symbol, c.QueryParam("use_cache") != "false")
	if err != nil {
		h.logger.Error("symbol news error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to fetch news").WithError(err))
	}

	return xhttp.SuccessResponse(c, &models.NewsResponse{
		Symbol:    req.Symbol,
		Items:     items,
		Sentiment: h.news.Summarize(items),
	})
}

func (h *MarketEchoHandler) Overview(c echo.Context) error {
	start := time.Now()
	overview, err := h.overview.FetchOverview(c.Request().Context(), c.QueryParam("use_cache") != "false")
	if err != nil {
		h.logger.Error("overview error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to fetch market overview").WithError(err))
	}

	h.logger.Debug("overview served",
		xlogger.Int("stocks", overview.Statistics.Total),
		xlogger.Duration("duration_ms", time.Since(start)))
	return xhttp.SuccessResponse(c, overview)
}

func (h *MarketEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != "" {
		return xhttp.BadRequestResponse(c, verr)
	}

	matches, err := h.overview.Search(c.Request().Context(), req.Query)
	if err != nil {
		h.logger.Error("search error", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to search stocks").WithError(err))
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"query":   req.Query,
		"results": matches,
		"count":   len(matches),
	})
}
