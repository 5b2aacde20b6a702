package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/glbter/capstone/entities"
	"github.com/glbter/capstone/provider"
)

const (
	apiKeyParam    = "apikey"
	dateParam      = "date"
	dateLayout     = "2006-01-02"
	maxMessageSize = 200
)

// FinancialDataClient reads the financial-data provider. Every call carries the
// configured api key; a missing key is left for the provider to reject.
type FinancialDataClient struct {
	client *resty.Client
	apiKey string
	now    func() time.Time
	logger *zap.Logger
}

func NewClient(c *http.Client, url, apiKey string, logger *zap.Logger) FinancialDataClient {
	return FinancialDataClient{
		client: resty.NewWithClient(c).SetBaseURL(url),
		apiKey: apiKey,
		now:    time.Now,
		logger: logger.With(zap.String("caller", "FinancialDataClient")),
	}
}

// WithClock returns a copy of the client that takes "today" from now.
func (fc FinancialDataClient) WithClock(now func() time.Time) FinancialDataClient {
	fc.now = now
	return fc
}

// Get reads one endpoint and decodes its body into out.
func (fc FinancialDataClient) Get(ctx context.Context, endpoint provider.Endpoint, params map[string]string, out any) error {
	logger := fc.logger.With(zap.String("method", "Get"), zap.String("endpoint", string(endpoint)))

	query := make(map[string]string, len(params)+2)
	for k, v := range params {
		query[k] = v
	}
	if endpoint.DateScoped() {
		query[dateParam] = fc.now().UTC().Format(dateLayout)
	}
	query[apiKeyParam] = fc.apiKey

	start := time.Now()
	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(string(endpoint))
	logger.Debug("finish request", zap.Duration("duration", time.Since(start)))
	if err != nil {
		return &provider.Error{Endpoint: endpoint, Kind: provider.KindTransport, Message: err.Error(), Err: err}
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return &provider.Error{
			Endpoint:   endpoint,
			Kind:       provider.KindStatus,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("responded with %v http code: %s", resp.StatusCode(), errorMessage(body)),
		}
	}
	if msg := gjson.GetBytes(body, "Error Message"); msg.Exists() {
		return &provider.Error{
			Endpoint:   endpoint,
			Kind:       provider.KindStatus,
			StatusCode: resp.StatusCode(),
			Message:    msg.String(),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &provider.Error{Endpoint: endpoint, Kind: provider.KindDecode, Message: err.Error(), Err: err}
	}

	return nil
}

func (fc FinancialDataClient) Profile(ctx context.Context, symbol entities.Symbol) ([]entities.CompanyProfile, error) {
	var res []entities.CompanyProfile
	err := fc.Get(ctx, provider.EndpointProfile, symbolParams(symbol), &res)
	return res, err
}

func (fc FinancialDataClient) Quote(ctx context.Context, symbol entities.Symbol) ([]entities.Quote, error) {
	var res []entities.Quote
	err := fc.Get(ctx, provider.EndpointQuote, symbolParams(symbol), &res)
	return res, err
}

func (fc FinancialDataClient) KeyMetricsTTM(ctx context.Context, symbol entities.Symbol) ([]entities.KeyMetrics, error) {
	var res []entities.KeyMetrics
	err := fc.Get(ctx, provider.EndpointKeyMetricsTTM, symbolParams(symbol), &res)
	return res, err
}

func (fc FinancialDataClient) RatiosTTM(ctx context.Context, symbol entities.Symbol) ([]entities.Ratios, error) {
	var res []entities.Ratios
	err := fc.Get(ctx, provider.EndpointRatiosTTM, symbolParams(symbol), &res)
	return res, err
}

func (fc FinancialDataClient) BiggestGainers(ctx context.Context) ([]entities.MarketMover, error) {
	return fc.movers(ctx, provider.EndpointBiggestGainers)
}

func (fc FinancialDataClient) BiggestLosers(ctx context.Context) ([]entities.MarketMover, error) {
	return fc.movers(ctx, provider.EndpointBiggestLosers)
}

func (fc FinancialDataClient) MostActives(ctx context.Context) ([]entities.MarketMover, error) {
	return fc.movers(ctx, provider.EndpointMostActives)
}

func (fc FinancialDataClient) SectorPerformance(ctx context.Context) ([]entities.SectorPerformance, error) {
	var res []entities.SectorPerformance
	err := fc.Get(ctx, provider.EndpointSectorPerformance, nil, &res)
	return res, err
}

func (fc FinancialDataClient) LatestNews(ctx context.Context, limit int) ([]entities.NewsArticle, error) {
	var res []entities.NewsArticle
	err := fc.Get(ctx, provider.EndpointNews, map[string]string{"limit": strconv.Itoa(limit)}, &res)
	return res, err
}

func (fc FinancialDataClient) movers(ctx context.Context, endpoint provider.Endpoint) ([]entities.MarketMover, error) {
	var res []entities.MarketMover
	err := fc.Get(ctx, endpoint, nil, &res)
	return res, err
}

func symbolParams(symbol entities.Symbol) map[string]string {
	return map[string]string{"symbol": string(symbol)}
}

// errorMessage pulls the provider's own explanation out of an error body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"Error Message", "error", "message"} {
			if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String {
				return v.String()
			}
		}
	}
	return truncateUTF8(body, maxMessageSize)
}

// truncateUTF8 cuts body to at most n bytes without splitting a rune.
func truncateUTF8(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	body = body[:n]
	for i := 0; i < utf8.UTFMax-1 && len(body) > 0; i++ {
		if r, size := utf8.DecodeLastRune(body); r != utf8.RuneError || size != 1 {
			break
		}
		body = body[:len(body)-1]
	}
	return string(body)
}
