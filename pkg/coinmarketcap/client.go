package coinmarketcap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/model"
	"finaiguard/pkg/httpclient"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// apiKeyHeader CMC 专用的 API key header
const apiKeyHeader = "X-CMC_PRO_API_KEY"

type CMCClient struct {
	baseURL    string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

func NewCMCClient(cfg config.PriceFeedConfig, logger *zap.Logger) *CMCClient {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:      time.Duration(cfg.Timeout) * time.Second,
		RateLimit:    cfg.RateLimit,
		MaxRetries:   3,
		APIKey:       cfg.APIKey,
		APIKeyHeader: apiKeyHeader,
	}

	httpClient := httpclient.NewHTTPClient(httpCfg, logger)

	return &CMCClient{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetQuote 按 canonical slug 获取单个 USD 报价
func (c *CMCClient) GetQuote(ctx context.Context, feedID string) (model.Quote, error) {
	quotes, err := c.GetQuotes(ctx, []string{feedID})
	if err != nil {
		return model.Quote{}, err
	}
	quote, ok := quotes[feedID]
	if !ok {
		return model.Quote{}, fmt.Errorf("feed id %q not found in price source response", feedID)
	}
	return quote, nil
}

// GetQuotes 单次请求批量获取多个 slug 的 USD 报价
func (c *CMCClient) GetQuotes(ctx context.Context, feedIDs []string) (map[string]model.Quote, error) {
	url := fmt.Sprintf("%s/v1/cryptocurrency/quotes/latest", c.baseURL)
	params := map[string]string{
		"slug":    strings.Join(feedIDs, ","),
		"convert": model.QuoteCurrency,
	}

	var resp QuotesResp
	if err := c.httpClient.Get(ctx, url, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch quotes failed, slugs: %s, error: %v", params["slug"], err)
	}
	if resp.Status.ErrorCode != 0 {
		return nil, fmt.Errorf("price source error %d: %s", resp.Status.ErrorCode, resp.Status.ErrorMessage)
	}

	quotes := make(map[string]model.Quote, len(resp.Data))
	for _, data := range resp.Data {
		usd, ok := data.Quote[model.QuoteCurrency]
		if !ok {
			continue
		}
		quotes[data.Slug] = model.Quote{
			FeedID:   data.Slug,
			Price:    decimal.NewFromFloat(usd.Price),
			Currency: model.QuoteCurrency,
		}
	}

	return quotes, nil
}
