package coinmarketcap

// QuotesResp is the /v1/cryptocurrency/quotes/latest response envelope.
// Data is keyed by CoinMarketCap's numeric id rendered as a string.
type QuotesResp struct {
	Status Status               `json:"status"`
	Data   map[string]QuoteData `json:"data"`
}

type Status struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type QuoteData struct {
	ID     int                      `json:"id"`
	Name   string                   `json:"name"`
	Symbol string                   `json:"symbol"`
	Slug   string                   `json:"slug"`
	Quote  map[string]CurrencyQuote `json:"quote"`
}

type CurrencyQuote struct {
	Price            float64 `json:"price"`
	Volume24H        float64 `json:"volume_24h"`
	PercentChange24H float64 `json:"percent_change_24h"`
	MarketCap        float64 `json:"market_cap"`
	LastUpdated      string  `json:"last_updated"`
}
