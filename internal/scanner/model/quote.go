package model

import "github.com/shopspring/decimal"

// QuoteCurrency 行情统一计价货币
const QuoteCurrency = "USD"

// Quote is a single USD quote for one feed id, fetched fresh per scan.
type Quote struct {
	FeedID   string          `json:"feed_id"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}
