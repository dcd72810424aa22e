package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 链上交易，按交易源返回的内容原样保存
type Transaction struct {
	Hash      string          `json:"hash"`
	Timestamp int64           `json:"timestamp"` // epoch seconds
	From      string          `json:"from"`
	To        string          `json:"to"`
	Value     decimal.Decimal `json:"value"` // 链原生单位，已按精度换算
}

// Time returns the transaction timestamp as UTC time.
func (t Transaction) Time() time.Time {
	return time.Unix(t.Timestamp, 0).UTC()
}

// ActivitySummary aggregates a wallet's transactions over an inclusive date
// window. Recomputed per request; an empty window is a valid outcome.
type ActivitySummary struct {
	Address     string          `json:"address"`
	WindowStart string          `json:"window_start"` // RFC 3339 UTC
	WindowEnd   string          `json:"window_end"`   // RFC 3339 UTC
	Count       int             `json:"count"`
	TotalValue  decimal.Decimal `json:"total_value"` // 不区分流入流出
	// 按查询地址区分的流向统计，to==address 记为流入
	InboundValue  decimal.Decimal `json:"inbound_value"`
	OutboundValue decimal.Decimal `json:"outbound_value"`

	LargeThreshold    decimal.Decimal `json:"large_threshold"`
	LargeTransactions []Transaction   `json:"large_transactions"`
	Transactions      []Transaction   `json:"transactions"`
}
