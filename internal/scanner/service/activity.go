package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finaiguard/internal/scanner/model"
	"finaiguard/internal/scanner/monitor"
	"finaiguard/pkg/utils"
)

// TransactionSource returns a wallet's transaction history, ascending by
// block. Implemented by pkg/etherscan; stubbed in tests.
type TransactionSource interface {
	GetTransactions(ctx context.Context, address string) ([]model.Transaction, error)
}

// DateLayout 活动分析日期输入格式
const DateLayout = "2006-01-02"

// DefaultLargeThreshold is the documented default for the large-transaction
// cutoff, in the chain's native unit.
var DefaultLargeThreshold = decimal.NewFromInt(10)

// ActivityService fetches a wallet's history and summarizes one date window.
type ActivityService struct {
	source TransactionSource
	tl     *zap.Logger
}

func NewActivityService(source TransactionSource, logger *zap.Logger) *ActivityService {
	return &ActivityService{source: source, tl: logger}
}

// Analyze validates inputs, pulls the address's history once and derives the
// window summary. Threshold of zero selects the documented default.
func (s *ActivityService) Analyze(ctx context.Context, address, startDate, endDate string, threshold decimal.Decimal) (*model.ActivitySummary, error) {
	address = strings.TrimSpace(address)
	if !utils.IsValidWalletAddress(address) {
		return nil, NewValidationError("address", "invalid wallet address (expected 0x + 40 hex chars)", []string{address})
	}

	start, err := time.ParseInLocation(DateLayout, startDate, time.UTC)
	if err != nil {
		return nil, NewValidationError("start_date", "invalid date (expected YYYY-MM-DD)", []string{startDate})
	}
	end, err := time.ParseInLocation(DateLayout, endDate, time.UTC)
	if err != nil {
		return nil, NewValidationError("end_date", "invalid date (expected YYYY-MM-DD)", []string{endDate})
	}
	if end.Before(start) {
		return nil, NewValidationError("end_date", "end date precedes start date", []string{endDate})
	}
	if !threshold.IsPositive() {
		threshold = DefaultLargeThreshold
	}

	monitor.ActivityRequests.Inc()

	txs, err := s.source.GetTransactions(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("transaction source for %s: %w", address, err)
	}
	monitor.TransactionsFetched.Add(float64(len(txs)))

	summary := Summarize(address, txs, start, end, threshold)
	s.tl.Info("Activity window summarized",
		zap.String("address", address),
		zap.Int("count", summary.Count),
		zap.Int("large", len(summary.LargeTransactions)))
	return summary, nil
}

// Summarize filters transactions into the inclusive [start-of-day(start),
// end-of-day(end)] UTC window in one linear pass. TotalValue sums every
// filtered transaction regardless of direction; the inbound/outbound split
// compares to/from against the queried address. An empty window is a valid,
// non-error outcome.
func Summarize(address string, txs []model.Transaction, startDate, endDate time.Time, threshold decimal.Decimal) *model.ActivitySummary {
	startInstant := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	// 窗口终点是 end_date 当天最后一秒，不是当天零点
	endInstant := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, time.UTC)

	summary := &model.ActivitySummary{
		Address:           address,
		WindowStart:       startInstant.Format(time.RFC3339),
		WindowEnd:         endInstant.Format(time.RFC3339),
		TotalValue:        decimal.Zero,
		InboundValue:      decimal.Zero,
		OutboundValue:     decimal.Zero,
		LargeThreshold:    threshold,
		LargeTransactions: []model.Transaction{},
		Transactions:      []model.Transaction{},
	}

	for _, tx := range txs {
		at := tx.Time()
		if at.Before(startInstant) || at.After(endInstant) {
			continue
		}
		summary.Transactions = append(summary.Transactions, tx)
		summary.Count++
		summary.TotalValue = summary.TotalValue.Add(tx.Value)

		if strings.EqualFold(tx.To, address) {
			summary.InboundValue = summary.InboundValue.Add(tx.Value)
		} else if strings.EqualFold(tx.From, address) {
			summary.OutboundValue = summary.OutboundValue.Add(tx.Value)
		}

		if tx.Value.GreaterThanOrEqual(threshold) {
			summary.LargeTransactions = append(summary.LargeTransactions, tx)
		}
	}

	return summary
}
