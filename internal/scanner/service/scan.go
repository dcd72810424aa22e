package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"finaiguard/internal/scanner/audit"
	"finaiguard/internal/scanner/model"
	"finaiguard/internal/scanner/monitor"
	"finaiguard/internal/scanner/policy"
	"finaiguard/internal/scanner/resolve"
	"finaiguard/pkg/utils"
)

// PriceSource returns one USD quote per feed id. Implemented by
// pkg/coinmarketcap; stubbed in tests.
type PriceSource interface {
	GetQuote(ctx context.Context, feedID string) (model.Quote, error)
}

// ScanRequest is one scan invocation's input. Empty Chains selects
// single-chain mode (bare-symbol resolution).
type ScanRequest struct {
	Wallets []string
	Symbols []string
	Chains  []string
}

// Scanner drives the cartesian product of wallets × symbols × chains through
// resolution, pricing, rule evaluation and record building. Sequential by
// design: one external call at a time, a failed combination never aborts the
// rest.
type Scanner struct {
	table  *resolve.Table
	policy *policy.Policy
	price  PriceSource
	tl     *zap.Logger
	now    func() time.Time
}

func NewScanner(table *resolve.Table, pol *policy.Policy, price PriceSource, logger *zap.Logger) *Scanner {
	return &Scanner{
		table:  table,
		policy: pol,
		price:  price,
		tl:     logger,
		now:    time.Now,
	}
}

// Scan validates the wallet batch up front, then walks symbols × chains.
// Per combination: resolve (miss → skipped), fetch once (failure → failed),
// evaluate, then build one record per wallet reusing the single quote.
func (s *Scanner) Scan(ctx context.Context, req ScanRequest) (*model.ScanResult, error) {
	wallets, err := validateWallets(req.Wallets)
	if err != nil {
		return nil, err
	}

	result := &model.ScanResult{
		Records: []model.AuditRecord{},
		Skipped: []model.SkippedCombination{},
		Failed:  []model.FailedFetch{},
	}

	// 没有钱包就不可能产出记录，不发起任何行情请求
	if len(wallets) == 0 {
		return result, nil
	}

	// 单链模式：空 chain 走裸 symbol 查表
	chains := req.Chains
	if len(chains) == 0 {
		chains = []string{""}
	}

	scanTime := s.now()

	for _, rawSymbol := range req.Symbols {
		symbol := resolve.NormalizeSymbol(rawSymbol)
		if symbol == "" {
			continue
		}
		for _, chain := range chains {
			feedID, ok := s.table.Resolve(chain, symbol)
			if !ok {
				// 配置缺口，跳过该组合，不发起请求
				result.Skipped = append(result.Skipped, model.SkippedCombination{Chain: chain, Symbol: symbol})
				monitor.ScanCombinationsSkipped.Inc()
				s.tl.Warn("Unsupported combination skipped",
					zap.String("chain", chain), zap.String("symbol", symbol))
				continue
			}

			start := time.Now()
			quote, err := s.price.GetQuote(ctx, feedID)
			monitor.PriceFetchDuration.Observe(time.Since(start).Seconds())
			if err == nil && !quote.Price.IsPositive() {
				err = errNonPositivePrice
			}
			if err != nil {
				result.Failed = append(result.Failed, model.FailedFetch{
					Chain:  chain,
					Symbol: symbol,
					Reason: err.Error(),
				})
				monitor.ScanCombinationsFailed.Inc()
				s.tl.Warn("Price fetch failed, combination skipped",
					zap.String("feed_id", feedID), zap.String("symbol", symbol), zap.Error(err))
				continue
			}

			breach := s.policy.Evaluate(symbol, quote.Price)
			if breach {
				monitor.BreachesDetected.WithLabelValues(symbol).Inc()
				s.tl.Info("Compliance breach detected",
					zap.String("symbol", symbol),
					zap.String("chain", chain),
					zap.String("price", audit.FormatPrice(quote.Price)))
			}

			// 单次行情在所有钱包间复用，不按钱包重复请求
			for _, wallet := range wallets {
				record := audit.Build(wallet, symbol, chain, feedID, quote.Price, scanTime, breach)
				result.Records = append(result.Records, record)
			}
			monitor.ScanRecordsProduced.Add(float64(len(wallets)))
		}
	}

	return result, nil
}

var errNonPositivePrice = priceError("price source returned a non-positive price")

type priceError string

func (e priceError) Error() string { return string(e) }

// validateWallets trims the batch and refuses the whole request if any
// address fails the 0x + 40 hex grammar. Distinct from the per-combination
// skip policy: bad input is corrected, not partially processed. Valid
// addresses are canonicalized to EIP-55 checksum form so records and hashes
// are casing-independent of the caller's input.
func validateWallets(wallets []string) ([]string, error) {
	trimmed := make([]string, 0, len(wallets))
	var invalid []string
	for _, w := range wallets {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if !utils.IsValidWalletAddress(w) {
			invalid = append(invalid, w)
			continue
		}
		trimmed = append(trimmed, utils.ChecksumAddress(w))
	}
	if len(invalid) > 0 {
		return nil, NewValidationError("wallets", "invalid wallet address (expected 0x + 40 hex chars)", invalid)
	}
	return trimmed, nil
}
