package model

import "github.com/shopspring/decimal"

// AuditRecord is one compliance check outcome for a (wallet, symbol[, chain])
// combination. Immutable after creation; AuditHash is derived from the other
// fields by the audit package and re-derivable by any consumer of the export.
type AuditRecord struct {
	Timestamp   string          `json:"timestamp_utc"` // RFC 3339 UTC
	Wallet      string          `json:"wallet"`
	TokenSymbol string          `json:"token"`
	Chain       string          `json:"chain,omitempty"` // 单链模式下为空
	FeedID      string          `json:"feed_id"`
	Price       decimal.Decimal `json:"current_price"`
	Breach      bool            `json:"compliance_breach"`
	AuditHash   string          `json:"audit_hash"`
}

// SkippedCombination is a (chain, symbol) pair absent from the resolution
// table. A configuration gap, not a transient failure.
type SkippedCombination struct {
	Chain  string `json:"chain,omitempty"`
	Symbol string `json:"symbol"`
}

// FailedFetch is a combination whose price fetch failed.
type FailedFetch struct {
	Chain  string `json:"chain,omitempty"`
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// EmptyCause 说明一次扫描没有产出任何记录的原因
type EmptyCause string

const (
	EmptyCauseNone           EmptyCause = ""                // 有记录，非空
	EmptyCauseNoInput        EmptyCause = "no_input"        // 钱包或币种列表为空
	EmptyCauseAllUnsupported EmptyCause = "all_unsupported" // 全部组合不在支持表
	EmptyCauseAllFailed      EmptyCause = "all_failed"      // 全部行情获取失败
	EmptyCauseMixed          EmptyCause = "mixed"           // 跳过与失败混合
)

// ScanResult is the ordered output of one scan invocation. Records keep the
// wallets×symbols×chains iteration order; no sorting, no deduplication.
type ScanResult struct {
	Records []AuditRecord        `json:"records"`
	Skipped []SkippedCombination `json:"skipped"`
	Failed  []FailedFetch        `json:"failed"`
}

// Empty reports whether the scan produced no audit records and why.
func (r *ScanResult) Empty() EmptyCause {
	if len(r.Records) > 0 {
		return EmptyCauseNone
	}
	switch {
	case len(r.Skipped) == 0 && len(r.Failed) == 0:
		return EmptyCauseNoInput
	case len(r.Failed) == 0:
		return EmptyCauseAllUnsupported
	case len(r.Skipped) == 0:
		return EmptyCauseAllFailed
	default:
		return EmptyCauseMixed
	}
}

// EmptyMessage renders a user-facing explanation for an empty result.
func (r *ScanResult) EmptyMessage() string {
	switch r.Empty() {
	case EmptyCauseNoInput:
		return "no wallets or symbols were provided"
	case EmptyCauseAllUnsupported:
		return "all requested combinations are unsupported on the selected chains"
	case EmptyCauseAllFailed:
		return "all price fetches failed; the providers may be unavailable"
	case EmptyCauseMixed:
		return "every combination was either unsupported or failed to price"
	default:
		return ""
	}
}
