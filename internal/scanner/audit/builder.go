// Package audit builds compliance audit records and their verification
// hashes. The hash input is a versioned wire format: third parties recompute
// the digest from exported fields, so any change to field order, delimiter,
// number formatting or timestamp formatting is a schema migration, not a
// refactor.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finaiguard/internal/scanner/model"
)

const (
	// Delimiter joins the hash input fields.
	Delimiter = "|"

	// Tag is the fixed application tag appended as the last field of the
	// hash input. Bump the version suffix if the format ever changes.
	Tag = "finaiguard/audit/v1"

	// TimeLayout renders timestamps, RFC 3339 UTC with second precision.
	// The same string goes into the hash input and every export.
	TimeLayout = "2006-01-02T15:04:05Z"

	// ShortHashLen is the documented display truncation of the hex digest.
	ShortHashLen = 16
)

// FormatTimestamp renders a timestamp exactly as hashed and exported.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FormatPrice renders a price exactly as hashed and exported. Canonical
// decimal form, no padding, no thousands separators.
func FormatPrice(price decimal.Decimal) string {
	return price.String()
}

// FormatBreach renders the breach flag exactly as hashed and exported.
func FormatBreach(breach bool) string {
	return strconv.FormatBool(breach)
}

// CanonicalString assembles the hash input:
//
//	timestamp|wallet|token|chain|feed_id|price|breach|TAG
//
// In single-chain mode (empty chain) the chain field is omitted entirely,
// leaving no empty slot — mirroring the export column layout.
func CanonicalString(timestamp, wallet, symbol, chain, feedID, price, breach string) string {
	fields := make([]string, 0, 8)
	fields = append(fields, timestamp, wallet, symbol)
	if chain != "" {
		fields = append(fields, chain)
	}
	fields = append(fields, feedID, price, breach, Tag)
	return strings.Join(fields, Delimiter)
}

// ComputeHash returns the hex-encoded SHA-256 digest of the canonical string.
func ComputeHash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Build constructs an immutable AuditRecord. Deterministic: identical inputs
// always yield an identical hash, the only time dependence is the passed-in
// timestamp.
func Build(wallet, symbol, chain, feedID string, price decimal.Decimal, timestamp time.Time, breach bool) model.AuditRecord {
	ts := FormatTimestamp(timestamp)
	canonical := CanonicalString(ts, wallet, symbol, chain, feedID, FormatPrice(price), FormatBreach(breach))

	return model.AuditRecord{
		Timestamp:   ts,
		Wallet:      wallet,
		TokenSymbol: symbol,
		Chain:       chain,
		FeedID:      feedID,
		Price:       price,
		Breach:      breach,
		AuditHash:   ComputeHash(canonical),
	}
}

// Recompute re-derives the hash from an existing record's fields, the same
// way an external verifier consuming the export does.
func Recompute(r model.AuditRecord) string {
	canonical := CanonicalString(r.Timestamp, r.Wallet, r.TokenSymbol, r.Chain, r.FeedID, FormatPrice(r.Price), FormatBreach(r.Breach))
	return ComputeHash(canonical)
}

// ShortHash 展示用的截断哈希
func ShortHash(hash string) string {
	if len(hash) <= ShortHashLen {
		return hash
	}
	return hash[:ShortHashLen]
}
