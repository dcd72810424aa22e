// Package export renders scan results as the tabular audit export. The
// column values are byte-identical to the audit hash input fields, so any
// consumer can recompute audit_hash from the other columns.
package export

import (
	"encoding/csv"
	"io"

	"finaiguard/internal/scanner/audit"
	"finaiguard/internal/scanner/model"
)

// 列顺序是对外接口的一部分，改动即破坏所有已签发的审计哈希
var (
	headerMultiChain  = []string{"timestamp_utc", "wallet", "token", "chain", "feed_id", "current_price", "compliance_breach", "audit_hash"}
	headerSingleChain = []string{"timestamp_utc", "wallet", "token", "feed_id", "current_price", "compliance_breach", "audit_hash"}
)

// WriteCSV writes the audit rows. The chain column appears only when the
// result came from a multi-chain scan, mirroring the hash input layout.
func WriteCSV(w io.Writer, result *model.ScanResult) error {
	hasChain := false
	for _, rec := range result.Records {
		if rec.Chain != "" {
			hasChain = true
			break
		}
	}

	cw := csv.NewWriter(w)
	header := headerSingleChain
	if hasChain {
		header = headerMultiChain
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range result.Records {
		row := make([]string, 0, len(header))
		row = append(row, rec.Timestamp, rec.Wallet, rec.TokenSymbol)
		if hasChain {
			row = append(row, rec.Chain)
		}
		row = append(row,
			rec.FeedID,
			audit.FormatPrice(rec.Price),
			audit.FormatBreach(rec.Breach),
			rec.AuditHash,
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
