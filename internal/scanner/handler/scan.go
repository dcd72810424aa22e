package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"finaiguard/internal/scanner/audit"
	"finaiguard/internal/scanner/export"
	"finaiguard/internal/scanner/model"
	"finaiguard/internal/scanner/monitor"
	"finaiguard/internal/scanner/service"
	"finaiguard/pkg/logger"
)

// ScanRequestBody 扫描请求体。钱包为多行文本，币种为逗号分隔
type ScanRequestBody struct {
	Wallets string   `json:"wallets"`
	Symbols string   `json:"symbols"`
	Chains  []string `json:"chains,omitempty"`
}

// ScanResponse wraps the scan result with display hashes and an explanation
// when no records were produced.
type ScanResponse struct {
	Records []ScanRecordView           `json:"records"`
	Skipped []model.SkippedCombination `json:"skipped"`
	Failed  []model.FailedFetch        `json:"failed"`
	Message string                     `json:"message,omitempty"`
}

// ScanRecordView 在审计字段之外附带截断哈希便于展示
type ScanRecordView struct {
	model.AuditRecord
	ShortHash string `json:"short_hash"`
}

func (b ScanRequestBody) toServiceRequest() service.ScanRequest {
	var wallets []string
	for _, line := range strings.Split(b.Wallets, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			wallets = append(wallets, line)
		}
	}
	var symbols []string
	for _, s := range strings.Split(b.Symbols, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return service.ScanRequest{
		Wallets: wallets,
		Symbols: symbols,
		Chains:  b.Chains,
	}
}

func (s *Server) runScan(w http.ResponseWriter, r *http.Request, spanName string) (*model.ScanResult, *zap.Logger, bool) {
	ctx, span := logger.StartSpanWithRequest(r, "handler", spanName)
	defer span.End()
	tl := logger.NewLoggerWithTrace(ctx, s.tl)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable request body"})
		return nil, tl, false
	}
	var req ScanRequestBody
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON request body"})
		return nil, tl, false
	}

	svcReq := req.toServiceRequest()
	if len(svcReq.Symbols) == 0 {
		writeError(w, service.NewValidationError("symbols", "no token symbols provided", nil))
		return nil, tl, false
	}

	monitor.ScanRequests.WithLabelValues("api").Inc()
	result, err := s.scanner.Scan(ctx, svcReq)
	if err != nil {
		tl.Warn("Scan request rejected", zap.Error(err))
		writeError(w, err)
		return nil, tl, false
	}
	return result, tl, true
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	result, tl, ok := s.runScan(w, r, "scan")
	if !ok {
		return
	}

	views := make([]ScanRecordView, 0, len(result.Records))
	for _, rec := range result.Records {
		views = append(views, ScanRecordView{
			AuditRecord: rec,
			ShortHash:   audit.ShortHash(rec.AuditHash),
		})
	}

	tl.Info("Scan completed",
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	writeJSON(w, http.StatusOK, ScanResponse{
		Records: views,
		Skipped: result.Skipped,
		Failed:  result.Failed,
		Message: result.EmptyMessage(),
	})
}

func (s *Server) handleScanExport(w http.ResponseWriter, r *http.Request) {
	result, tl, ok := s.runScan(w, r, "scan_export")
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="compliance_audit.csv"`)
	if err := export.WriteCSV(w, result); err != nil {
		tl.Error("CSV export failed", zap.Error(err))
	}
}
