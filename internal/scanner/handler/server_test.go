package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/model"
	"finaiguard/internal/scanner/policy"
	"finaiguard/internal/scanner/resolve"
	"finaiguard/internal/scanner/service"
)

type fixedPriceSource struct{}

func (fixedPriceSource) GetQuote(ctx context.Context, feedID string) (model.Quote, error) {
	return model.Quote{
		FeedID:   feedID,
		Price:    decimal.RequireFromString("67412.55"),
		Currency: model.QuoteCurrency,
	}, nil
}

type fixedTxSource struct{}

func (fixedTxSource) GetTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	return []model.Transaction{
		{
			Hash:      "0xaaa",
			Timestamp: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix(),
			From:      "0xother",
			To:        address,
			Value:     decimal.RequireFromString("12.5"),
		},
	}, nil
}

func newTestServer() *Server {
	scanner := service.NewScanner(resolve.Default(), policy.Default(), fixedPriceSource{}, zap.NewNop())
	activity := service.NewActivityService(fixedTxSource{}, zap.NewNop())
	return NewServer(config.ServerConfig{Addr: ":0"}, zap.NewNop(), scanner, activity)
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(w, req)
	return w
}

func TestHandleScan(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/scan", `{
		"wallets": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed\n\n0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"symbols": "BTC, DOGE"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp ScanResponse
	if err := sonic.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Records) != 2 {
		t.Errorf("records = %d, want 2 (BTC for both wallets)", len(resp.Records))
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].Symbol != "DOGE" {
		t.Errorf("skipped = %+v, want DOGE", resp.Skipped)
	}
	if resp.Records[0].ShortHash != resp.Records[0].AuditHash[:16] {
		t.Errorf("short hash = %s", resp.Records[0].ShortHash)
	}
}

func TestHandleScanInvalidWallets(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/scan", `{"wallets": "garbage", "symbols": "BTC"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "garbage") {
		t.Errorf("error body should list the offending input: %s", w.Body.String())
	}
}

func TestHandleScanEmptySymbols(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/scan", `{"wallets": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "symbols": " , "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleScanExportCSV(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/scan/export", `{
		"wallets": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"symbols": "BTC",
		"chains": ["Bitcoin"]
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %s", ct)
	}
	firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
	if firstLine != "timestamp_utc,wallet,token,chain,feed_id,current_price,compliance_breach,audit_hash" {
		t.Errorf("header row = %s", firstLine)
	}
}

func TestHandleActivity(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/activity", `{
		"address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"start_date": "2024-03-10",
		"end_date": "2024-03-10",
		"large_threshold": "10"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var summary model.ActivitySummary
	if err := sonic.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Count != 1 || len(summary.LargeTransactions) != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if got := summary.InboundValue.String(); got != "12.5" {
		t.Errorf("inbound = %s, want 12.5", got)
	}
}

func TestHandleActivityBadThreshold(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s, "/api/v1/activity", `{
		"address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"start_date": "2024-03-10",
		"end_date": "2024-03-10",
		"large_threshold": "a lot"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
