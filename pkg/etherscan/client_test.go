package etherscan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"finaiguard/internal/scanner/config"
)

func TestNormalize(t *testing.T) {
	rec := TxRecord{
		BlockNumber: "19432100",
		TimeStamp:   "1710072000",
		Hash:        "0xabc",
		From:        "0xfrom",
		To:          "0xto",
		Value:       "2500000000000000000", // 2.5 ETH in wei
	}

	tx, err := normalize(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := tx.Value.String(); got != "2.5" {
		t.Errorf("value = %s, want 2.5", got)
	}
	if tx.Timestamp != 1710072000 {
		t.Errorf("timestamp = %d", tx.Timestamp)
	}
}

// 一整页交易都在同一区块时 startblock 停在原地，客户端必须识别出翻页
// 无法前进并停止，而不是对同一页无限重试
func TestGetTransactionsStopsWhenPageCannotAdvance(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"1","message":"OK","result":[
			{"blockNumber":"100","timeStamp":"1715938200","hash":"0xaaa","from":"0x1111","to":"0x2222","value":"1000000000000000000"},
			{"blockNumber":"100","timeStamp":"1715938230","hash":"0xbbb","from":"0x2222","to":"0x1111","value":"2000000000000000000"}]}`)
	}))
	defer srv.Close()

	client := NewEtherscanClient(config.TxSourceConfig{
		BaseURL:   srv.URL,
		PageSize:  2,
		RateLimit: 60000,
		Timeout:   5,
	}, zap.NewNop())

	txs, err := client.GetTransactions(context.Background(), "0x1111")
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Errorf("got %d transactions, want 2", len(txs))
	}
	if got := atomic.LoadInt32(&calls); got > 2 {
		t.Errorf("made %d requests, want at most 2", got)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	if _, err := normalize(TxRecord{TimeStamp: "soon", Value: "1"}); err == nil {
		t.Error("expected error for bad timestamp")
	}
	if _, err := normalize(TxRecord{TimeStamp: "1710072000", Value: "lots"}); err == nil {
		t.Error("expected error for bad value")
	}
	// 毫秒级时间戳
	if _, err := normalize(TxRecord{TimeStamp: "1710072000000", Value: "1"}); err == nil {
		t.Error("expected error for millisecond timestamp")
	}
}
