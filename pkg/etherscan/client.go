package etherscan

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/model"
	"finaiguard/pkg/httpclient"
	"finaiguard/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// nativeDecimals ETH 原生单位精度，value 按 1e18 换算
const nativeDecimals = 18

const noTransactionsFound = "No transactions found"

type EtherscanClient struct {
	baseURL    string
	apiKey     string
	chainID    int
	pageSize   int
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

func NewEtherscanClient(cfg config.TxSourceConfig, logger *zap.Logger) *EtherscanClient {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		RateLimit:  cfg.RateLimit,
		MaxRetries: 3,
	}

	httpClient := httpclient.NewHTTPClient(httpCfg, logger)

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	chainID := cfg.ChainID
	if chainID == 0 {
		chainID = 1
	}

	return &EtherscanClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		chainID:    chainID,
		pageSize:   pageSize,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetTransactions 拉取地址全部交易，按区块升序翻页直到取完
func (e *EtherscanClient) GetTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	var txs []model.Transaction
	seen := make(map[string]struct{})
	startBlock := int64(0)

	for {
		params := map[string]string{
			"chainid":    strconv.Itoa(e.chainID),
			"module":     "account",
			"action":     "txlist",
			"address":    address,
			"startblock": strconv.FormatInt(startBlock, 10),
			"endblock":   "99999999",
			"offset":     strconv.Itoa(e.pageSize),
			"page":       "1",
			"sort":       "asc",
		}
		if e.apiKey != "" {
			params["apikey"] = e.apiKey
		}

		var resp TxListResp
		if err := e.httpClient.Get(ctx, e.baseURL, params, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetch transactions failed, address: %s, error: %v", address, err)
		}
		if resp.Status != "1" {
			if resp.Message == noTransactionsFound {
				break
			}
			return nil, fmt.Errorf("transaction source error for %s: %s", address, resp.Message)
		}

		lastBlock := startBlock
		newTxs := 0
		for _, rec := range resp.Result {
			if _, ok := seen[rec.Hash]; ok {
				continue
			}
			seen[rec.Hash] = struct{}{}
			newTxs++

			tx, err := normalize(rec)
			if err != nil {
				e.logger.Warn("Skipping malformed transaction record",
					zap.String("hash", rec.Hash), zap.Error(err))
				continue
			}
			txs = append(txs, tx)

			if block, err := strconv.ParseInt(rec.BlockNumber, 10, 64); err == nil && block > lastBlock {
				lastBlock = block
			}
		}

		if len(resp.Result) < e.pageSize {
			break
		}
		// 整页交易都落在同一区块时 startblock 无法前进，再拉只会得到同一页
		if newTxs == 0 && lastBlock == startBlock {
			e.logger.Warn("Transaction pagination cannot advance, stopping",
				zap.String("address", address), zap.Int64("block", lastBlock))
			break
		}
		// 从最后一个区块续拉，重复的交易靠 hash 去重
		startBlock = lastBlock
	}

	return txs, nil
}

// normalize converts a raw record to the engine's transaction shape, scaling
// the wei value into native units.
func normalize(rec TxRecord) (model.Transaction, error) {
	ts, err := strconv.ParseInt(rec.TimeStamp, 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad timestamp %q: %v", rec.TimeStamp, err)
	}
	// 毫秒级或越界的时间戳会让窗口过滤悄悄失真，当作坏记录丢弃
	if !utils.IsUnixSeconds(ts) {
		return model.Transaction{}, fmt.Errorf("timestamp %d is not in unix seconds", ts)
	}
	wei, err := decimal.NewFromString(rec.Value)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad value %q: %v", rec.Value, err)
	}

	return model.Transaction{
		Hash:      rec.Hash,
		Timestamp: ts,
		From:      rec.From,
		To:        rec.To,
		Value:     wei.Shift(-nativeDecimals),
	}, nil
}
