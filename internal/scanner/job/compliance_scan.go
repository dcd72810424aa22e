package job

import (
	"context"

	"go.uber.org/zap"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/monitor"
	"finaiguard/internal/scanner/service"
)

// ComplianceScan 定时扫描配置中的固定观察名单，命中违规时输出告警日志
type ComplianceScan struct {
	cfg     config.ScanConfig
	tl      *zap.Logger
	scanner *service.Scanner
}

func NewComplianceScan(cfg config.ScanConfig, logger *zap.Logger, scanner *service.Scanner) *ComplianceScan {
	return &ComplianceScan{
		cfg:     cfg,
		tl:      logger,
		scanner: scanner,
	}
}

func (j *ComplianceScan) Run(ctx context.Context) error {
	monitor.ScanRequests.WithLabelValues("scheduled").Inc()

	result, err := j.scanner.Scan(ctx, service.ScanRequest{
		Wallets: j.cfg.Wallets,
		Symbols: j.cfg.Symbols,
		Chains:  j.cfg.Chains,
	})
	if err != nil {
		return err
	}

	breaches := 0
	for _, rec := range result.Records {
		if rec.Breach {
			breaches++
			j.tl.Warn("Scheduled scan found compliance breach",
				zap.String("wallet", rec.Wallet),
				zap.String("symbol", rec.TokenSymbol),
				zap.String("chain", rec.Chain),
				zap.String("price", rec.Price.String()),
				zap.String("audit_hash", rec.AuditHash))
		}
	}

	if msg := result.EmptyMessage(); msg != "" {
		j.tl.Warn("Scheduled scan produced no records", zap.String("reason", msg))
		return nil
	}

	j.tl.Info("Scheduled scan completed",
		zap.Int("records", len(result.Records)),
		zap.Int("breaches", breaches),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))
	return nil
}
