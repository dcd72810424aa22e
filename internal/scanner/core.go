package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/handler"
	"finaiguard/internal/scanner/job"
	"finaiguard/internal/scanner/monitor"
	"finaiguard/internal/scanner/policy"
	"finaiguard/internal/scanner/resolve"
	"finaiguard/internal/scanner/service"
	"finaiguard/pkg/coinmarketcap"
	"finaiguard/pkg/etherscan"
)

type Core struct {
	cfg       config.Config
	tl        *zap.Logger
	api       *handler.Server
	scheduler *job.Scheduler
	metrics   *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) *Core {
	// 支持表与合规策略：进程启动时装配一次，运行期只读
	table := resolve.Default()
	table.Merge(cfg.Table.Feeds)
	pol := policy.Default()

	// 外部数据源客户端
	priceSource := coinmarketcap.NewCMCClient(cfg.PriceFeed, logger)
	txSource := etherscan.NewEtherscanClient(cfg.TxSource, logger)

	scanner := service.NewScanner(table, pol, priceSource, logger)
	activity := service.NewActivityService(txSource, logger)

	// API 服务
	api := handler.NewServer(cfg.Server, logger, scanner, activity)

	// 定时扫描观察名单（可选）
	scheduler := job.NewScheduler(logger)
	if cfg.Scan.IntervalMinutes > 0 {
		watchlistScan := job.NewComplianceScan(cfg.Scan, logger, scanner)
		scheduler.RegisterJob("compliance_scan", time.Duration(cfg.Scan.IntervalMinutes)*time.Minute, watchlistScan.Run)
	}

	return &Core{
		cfg:       cfg,
		tl:        logger,
		api:       api,
		scheduler: scheduler,
		metrics:   monitor.NewMetricsServer(cfg.Monitor),
	}
}

func (c *Core) Start(ctx context.Context) {
	c.tl.Info("Starting scanner core...")
	// 启动监控服务
	if c.metrics != nil {
		c.metrics.Run()
	}

	// 启动 API 服务
	c.api.Run()

	// 启动调度器
	c.scheduler.Start(ctx)
	c.tl.Info("Scanner started successfully")

	// 等待外部关闭信号
	<-ctx.Done()
	c.tl.Info("Shutting down scanner due to context cancellation...")
}

// Stop 优雅关闭 Core 的所有资源
func (c *Core) Stop(ctx context.Context) {
	c.tl.Info("Stopping scanner core...")

	if err := c.api.Stop(ctx); err != nil {
		c.tl.Warn("API server shutdown error", zap.Error(err))
	}

	if c.scheduler != nil {
		c.scheduler.Stop(ctx)
	}

	if c.metrics != nil {
		_ = c.metrics.Stop(ctx)
	}

	c.tl.Info("Scanner core stopped.")
}
