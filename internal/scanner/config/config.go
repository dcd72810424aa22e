package config

import (
	"fmt"

	"finaiguard/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config 定义整个配置的结构
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	PriceFeed PriceFeedConfig `mapstructure:"pricefeed"`
	TxSource  TxSourceConfig  `mapstructure:"txsource"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Table     TableConfig     `mapstructure:"table"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig API 服务配置
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// MonitorConfig Prometheus 监控配置
type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// PriceFeedConfig CoinMarketCap 行情源配置
type PriceFeedConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	RateLimit int    `mapstructure:"rate_limit"`
	Timeout   int    `mapstructure:"timeout"`
}

// TxSourceConfig Etherscan 交易历史源配置
type TxSourceConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	ChainID   int    `mapstructure:"chain_id"`
	RateLimit int    `mapstructure:"rate_limit"`
	Timeout   int    `mapstructure:"timeout"`
	PageSize  int    `mapstructure:"page_size"`
}

// ScanConfig 定时合规扫描配置，interval_minutes 为 0 时不启用
type ScanConfig struct {
	IntervalMinutes int      `mapstructure:"interval_minutes"`
	Wallets         []string `mapstructure:"wallets"`
	Symbols         []string `mapstructure:"symbols"`
	Chains          []string `mapstructure:"chains"`
}

// TableConfig 可选的币种支持表扩展，key 为 "chain:SYMBOL" 或裸 "SYMBOL"
type TableConfig struct {
	Feeds map[string]string `mapstructure:"feeds"`
}

func InitConfig() Config {
	var config Config

	viper.SetConfigName("config.scanner")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config/")

	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	if err := mapstructure.Decode(viper.AllSettings(), &config); err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	return config
}

func WatchConfig(config *Config) {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := InitConfig()
		// 支持表和合规策略保持进程生命周期不变，热加载只调整日志等级
		config.Log = newConfig.Log
		logger.SetLogLevel(config.Log.Level)
	})
}
