package coinmarketcap

import (
	"testing"

	"finaiguard/internal/scanner/config"
	"finaiguard/pkg/logger"
)

func TestNewCMCClient(t *testing.T) {
	c := NewCMCClient(config.PriceFeedConfig{
		BaseURL:   "https://pro-api.coinmarketcap.com",
		APIKey:    "test-key",
		RateLimit: 30,
		Timeout:   10,
	}, logger.NewLogger("test"))
	if c == nil {
		t.Errorf("NewCMCClient failed")
	}
}
