package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"finaiguard/internal/scanner/resolve"
)

func TestInitConfig(t *testing.T) {
	if _, err := os.Stat("../../../config/config.scanner.yaml"); err != nil {
		t.Skip("config file not present")
	}
	if err := os.Chdir("../../.."); err != nil {
		t.Fatal(err)
	}
	cfg := InitConfig()
	t.Logf("cfg log: %+v", cfg.Log)
	t.Logf("cfg pricefeed: %+v", cfg.PriceFeed)
	t.Logf("cfg txsource: %+v", cfg.TxSource)
	t.Logf("cfg scan: %+v", cfg.Scan)
}

// viper 会把 map key 转小写，这里验证从 yaml 到支持表的完整链路仍能命中链级覆盖
func TestTableFeedsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("table:\n  feeds:\n    \"Ethereum:SHIB\": \"shiba-inu\"\n")
	if err := os.WriteFile(filepath.Join(dir, "config.scanner.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigName("config.scanner")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatal(err)
	}

	table := resolve.Default()
	table.Merge(cfg.Table.Feeds)
	if got, ok := table.Resolve(resolve.ChainEthereum, "SHIB"); !ok || got != "shiba-inu" {
		t.Errorf("Resolve after config merge = (%q, %v), want (shiba-inu, true)", got, ok)
	}
}
