package resolve

import "strings"

// 支持的链，链名为精确匹配的固定枚举
const (
	ChainEthereum = "Ethereum"
	ChainBitcoin  = "Bitcoin"
	ChainBSC      = "Binance Smart Chain"
	ChainPolygon  = "Polygon"
)

// Key identifies one (chain, symbol) combination. Chain is empty in
// single-chain mode. Symbol is stored uppercase-normalized.
type Key struct {
	Chain  string
	Symbol string
}

// Table maps supported (chain, symbol) combinations to the price-feed id the
// price source understands. Populated once at startup; never mutated during a
// run. A missing key means the combination is unsupported and must be
// skipped, never defaulted.
type Table struct {
	feeds map[Key]string
}

// NewTable builds a table from explicit entries.
func NewTable(feeds map[Key]string) *Table {
	t := &Table{feeds: make(map[Key]string, len(feeds))}
	for k, v := range feeds {
		t.feeds[Key{Chain: k.Chain, Symbol: NormalizeSymbol(k.Symbol)}] = v
	}
	return t
}

// NormalizeSymbol 去空白并转大写
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// CanonicalChain 将链名大小写归一到已知枚举。viper 读配置时会把 map key
// 转成小写，不归一的话配置里的链级覆盖永远匹配不上。未知链名去空白后原样返回。
func CanonicalChain(chain string) string {
	chain = strings.TrimSpace(chain)
	for _, known := range []string{ChainEthereum, ChainBitcoin, ChainBSC, ChainPolygon} {
		if strings.EqualFold(chain, known) {
			return known
		}
	}
	return chain
}

// Resolve looks up the feed id for a (chain, symbol) combination. Exact match
// only, no fuzzy matching, no fallback chain. Pass an empty chain in
// single-chain mode.
func (t *Table) Resolve(chain, symbol string) (string, bool) {
	feedID, ok := t.feeds[Key{Chain: chain, Symbol: NormalizeSymbol(symbol)}]
	return feedID, ok
}

// Merge overlays config-provided entries. Keys are either "SYMBOL" (bare,
// single-chain) or "chain:SYMBOL". Called once during startup wiring only.
func (t *Table) Merge(feeds map[string]string) {
	for k, feedID := range feeds {
		chain, symbol := "", k
		if i := strings.Index(k, ":"); i >= 0 {
			chain, symbol = CanonicalChain(k[:i]), k[i+1:]
		}
		t.feeds[Key{Chain: chain, Symbol: NormalizeSymbol(symbol)}] = feedID
	}
}

// Default returns the built-in support matrix. Feed ids are canonical
// CoinMarketCap slugs. The matrix is deliberately sparse: absence of a pair
// is the mechanism that marks it unsupported.
func Default() *Table {
	return NewTable(map[Key]string{
		// 单链模式（裸 symbol）
		{Symbol: "BTC"}:   "bitcoin",
		{Symbol: "ETH"}:   "ethereum",
		{Symbol: "USDT"}:  "tether",
		{Symbol: "USDC"}:  "usd-coin",
		{Symbol: "DAI"}:   "dai",
		{Symbol: "BNB"}:   "bnb",
		{Symbol: "LINK"}:  "chainlink",
		{Symbol: "MATIC"}: "polygon-ecosystem-token",

		// Ethereum
		{Chain: ChainEthereum, Symbol: "ETH"}:  "ethereum",
		{Chain: ChainEthereum, Symbol: "BTC"}:  "wrapped-bitcoin",
		{Chain: ChainEthereum, Symbol: "USDT"}: "tether",
		{Chain: ChainEthereum, Symbol: "USDC"}: "usd-coin",
		{Chain: ChainEthereum, Symbol: "DAI"}:  "dai",
		{Chain: ChainEthereum, Symbol: "LINK"}: "chainlink",

		// Bitcoin
		{Chain: ChainBitcoin, Symbol: "BTC"}: "bitcoin",

		// Binance Smart Chain
		{Chain: ChainBSC, Symbol: "BNB"}:  "bnb",
		{Chain: ChainBSC, Symbol: "USDT"}: "tether",
		{Chain: ChainBSC, Symbol: "USDC"}: "usd-coin",

		// Polygon
		{Chain: ChainPolygon, Symbol: "MATIC"}: "polygon-ecosystem-token",
		{Chain: ChainPolygon, Symbol: "ETH"}:   "ethereum",
		{Chain: ChainPolygon, Symbol: "USDC"}:  "usd-coin",
		{Chain: ChainPolygon, Symbol: "DAI"}:   "dai",
	})
}
