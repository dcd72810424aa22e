package policy

import (
	"github.com/shopspring/decimal"

	"finaiguard/internal/scanner/resolve"
)

// RuleKind 规则比较方式
type RuleKind int

const (
	// RuleNone never breaches. The default for unknown symbols; deliberately
	// permissive, a stricter default is a policy change.
	RuleNone RuleKind = iota
	// RuleUpperBound breaches when price > threshold.
	RuleUpperBound
	// RulePegDeviation breaches when |price - 1.0| > threshold.
	RulePegDeviation
)

// Rule is one symbol's breach predicate descriptor.
type Rule struct {
	Kind      RuleKind
	Threshold decimal.Decimal
}

// Policy maps symbols to rule descriptors. Static configuration injected at
// construction; lookup is by symbol alone, independent of chain or feed id.
type Policy struct {
	rules map[string]Rule
}

var pegTarget = decimal.NewFromInt(1)

// New builds a policy from explicit rules.
func New(rules map[string]Rule) *Policy {
	p := &Policy{rules: make(map[string]Rule, len(rules))}
	for symbol, rule := range rules {
		p.rules[resolve.NormalizeSymbol(symbol)] = rule
	}
	return p
}

// Evaluate applies the symbol's rule to a price. Total function: unknown
// symbols evaluate to no-breach.
func (p *Policy) Evaluate(symbol string, price decimal.Decimal) bool {
	rule, ok := p.rules[resolve.NormalizeSymbol(symbol)]
	if !ok {
		return false
	}
	switch rule.Kind {
	case RuleUpperBound:
		return price.GreaterThan(rule.Threshold)
	case RulePegDeviation:
		return price.Sub(pegTarget).Abs().GreaterThan(rule.Threshold)
	default:
		return false
	}
}

// Rule returns the descriptor for a symbol, for display purposes.
func (p *Policy) Rule(symbol string) (Rule, bool) {
	rule, ok := p.rules[resolve.NormalizeSymbol(symbol)]
	return rule, ok
}

// Default returns the built-in compliance policy: fixed upper bounds for the
// majors, a 5% peg band for stable-value tokens.
func Default() *Policy {
	return New(map[string]Rule{
		"BTC": {Kind: RuleUpperBound, Threshold: decimal.NewFromInt(50000)},
		"ETH": {Kind: RuleUpperBound, Threshold: decimal.NewFromInt(3000)},
		"BNB": {Kind: RuleUpperBound, Threshold: decimal.NewFromInt(500)},
		"SOL": {Kind: RuleUpperBound, Threshold: decimal.NewFromInt(150)},

		"USDT": {Kind: RulePegDeviation, Threshold: decimal.NewFromFloat(0.05)},
		"USDC": {Kind: RulePegDeviation, Threshold: decimal.NewFromFloat(0.05)},
		"DAI":  {Kind: RulePegDeviation, Threshold: decimal.NewFromFloat(0.05)},
	})
}
