package collector

import (
	"strings"
	"unicode"

	"PortfolioSentinel/internal/model"
)

// DefaultSuffix is appended to short alphabetic symbols with no known listing.
const DefaultSuffix = ".TO"

// KnownSuffixes are Yahoo exchange suffixes that mark a symbol as resolved.
var KnownSuffixes = []string{".TO", ".V", ".NE", ".CN"}

// ExchangeSuffixes maps a brokerage primary exchange to its Yahoo suffix.
// US venues map to no suffix.
var ExchangeSuffixes = map[string]string{
	"TSX":      ".TO",
	"TSX-V":    ".V",
	"TSXV":     ".V",
	"NEO":      ".NE",
	"AEQUITAS": ".NE",
	"CSE":      ".CN",
	"NYSE":     "",
	"NASDAQ":   "",
	"ARCA":     "",
	"NYSEARCA": "",
	"BATS":     "",
	"AMEX":     "",
	"OTC":      "",
}

// Resolver maps a brokerage symbol to a Yahoo-tradable one. The lookup is a
// best-effort heuristic, not an authoritative listing.
type Resolver struct {
	Overrides map[string]string
}

// Resolve applies, in order: explicit overrides, an existing known suffix,
// the position's primary exchange, then the short-alphabetic heuristic.
func (r *Resolver) Resolve(p model.Position) string {
	sym := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if sym == "" {
		return ""
	}
	if to, ok := r.Overrides[sym]; ok {
		return to
	}
	if hasKnownSuffix(sym) {
		return sym
	}
	if suffix, ok := ExchangeSuffixes[strings.ToUpper(p.Exchange)]; ok {
		return sym + suffix
	}
	if len(sym) <= 3 && isAlpha(sym) {
		return sym + DefaultSuffix
	}
	return sym
}

// ResolveSymbol resolves a bare symbol with no exchange information.
func (r *Resolver) ResolveSymbol(symbol string) string {
	return r.Resolve(model.Position{Symbol: symbol})
}

func hasKnownSuffix(sym string) bool {
	for _, s := range KnownSuffixes {
		if strings.HasSuffix(sym, s) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}
