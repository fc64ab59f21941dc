package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"

	"PortfolioSentinel/internal/model"
)

// NA is shown for any value that could not be computed.
const NA = "N/A"

// DefaultCurrency applies when a holding carries no currency code.
const DefaultCurrency = "CAD"

func formatValue(v model.Value, digits int) string {
	f, ok := v.Get()
	if !ok {
		return NA
	}
	return fmt.Sprintf("%.*f", digits, f)
}

func formatPercent(v model.Value) string {
	f, ok := v.Get()
	if !ok {
		return NA
	}
	return fmt.Sprintf("%+.2f%%", f)
}

// formatMoney renders an amount in its currency, e.g. "$1,234.50".
func formatMoney(a model.Amount) string {
	if a.Amount.IsZero() && a.Currency == "" {
		return NA
	}
	code := strings.ToUpper(a.Currency)
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return a.Amount.StringFixed(2) + " " + code
	}
	minor := a.Amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return NA
	}
	return t.Format(time.DateOnly)
}

func formatQuantity(q decimal.Decimal) string {
	return q.String()
}

var md = goldmark.New()

// markdown converts model-written text to HTML. Raw HTML in the input is
// dropped by goldmark's default renderer.
func markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		log.Warn().Err(err).Msg("markdown conversion failed")
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

// markdownList renders items as a bullet list.
func markdownList(items []string) template.HTML {
	var b strings.Builder
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(strings.ReplaceAll(it, "\n", " "))
		b.WriteString("\n")
	}
	return markdown(b.String())
}

func recommendationClass(r model.Recommendation) string {
	switch r {
	case model.RecommendBuy:
		return "buy"
	case model.RecommendSell:
		return "sell"
	default:
		return "hold"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
