package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"PortfolioSentinel/internal/model"
)

// Terminal styles accepted by PrintSummary.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Markdown formats the report as one summary table per account.
func Markdown(r *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s | %s\n\n", Title, r.GeneratedAt.Format("2006-01-02 15:04")))
	if r.Empty() {
		b.WriteString("No positions analysed.\n")
		return b.String()
	}

	for _, label := range sortedKeys(r.Accounts) {
		syms := r.Accounts[label]
		if len(syms) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("## %s (%d)\n\n", label, len(syms)))
		b.WriteString("| Symbol | Price | Trend | RSI | MACD | Score | Recommendation |\n")
		b.WriteString("|---|---:|---|---:|---|---:|---|\n")
		for _, key := range sortedKeys(syms) {
			b.WriteString(summaryRow(key, syms[key]))
		}
		b.WriteString("\n")
	}

	var failed []string
	for _, label := range sortedKeys(r.Accounts) {
		for _, key := range sortedKeys(r.Accounts[label]) {
			if a := r.Accounts[label][key]; a.Technical.Failed() {
				reason := "missing"
				if a.Technical != nil {
					reason = a.Technical.Error
				}
				failed = append(failed, fmt.Sprintf("- %s/%s: %s", label, key, reason))
			}
		}
	}
	if len(failed) > 0 {
		b.WriteString("**Errors:**\n\n")
		b.WriteString(strings.Join(failed, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func summaryRow(key string, a *model.SymbolAnalysis) string {
	price, trend, rsi, macd := NA, NA, NA, NA
	if ta := a.Technical; !ta.Failed() {
		if ta.SMA != nil {
			price = formatValue(ta.SMA.Price, 2)
			trend = string(ta.SMA.Trend)
		} else if ta.Performance != nil {
			price = formatValue(ta.Performance.CurrentPrice, 2)
		}
		if ta.RSI != nil {
			rsi = fmt.Sprintf("%s (%s)", formatValue(ta.RSI.Value, 1), ta.RSI.Signal)
		}
		if ta.MACD != nil {
			macd = string(ta.MACD.Signal)
		}
	}
	return fmt.Sprintf("| %s | %s | %s | %s | %s | %+.2f | **%s** |\n",
		escapeCell(key), price, trend, rsi, macd, a.Summary.Score, a.Summary.OverallRecommendation)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// PrintSummary renders the Markdown summary for a terminal.
func PrintSummary(w io.Writer, r *model.AnalysisReport, style string) error {
	if style == "" {
		style = StyleDark
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := tr.Render(Markdown(r))
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
