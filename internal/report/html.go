package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/model"
)

// Title is the heading of the HTML document.
const Title = "Portfolio Analysis Report"

//go:embed template.html
var pageSource string

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"num":      formatValue,
	"pct":      formatPercent,
	"money":    formatMoney,
	"qty":      formatQuantity,
	"markdown": markdown,
	"list":     markdownList,
	"date":     formatDate,
}).Parse(pageSource))

type pageView struct {
	Title       string
	GeneratedAt string
	RunID       string
	Accounts    []accountView
}

type accountView struct {
	Label     string
	Positions []positionView
}

type positionView struct {
	Key       string
	Name      string
	Position  model.Position
	Resolved  string
	Summary   model.Summary
	Class     string
	Technical *model.TechnicalAnalysis
	Research  *model.Sentiment
}

func buildView(r *model.AnalysisReport) pageView {
	v := pageView{
		Title:       Title,
		GeneratedAt: r.GeneratedAt.Format(time.DateTime),
		RunID:       r.RunID,
	}
	for _, label := range sortedKeys(r.Accounts) {
		syms := r.Accounts[label]
		if len(syms) == 0 {
			continue
		}
		av := accountView{Label: label}
		for _, key := range sortedKeys(syms) {
			a := syms[key]
			tech := a.Technical
			if tech == nil {
				tech = &model.TechnicalAnalysis{Error: "technical analysis missing"}
			}
			research := a.Research
			if research == nil {
				research = &model.Sentiment{Error: "research analysis missing"}
			}
			av.Positions = append(av.Positions, positionView{
				Key:       key,
				Name:      a.Position.DisplayName(),
				Position:  a.Position,
				Resolved:  a.ResolvedSymbol,
				Summary:   a.Summary,
				Class:     recommendationClass(a.Summary.OverallRecommendation),
				Technical: tech,
				Research:  research,
			})
		}
		v.Accounts = append(v.Accounts, av)
	}
	return v
}

// RenderHTML writes the report as a single self-contained HTML document.
func RenderHTML(w io.Writer, r *model.AnalysisReport) error {
	if err := page.Execute(w, buildView(r)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteHTML renders the report to path. An empty report is not written and
// WriteHTML returns false.
func WriteHTML(path string, r *model.AnalysisReport) (bool, error) {
	if r.Empty() {
		log.Warn().Msg("no analysis results available, report not written")
		return false, nil
	}
	var buf bytes.Buffer
	if err := RenderHTML(&buf, r); err != nil {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create report dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", path).Msg("generated report")
	return true, nil
}
