package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"PortfolioSentinel/internal/model"
)

// MaxHeadlines is the number of headlines sent to the model and echoed back.
const MaxHeadlines = 5

// ErrNotConfigured is returned by the disabled analyzer.
var ErrNotConfigured = errors.New("API key not configured")

// Analyzer summarises recent headlines for a symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, headlines []model.Headline) (*model.Sentiment, error)
	Name() string
}

// Backend sends one system and user prompt to a language model and returns
// the raw JSON text of its reply.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

const systemPrompt = "You are a financial analyst providing concise stock analysis."

// BuildPrompt renders the user prompt for up to MaxHeadlines headlines.
func BuildPrompt(symbol string, headlines []model.Headline) string {
	news := "No recent news found."
	if len(headlines) > 0 {
		var sb strings.Builder
		for i, h := range headlines {
			if i == MaxHeadlines {
				break
			}
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + h.Headline)
		}
		news = sb.String()
	}
	return fmt.Sprintf(`Please analyze the stock %s based on the following recent news:

%s

Provide a concise analysis covering:
1. Overall sentiment (bullish/bearish/neutral)
2. Key drivers or catalysts
3. Potential risks
4. Future outlook

Format your response as JSON with the fields "sentiment", "key_drivers", "risks" and "future_outlook".`, symbol, news)
}

// LLMAnalyzer implements Analyzer on top of a Backend.
type LLMAnalyzer struct {
	Backend Backend
}

func NewLLMAnalyzer(b Backend) *LLMAnalyzer { return &LLMAnalyzer{Backend: b} }

func (a *LLMAnalyzer) Name() string { return a.Backend.Name() }

func (a *LLMAnalyzer) Analyze(ctx context.Context, symbol string, headlines []model.Headline) (*model.Sentiment, error) {
	if len(headlines) > MaxHeadlines {
		headlines = headlines[:MaxHeadlines]
	}
	text, err := a.Backend.Complete(ctx, systemPrompt, BuildPrompt(symbol, headlines))
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", a.Backend.Name(), err)
	}
	s, err := Parse(text)
	if err != nil {
		return nil, err
	}
	s.RecentNews = append([]model.Headline{}, headlines...)
	return s, nil
}

// Parse decodes a model reply. Code fences around the JSON are tolerated.
func Parse(text string) (*model.Sentiment, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var s model.Sentiment
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &s); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	s.Error = ""
	if s.Sentiment == "" && len(s.KeyDrivers) == 0 && s.FutureOutlook == "" {
		return nil, errors.New("decode analysis: empty response")
	}
	return &s, nil
}

// Disabled is used when no API key is configured. It never calls out.
type Disabled struct {
	Provider string
}

func (d Disabled) Name() string { return "disabled" }

func (d Disabled) Analyze(context.Context, string, []model.Headline) (*model.Sentiment, error) {
	p := d.Provider
	if p == "" {
		p = "language model"
	}
	return nil, fmt.Errorf("%s %w", p, ErrNotConfigured)
}

// Enabled reports whether a makes network calls.
func Enabled(a Analyzer) bool {
	_, disabled := a.(Disabled)
	return a != nil && !disabled
}
