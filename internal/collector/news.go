package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"PortfolioSentinel/internal/model"
)

// YahooNews implements NewsFetcher using the Yahoo Finance search endpoint.
type YahooNews struct {
	Client     *http.Client
	BaseURL    string
	MaxRetries int
	Backoff    time.Duration
}

func NewYahooNews(proxyURL string) *YahooNews {
	return &YahooNews{
		Client:     newHTTPClient(proxyURL, 30*time.Second),
		BaseURL:    DefaultYahooURL,
		MaxRetries: 2,
		Backoff:    time.Second,
	}
}

type yahooSearch struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// FetchNews returns up to max headlines for symbol. No headlines is not an error.
func (n *YahooNews) FetchNews(ctx context.Context, symbol string, max int) ([]model.Headline, error) {
	if max <= 0 {
		max = 10
	}
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("quotesCount", "0")
	q.Set("newsCount", fmt.Sprint(max))
	u := n.BaseURL + "/v1/finance/search?" + q.Encode()

	body, err := getWithRetry(ctx, n.Client, u, n.MaxRetries, n.Backoff)
	if err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", symbol, err)
	}
	var res yahooSearch
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("yahoo news decode: %w", err)
	}

	out := make([]model.Headline, 0, min(len(res.News), max))
	for _, item := range res.News {
		if len(out) == max {
			break
		}
		h := model.Headline{
			Headline: item.Title,
			Source:   item.Publisher,
			URL:      item.Link,
		}
		if h.Headline == "" {
			h.Headline = "No title"
		}
		if h.Source == "" {
			h.Source = "Unknown source"
		}
		if item.ProviderPublishTime > 0 {
			h.Published = time.Unix(item.ProviderPublishTime, 0).UTC()
		}
		out = append(out, h)
	}
	return out, nil
}
