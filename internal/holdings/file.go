package holdings

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"PortfolioSentinel/internal/model"
)

// FileProvider reads holdings from a YAML file:
//
//	accounts:
//	  - id: tfsa-abc123
//	    positions:
//	      - symbol: RY
//	        quantity: "10"
//	        price: "120.50"
//	        currency: CAD
type FileProvider struct {
	Path string
}

type fileHoldings struct {
	Accounts []struct {
		ID        string `yaml:"id"`
		Type      string `yaml:"type"`
		Positions []struct {
			Symbol      string `yaml:"symbol"`
			Name        string `yaml:"name"`
			Exchange    string `yaml:"exchange"`
			Quantity    string `yaml:"quantity"`
			Price       string `yaml:"price"`
			MarketValue string `yaml:"market_value"`
			Currency    string `yaml:"currency"`
		} `yaml:"positions"`
	} `yaml:"accounts"`
}

func (p *FileProvider) Name() string { return "file" }

func (p *FileProvider) Accounts(_ context.Context) ([]model.Account, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read holdings file: %w", err)
	}
	var fh fileHoldings
	if err := yaml.Unmarshal(data, &fh); err != nil {
		return nil, fmt.Errorf("parse holdings file: %w", err)
	}

	accounts := make([]model.Account, 0, len(fh.Accounts))
	for _, a := range fh.Accounts {
		acct := model.Account{ID: a.ID, Type: AccountTypeOf(a.ID)}
		if a.Type != "" {
			acct.Type = AccountTypeOf(a.Type)
		}
		for _, ps := range a.Positions {
			qty, err := parseDecimal(ps.Quantity)
			if err != nil {
				return nil, fmt.Errorf("account %s, %s quantity: %w", a.ID, ps.Symbol, err)
			}
			price, err := parseDecimal(ps.Price)
			if err != nil {
				return nil, fmt.Errorf("account %s, %s price: %w", a.ID, ps.Symbol, err)
			}
			value := qty.Mul(price)
			if ps.MarketValue != "" {
				if value, err = parseDecimal(ps.MarketValue); err != nil {
					return nil, fmt.Errorf("account %s, %s market value: %w", a.ID, ps.Symbol, err)
				}
			}
			cur := ps.Currency
			if cur == "" {
				cur = "CAD"
			}
			acct.Positions = append(acct.Positions, model.Position{
				Symbol:      ps.Symbol,
				Name:        ps.Name,
				Exchange:    ps.Exchange,
				Quantity:    qty,
				Quote:       model.Amount{Amount: price, Currency: cur},
				MarketValue: model.Amount{Amount: value, Currency: cur},
			})
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
