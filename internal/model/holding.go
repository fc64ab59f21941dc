package model

import "github.com/shopspring/decimal"

// AccountType is the registered-plan category of a brokerage account.
type AccountType string

const (
	AccountCrypto        AccountType = "CRYPTO"
	AccountFHSA          AccountType = "FHSA"
	AccountTFSA          AccountType = "TFSA"
	AccountNonRegistered AccountType = "NON-REGISTERED"
	AccountRRSP          AccountType = "RRSP"
	AccountUnknown       AccountType = "UNKNOWN"
)

// Amount is a decimal amount in a currency.
type Amount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Position is a single holding inside an account.
type Position struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name,omitempty"`
	Exchange    string          `json:"primary_exchange,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Quote       Amount          `json:"quote"`
	MarketValue Amount          `json:"market_value"`
}

// DisplayName returns the security name, falling back to the symbol.
func (p Position) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Symbol
}

// Account is a brokerage account with its positions.
type Account struct {
	ID        string      `json:"id"`
	Type      AccountType `json:"type"`
	Positions []Position  `json:"positions"`
}
