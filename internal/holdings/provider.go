package holdings

import (
	"context"
	"strings"

	"PortfolioSentinel/internal/model"
)

// Provider returns the current accounts and their positions.
type Provider interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Name() string
}

// accountTypes is checked in order; the first substring found in the
// lower-cased account id wins.
var accountTypes = []struct {
	match string
	typ   model.AccountType
}{
	{"crypto", model.AccountCrypto},
	{"fhsa", model.AccountFHSA},
	{"tfsa", model.AccountTFSA},
	{"non-registered", model.AccountNonRegistered},
	{"rrsp", model.AccountRRSP},
}

// AccountTypeOf derives the account type from its identifier.
func AccountTypeOf(id string) model.AccountType {
	lower := strings.ToLower(id)
	for _, t := range accountTypes {
		if strings.Contains(lower, t.match) {
			return t.typ
		}
	}
	return model.AccountUnknown
}
