package holdings

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"PortfolioSentinel/internal/model"
)

// DefaultWealthsimpleURL is the Wealthsimple Trade REST host.
const DefaultWealthsimpleURL = "https://trade-service.wealthsimple.com"

var (
	// ErrOTPRequired is returned when login needs a 2FA code and none could be obtained.
	ErrOTPRequired = errors.New("two-factor code required")
	// ErrUnauthorized is returned when the credentials are rejected.
	ErrUnauthorized = errors.New("login rejected")
)

// OTPFunc supplies a two-factor code.
type OTPFunc func(ctx context.Context) (string, error)

// PromptOTP asks for a code on w and reads it from r, re-asking until a
// non-empty line is entered.
func PromptOTP(r io.Reader, w io.Writer) OTPFunc {
	sc := bufio.NewScanner(r)
	return func(ctx context.Context) (string, error) {
		for {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			fmt.Fprint(w, "Enter 2FA code: ")
			if !sc.Scan() {
				return "", ErrOTPRequired
			}
			if code := strings.TrimSpace(sc.Text()); code != "" {
				return code, nil
			}
		}
	}
}

// Wealthsimple reads accounts and positions from Wealthsimple Trade.
type Wealthsimple struct {
	BaseURL  string
	Email    string
	Password string
	OTP      OTPFunc
	Client   *http.Client

	token string
}

func NewWealthsimple(email, password string, otp OTPFunc) *Wealthsimple {
	return &Wealthsimple{
		BaseURL:  DefaultWealthsimpleURL,
		Email:    email,
		Password: password,
		OTP:      otp,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (ws *Wealthsimple) Name() string { return "wealthsimple" }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

func otpRequired(resp *http.Response) bool {
	return strings.EqualFold(resp.Header.Get("X-Wealthsimple-Otp-Required"), "true") ||
		strings.HasPrefix(strings.ToLower(resp.Header.Get("X-Wealthsimple-Otp")), "required")
}

// Login authenticates and stores the access token.
func (ws *Wealthsimple) Login(ctx context.Context) error {
	resp, err := ws.postLogin(ctx, loginRequest{Email: ws.Email, Password: ws.Password})
	if err != nil {
		return err
	}
	if otpRequired(resp) {
		resp.Body.Close()
		if ws.OTP == nil {
			return ErrOTPRequired
		}
		code, err := ws.OTP(ctx)
		if err != nil {
			return fmt.Errorf("read 2FA code: %w", err)
		}
		resp, err = ws.postLogin(ctx, loginRequest{Email: ws.Email, Password: ws.Password, OTP: code})
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("login: status %d, body: %s", resp.StatusCode, body)
	}
	ws.token = resp.Header.Get("X-Access-Token")
	if ws.token == "" {
		return errors.New("login: no access token in response")
	}
	log.Info().Msg("authenticated with wealthsimple")
	return nil
}

func (ws *Wealthsimple) postLogin(ctx context.Context, body loginRequest) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ws.BaseURL+"/auth/login", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ws.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp, nil
}

func (ws *Wealthsimple) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ws.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", ws.token)
	resp, err := ws.Client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("get %s: status %d, body: %s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

type wsAccountList struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

type wsMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type wsPositions struct {
	Results []struct {
		Stock struct {
			Symbol          string `json:"symbol"`
			Name            string `json:"name"`
			PrimaryExchange string `json:"primary_exchange"`
		} `json:"stock"`
		Quantity    decimal.Decimal `json:"quantity"`
		Quote       wsMoney         `json:"quote"`
		MarketValue wsMoney         `json:"market_value"`
	} `json:"results"`
}

// Accounts logs in if needed and returns every account with its positions.
// An account whose positions cannot be read is logged and skipped.
func (ws *Wealthsimple) Accounts(ctx context.Context) ([]model.Account, error) {
	if ws.token == "" {
		if err := ws.Login(ctx); err != nil {
			return nil, err
		}
	}
	var list wsAccountList
	if err := ws.get(ctx, "/account/list", &list); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(list.Results)).Msg("found accounts")

	accounts := make([]model.Account, 0, len(list.Results))
	for _, a := range list.Results {
		typ := AccountTypeOf(a.ID)
		var pos wsPositions
		if err := ws.get(ctx, "/account/positions?account_id="+url.QueryEscape(a.ID), &pos); err != nil {
			log.Error().Err(err).Str("account", string(typ)).Msg("error getting positions")
			continue
		}
		acct := model.Account{ID: a.ID, Type: typ}
		for _, p := range pos.Results {
			acct.Positions = append(acct.Positions, model.Position{
				Symbol:      p.Stock.Symbol,
				Name:        p.Stock.Name,
				Exchange:    p.Stock.PrimaryExchange,
				Quantity:    p.Quantity,
				Quote:       model.Amount{Amount: p.Quote.Amount, Currency: p.Quote.Currency},
				MarketValue: model.Amount{Amount: p.MarketValue.Amount, Currency: p.MarketValue.Currency},
			})
			if p.Stock.Symbol != "" {
				log.Debug().Str("symbol", p.Stock.Symbol).Str("account", string(typ)).Msg("found position")
			}
		}
		log.Info().Int("positions", len(acct.Positions)).Str("account", string(typ)).Msg("processed account")
		accounts = append(accounts, acct)
	}
	return accounts, nil
}
