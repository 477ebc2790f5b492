package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const justTCGBaseURL = "https://api.justtcg.com/v1"

// justTCGSearchResponse mirrors the JustTCG card search payload.
type justTCGSearchResponse struct {
	Data []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Set      string `json:"set"`
		Variants []struct {
			Condition string  `json:"condition"`
			Printing  string  `json:"printing"`
			Price     float64 `json:"price"`
		} `json:"variants"`
	} `json:"data"`
}

// JustTCGProvider prices cards of any supported game via the JustTCG API.
type JustTCGProvider struct {
	client *resty.Client
}

// NewJustTCGProvider creates a JustTCG provider using the given API key.
func NewJustTCGProvider(apiKey string) *JustTCGProvider {
	return NewJustTCGProviderWithBaseURL(apiKey, justTCGBaseURL)
}

// NewJustTCGProviderWithBaseURL creates a JustTCG provider against a custom
// endpoint, used by tests.
func NewJustTCGProviderWithBaseURL(apiKey, baseURL string) *JustTCGProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-API-Key", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)
	return &JustTCGProvider{client: client}
}

// Name returns the provider's display name.
func (p *JustTCGProvider) Name() string { return "JustTCG" }

// Supports returns true for every game JustTCG indexes.
func (p *JustTCGProvider) Supports(game string) bool {
	switch game {
	case "pokemon", "magic", "yugioh", "other":
		return true
	default:
		return false
	}
}

// FetchPrice searches JustTCG for the card and returns the price of the
// variant matching the card's condition, falling back to the first variant.
func (p *JustTCGProvider) FetchPrice(ctx context.Context, q CardQuery) (*Quote, error) {
	var result justTCGSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("q", q.Name).
		SetQueryParam("game", q.Game).
		SetResult(&result).
		Get("/cards")
	if err != nil {
		return nil, &FetchError{Query: q, Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("justtcg returned status %d", resp.StatusCode())}
	}
	if len(result.Data) == 0 {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("no results for %q", q.Name)}
	}

	variants := result.Data[0].Variants
	if len(variants) == 0 {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("no priced variants for %q", q.Name)}
	}

	price := variants[0].Price
	for _, v := range variants {
		if normalizeCondition(v.Condition) == q.Condition {
			price = v.Price
			break
		}
	}

	return &Quote{
		Source:    p.Name(),
		Price:     price,
		Currency:  "USD",
		FetchedAt: time.Now(),
	}, nil
}

// normalizeCondition maps JustTCG condition labels onto the inventory's
// condition values.
func normalizeCondition(label string) string {
	switch label {
	case "Mint", "M":
		return "mint"
	case "Near Mint", "NM":
		return "near_mint"
	case "Lightly Played", "LP":
		return "lightly_played"
	case "Moderately Played", "MP":
		return "moderately_played"
	case "Heavily Played", "HP":
		return "heavily_played"
	case "Damaged", "DMG":
		return "damaged"
	default:
		return ""
	}
}
