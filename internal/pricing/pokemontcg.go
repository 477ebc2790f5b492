package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const pokemonTCGBaseURL = "https://api.pokemontcg.io/v2"

// pokemonTCGSearchResponse mirrors the Pokémon TCG API card search payload.
type pokemonTCGSearchResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Number    string `json:"number"`
		TCGPlayer struct {
			Prices map[string]struct {
				Low    float64 `json:"low"`
				Mid    float64 `json:"mid"`
				High   float64 `json:"high"`
				Market float64 `json:"market"`
			} `json:"prices"`
		} `json:"tcgplayer"`
	} `json:"data"`
}

// PokemonTCGProvider prices Pokémon cards via the official Pokémon TCG API.
type PokemonTCGProvider struct {
	client *resty.Client
}

// NewPokemonTCGProvider creates a Pokémon TCG provider using the given API key.
func NewPokemonTCGProvider(apiKey string) *PokemonTCGProvider {
	return NewPokemonTCGProviderWithBaseURL(apiKey, pokemonTCGBaseURL)
}

// NewPokemonTCGProviderWithBaseURL creates a provider against a custom
// endpoint, used by tests.
func NewPokemonTCGProviderWithBaseURL(apiKey, baseURL string) *PokemonTCGProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Api-Key", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)
	return &PokemonTCGProvider{client: client}
}

// Name returns the provider's display name.
func (p *PokemonTCGProvider) Name() string { return "Pokemon TCG API" }

// Supports returns true for the pokemon game only.
func (p *PokemonTCGProvider) Supports(game string) bool {
	return game == "pokemon"
}

// FetchPrice searches the Pokémon TCG API and returns the first TCGplayer
// market price found on the best-matching card.
func (p *PokemonTCGProvider) FetchPrice(ctx context.Context, q CardQuery) (*Quote, error) {
	query := fmt.Sprintf("name:%q", q.Name)
	if q.CardNumber != "" {
		query = fmt.Sprintf("%s number:%s", query, q.CardNumber)
	}

	var result pokemonTCGSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("pageSize", "1").
		SetResult(&result).
		Get("/cards")
	if err != nil {
		return nil, &FetchError{Query: q, Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("pokemontcg returned status %d", resp.StatusCode())}
	}
	if len(result.Data) == 0 {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("no results for %q", q.Name)}
	}

	// TCGplayer prices are keyed by printing (normal, holofoil, ...).
	// Any market price beats no price; holofoil beats normal when both exist.
	var price float64
	for _, printing := range []string{"holofoil", "reverseHolofoil", "normal", "1stEditionHolofoil"} {
		if entry, ok := result.Data[0].TCGPlayer.Prices[printing]; ok && entry.Market > 0 {
			price = entry.Market
			break
		}
	}
	if price == 0 {
		for _, entry := range result.Data[0].TCGPlayer.Prices {
			if entry.Market > 0 {
				price = entry.Market
				break
			}
		}
	}
	if price == 0 {
		return nil, &FetchError{Query: q, Err: fmt.Errorf("no market price for %q", q.Name)}
	}

	return &Quote{
		Source:    p.Name(),
		Price:     price,
		Currency:  "USD",
		FetchedAt: time.Now(),
	}, nil
}
