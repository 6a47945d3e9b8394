package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/tcgscan/scanbot/internal/models"
)

const (
	pokemonTCGBaseURL = "https://api.pokemontcg.io/v2"
	pokemonTCGTimeout = 30 * time.Second
)

// resolverPageSize caps how many candidates a single provider returns.
const resolverPageSize = 8

// candidateConfidence is the fixed placeholder confidence assigned to every
// resolver hit. It ranks candidates but is not a calibrated probability.
const candidateConfidence = 0.6

type PokemonTCGService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
}

func NewPokemonTCGService(apiKey string) *PokemonTCGService {
	return &PokemonTCGService{
		client: &http.Client{
			Timeout: pokemonTCGTimeout,
		},
		apiKey:  apiKey,
		baseURL: pokemonTCGBaseURL,
		// Unauthenticated tier allows 30 req/min; stay under it.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 2),
	}
}

type pokemonSearchResponse struct {
	Data []pokemonCard `json:"data"`
}

type pokemonCard struct {
	TCGPlayer *pokemonTCGPlayer `json:"tcgplayer"`
	Set       pokemonSet        `json:"set"`
	Images    pokemonImages     `json:"images"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Number    string            `json:"number"`
}

type pokemonSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pokemonImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type pokemonTCGPlayer struct {
	Prices map[string]pokemonPriceVariant `json:"prices"`
	URL    string                         `json:"url"`
}

type pokemonPriceVariant struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Market float64 `json:"market"`
}

// luceneSpecials matches the characters the Pokemon TCG API's Lucene-like
// query syntax treats specially.
var luceneSpecials = regexp.MustCompile(`([+\-!(){}\[\]^"~*?:\\/])`)

func escapeLucene(s string) string {
	return luceneSpecials.ReplaceAllString(s, `\$1`)
}

// SearchCandidates searches cards by name and maps them to candidates.
func (s *PokemonTCGService) SearchCandidates(ctx context.Context, query string) ([]models.CardCandidate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("name:%s", escapeLucene(query)))
	params.Set("pageSize", fmt.Sprintf("%d", resolverPageSize))
	reqURL := fmt.Sprintf("%s/cards?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search pokemon tcg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pokemon tcg API returned status %d", resp.StatusCode)
	}

	var searchResp pokemonSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode pokemon tcg response: %w", err)
	}

	candidates := make([]models.CardCandidate, len(searchResp.Data))
	for i, pc := range searchResp.Data {
		image := pc.Images.Small
		if image == "" {
			image = pc.Images.Large
		}
		candidates[i] = models.CardCandidate{
			ID:         pc.ID,
			Name:       pc.Name,
			Set:        pc.Set.Name,
			Number:     pc.Number,
			Image:      image,
			Source:     models.SourcePokemonTCG,
			Confidence: candidateConfidence,
		}
	}
	return candidates, nil
}

// Pricing looks up a card by id and averages all TCGPlayer "market" fields
// across the price variants into a single quote. Returns nil, nil when the
// card or its price block is missing.
func (s *PokemonTCGService) Pricing(ctx context.Context, cardID string) (*models.MarketQuote, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/cards/%s", s.baseURL, url.PathEscape(cardID))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get card from pokemon tcg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pokemon tcg API returned status %d", resp.StatusCode)
	}

	var response struct {
		Data pokemonCard `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode pokemon tcg response: %w", err)
	}

	tp := response.Data.TCGPlayer
	if tp == nil || len(tp.Prices) == 0 {
		return nil, nil
	}

	var markets []float64
	for _, variant := range tp.Prices {
		if variant.Market > 0 {
			markets = append(markets, variant.Market)
		}
	}

	quote := models.MarketQuote{
		Provider: "pokemon-tcg/tcgplayer",
		Currency: "USD",
		URL:      tp.URL,
	}
	if len(markets) > 0 {
		avg := mean(markets)
		quote.Avg = &avg
	}
	return &quote, nil
}
