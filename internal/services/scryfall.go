package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/tcgscan/scanbot/internal/models"
)

const (
	scryfallBaseURL = "https://api.scryfall.com"
	scryfallTimeout = 10 * time.Second
)

type ScryfallService struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

func NewScryfallService() *ScryfallService {
	return &ScryfallService{
		client: &http.Client{
			Timeout: scryfallTimeout,
		},
		baseURL: scryfallBaseURL,
		// Scryfall asks for 50-100ms between requests.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

type scryfallSearchResponse struct {
	Data []scryfallCard `json:"data"`
}

type scryfallCard struct {
	ImageURIs   *scryfallImages `json:"image_uris"`
	CardFaces   []scryfallFace  `json:"card_faces"`
	Prices      scryfallPrices  `json:"prices"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SetName     string          `json:"set_name"`
	CollectorNo string          `json:"collector_number"`
	EDHRecRank  int             `json:"edhrec_rank"`
	ScryfallURI string          `json:"scryfall_uri"`
}

type scryfallImages struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type scryfallFace struct {
	ImageURIs *scryfallImages `json:"image_uris"`
}

type scryfallPrices struct {
	USD     string `json:"usd"`
	USDFoil string `json:"usd_foil"`
}

// SearchCandidates searches cards by relevance and maps the first page to
// candidates. A 404 (no matches) is an empty result, not an error.
func (s *ScryfallService) SearchCandidates(ctx context.Context, query string) ([]models.CardCandidate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("unique", "cards")
	params.Set("order", "relevance")
	reqURL := fmt.Sprintf("%s/cards/search?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []models.CardCandidate{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	var searchResp scryfallSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode scryfall response: %w", err)
	}

	cards := searchResp.Data
	if len(cards) > resolverPageSize {
		cards = cards[:resolverPageSize]
	}

	candidates := make([]models.CardCandidate, len(cards))
	for i, sc := range cards {
		candidates[i] = models.CardCandidate{
			ID:         sc.ID,
			Name:       sc.Name,
			Set:        sc.SetName,
			Number:     sc.CollectorNo,
			Image:      smallImage(sc),
			Source:     models.SourceScryfall,
			Confidence: candidateConfidence,
		}
	}
	return candidates, nil
}

func smallImage(sc scryfallCard) string {
	if sc.ImageURIs != nil {
		return sc.ImageURIs.Small
	}
	if len(sc.CardFaces) > 0 && sc.CardFaces[0].ImageURIs != nil {
		return sc.CardFaces[0].ImageURIs.Small
	}
	return ""
}

// Pricing looks up a card by id and averages whichever of the non-foil and
// foil USD prices are present. Volume is populated from the EDHREC
// popularity rank as a rough proxy, NOT a real trade volume.
// Returns nil, nil when the card is missing.
func (s *ScryfallService) Pricing(ctx context.Context, cardID string) (*models.MarketQuote, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/cards/%s", s.baseURL, url.PathEscape(cardID))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get card from scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	var sc scryfallCard
	if err := json.NewDecoder(resp.Body).Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to decode scryfall response: %w", err)
	}

	var values []float64
	if v, ok := parsePrice(sc.Prices.USD); ok {
		values = append(values, v)
	}
	if v, ok := parsePrice(sc.Prices.USDFoil); ok {
		values = append(values, v)
	}

	quote := models.MarketQuote{
		Provider: "scryfall",
		Currency: "USD",
		URL:      sc.ScryfallURI,
	}
	if len(values) > 0 {
		avg := mean(values)
		quote.Avg = &avg
	}
	if sc.EDHRecRank > 0 {
		rank := sc.EDHRecRank
		if rank > 1000 {
			rank = 1000
		}
		volume := 1000 - rank
		quote.Volume = &volume
	}
	return &quote, nil
}

func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
