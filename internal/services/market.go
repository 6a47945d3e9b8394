package services

import (
	"context"
	"hash/fnv"
	"log"
	"math"
	"time"

	"github.com/tcgscan/scanbot/internal/metrics"
	"github.com/tcgscan/scanbot/internal/models"
)

// stubProviders are marketplaces without live integrations; their quotes
// are deterministic stand-ins derived from the card name.
var stubProviders = []string{"ebay", "cardmarket", "whatnot"}

// MarketService aggregates quotes from official pricing APIs and the stub
// providers into a uniform list.
type MarketService struct {
	pokemon  *PokemonTCGService
	scryfall *ScryfallService
}

func NewMarketService(pokemon *PokemonTCGService, scryfall *ScryfallService) *MarketService {
	return &MarketService{
		pokemon:  pokemon,
		scryfall: scryfall,
	}
}

// GetQuotes returns one quote per attempted provider in source-call order.
// Official lookups that fail are dropped silently; the stub providers never
// fail, so the result is never empty.
func (s *MarketService) GetQuotes(ctx context.Context, game models.Game, cardID, cardName string) []models.MarketQuote {
	var quotes []models.MarketQuote

	switch game {
	case models.GamePokemon:
		if q := s.officialQuote("pokemon-tcg", func() (*models.MarketQuote, error) {
			return s.pokemon.Pricing(ctx, cardID)
		}); q != nil {
			quotes = append(quotes, *q)
		}
	case models.GameMTG:
		if q := s.officialQuote("scryfall", func() (*models.MarketQuote, error) {
			return s.scryfall.Pricing(ctx, cardID)
		}); q != nil {
			quotes = append(quotes, *q)
		}
	}

	for _, provider := range stubProviders {
		quotes = append(quotes, stubQuote(provider, cardName))
		metrics.StubQuotesTotal.Inc()
	}

	return quotes
}

func (s *MarketService) officialQuote(provider string, lookup func() (*models.MarketQuote, error)) *models.MarketQuote {
	start := time.Now()
	quote, err := lookup()
	metrics.ProviderLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("Market: %s pricing lookup failed: %v", provider, err)
		metrics.QuoteLookupsTotal.WithLabelValues(provider, "error").Inc()
		return nil
	}
	if quote == nil {
		metrics.QuoteLookupsTotal.WithLabelValues(provider, "miss").Inc()
		return nil
	}
	metrics.QuoteLookupsTotal.WithLabelValues(provider, "hit").Inc()
	return quote
}

// stubQuote derives a stable pseudo-random quote from the card name and
// provider name via a 32-bit FNV-1a hash. Same inputs always produce the
// same prices, which keeps demos reproducible without live integrations.
func stubQuote(provider, cardName string) models.MarketQuote {
	h := fnv.New32a()
	h.Write([]byte(cardName + provider))
	seed := h.Sum32()

	base := float64(seed%2000) / 100 // 0..20
	avg := math.Max(0.5, base)
	low := math.Max(0.25, avg*0.8)
	high := avg * 1.25

	avg = round2(avg)
	low = round2(low)
	high = round2(high)
	volume := int(seed%120) + 1

	return models.MarketQuote{
		Provider: provider,
		Currency: "USD",
		Avg:      &avg,
		Low:      &low,
		High:     &high,
		Volume:   &volume,
	}
}

func round2(n float64) float64 {
	return math.Round(n*100) / 100
}
