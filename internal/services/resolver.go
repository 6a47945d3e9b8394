package services

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tcgscan/scanbot/internal/metrics"
	"github.com/tcgscan/scanbot/internal/models"
)

const resolverCacheSize = 256

// ResolverService turns OCR text into a ranked list of card candidates,
// querying one or both card databases depending on the game guess.
type ResolverService struct {
	pokemon  *PokemonTCGService
	scryfall *ScryfallService
	cache    *lru.Cache[string, []models.CardCandidate]
}

func NewResolverService(pokemon *PokemonTCGService, scryfall *ScryfallService) *ResolverService {
	cache, err := lru.New[string, []models.CardCandidate](resolverCacheSize)
	if err != nil {
		log.Printf("Failed to create candidate cache: %v", err)
	}
	return &ResolverService{
		pokemon:  pokemon,
		scryfall: scryfall,
		cache:    cache,
	}
}

var (
	// Keep letters, digits, apostrophes, hyphens and spaces; everything
	// else is OCR noise.
	queryNoiseRegex = regexp.MustCompile(`[^a-zA-Z0-9\s'’-]`)

	// Condition/variant tokens that never help a name search.
	stopwordRegex = regexp.MustCompile(`(?i)\b(near|mint|nm|lp|mp|hp|damaged|foil|reverse|holo|ex|gx|vmax|vstar)\b`)
)

const maxQueryWords = 10

// extractQuery reduces raw OCR text to a search phrase: strip noise
// characters, drop condition/variant stopwords, collapse whitespace and
// keep at most the first 10 words. Returns "" when nothing survives.
func extractQuery(text string) string {
	cleaned := queryNoiseRegex.ReplaceAllString(text, " ")
	cleaned = stopwordRegex.ReplaceAllString(cleaned, " ")
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return ""
	}
	if len(words) > maxQueryWords {
		words = words[:maxQueryWords]
	}
	return strings.Join(words, " ")
}

// Resolve returns at most 8 candidates for the given game and raw text.
// For an unknown game both providers are queried concurrently; a failed
// provider contributes zero candidates and never aborts the other.
// Resolve itself never fails: the worst case is an empty list.
func (s *ResolverService) Resolve(ctx context.Context, game models.Game, rawText string) []models.CardCandidate {
	metrics.ResolveRequestsTotal.WithLabelValues(string(game)).Inc()

	query := extractQuery(rawText)
	if query == "" {
		return []models.CardCandidate{}
	}

	cacheKey := string(game) + "|" + query
	if cached, ok := s.cache.Get(cacheKey); ok {
		metrics.ResolveCacheHits.Inc()
		return cached
	}

	var candidates []models.CardCandidate
	switch game {
	case models.GamePokemon:
		candidates = s.fromPokemon(ctx, query)
	case models.GameMTG:
		candidates = s.fromScryfall(ctx, query)
	default:
		var poke, mtg []models.CardCandidate
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			poke = s.fromPokemon(ctx, query)
		}()
		go func() {
			defer wg.Done()
			mtg = s.fromScryfall(ctx, query)
		}()
		wg.Wait()

		candidates = make([]models.CardCandidate, 0, len(poke)+len(mtg))
		candidates = append(candidates, poke...)
		candidates = append(candidates, mtg...)
		// Stable so source-call order breaks confidence ties.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Confidence > candidates[j].Confidence
		})
		if len(candidates) > resolverPageSize {
			candidates = candidates[:resolverPageSize]
		}
	}

	if candidates == nil {
		candidates = []models.CardCandidate{}
	}
	s.cache.Add(cacheKey, candidates)
	return candidates
}

func (s *ResolverService) fromPokemon(ctx context.Context, query string) []models.CardCandidate {
	candidates, err := s.pokemon.SearchCandidates(ctx, query)
	if err != nil {
		log.Printf("Resolver: pokemon tcg search failed: %v", err)
		metrics.ResolveProviderErrors.WithLabelValues("pokemon-tcg").Inc()
		return nil
	}
	return candidates
}

func (s *ResolverService) fromScryfall(ctx context.Context, query string) []models.CardCandidate {
	candidates, err := s.scryfall.SearchCandidates(ctx, query)
	if err != nil {
		log.Printf("Resolver: scryfall search failed: %v", err)
		metrics.ResolveProviderErrors.WithLabelValues("scryfall").Inc()
		return nil
	}
	return candidates
}
