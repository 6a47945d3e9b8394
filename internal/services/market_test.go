package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tcgscan/scanbot/internal/models"
)

func TestStubQuoteDeterministic(t *testing.T) {
	first := stubQuote("ebay", "Charizard")
	second := stubQuote("ebay", "Charizard")

	if *first.Avg != *second.Avg || *first.Low != *second.Low || *first.High != *second.High || *first.Volume != *second.Volume {
		t.Error("stub quote should be deterministic for a fixed (provider, name) pair")
	}
}

func TestStubQuoteKnownValues(t *testing.T) {
	tests := []struct {
		provider string
		cardName string
		avg      float64
		low      float64
		high     float64
		volume   int
	}{
		{"ebay", "Charizard", 13.94, 11.15, 17.43, 75},
		{"cardmarket", "Charizard", 0.50, 0.40, 0.63, 30},
		{"whatnot", "Charizard", 8.42, 6.74, 10.53, 3},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			q := stubQuote(tt.provider, tt.cardName)
			if q.Provider != tt.provider {
				t.Errorf("provider = %s, want %s", q.Provider, tt.provider)
			}
			if q.Currency != "USD" {
				t.Errorf("currency = %s, want USD", q.Currency)
			}
			if *q.Avg != tt.avg {
				t.Errorf("avg = %v, want %v", *q.Avg, tt.avg)
			}
			if *q.Low != tt.low {
				t.Errorf("low = %v, want %v", *q.Low, tt.low)
			}
			if *q.High != tt.high {
				t.Errorf("high = %v, want %v", *q.High, tt.high)
			}
			if *q.Volume != tt.volume {
				t.Errorf("volume = %v, want %v", *q.Volume, tt.volume)
			}
		})
	}
}

func TestStubQuoteFloors(t *testing.T) {
	// Any name/provider pair hashing to a tiny base must respect the
	// 0.50 avg floor and 0.25 low floor.
	q := stubQuote("cardmarket", "Charizard")
	if *q.Avg < 0.5 {
		t.Errorf("avg %v below floor 0.5", *q.Avg)
	}
	if *q.Low < 0.25 {
		t.Errorf("low %v below floor 0.25", *q.Low)
	}
}

func TestGetQuotesUnknownGameStubsOnly(t *testing.T) {
	// No official provider applies to an unknown game, so the client
	// services are never touched.
	market := NewMarketService(NewPokemonTCGService(""), NewScryfallService())

	quotes := market.GetQuotes(context.Background(), models.GameUnknown, "", "Pikachu V")

	if len(quotes) != 3 {
		t.Fatalf("expected 3 stub quotes, got %d", len(quotes))
	}
	expected := []string{"ebay", "cardmarket", "whatnot"}
	for i, provider := range expected {
		if quotes[i].Provider != provider {
			t.Errorf("quote %d: provider = %s, want %s", i, quotes[i].Provider, provider)
		}
	}
}

func TestGetQuotesPokemonAveragesMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"base1-4","name":"Charizard","tcgplayer":{"url":"https://prices.example/base1-4","prices":{"normal":{"market":10},"holofoil":{"market":20}}}}}`)
	}))
	defer srv.Close()

	pokemon := NewPokemonTCGService("")
	pokemon.baseURL = srv.URL
	market := NewMarketService(pokemon, NewScryfallService())

	quotes := market.GetQuotes(context.Background(), models.GamePokemon, "base1-4", "Charizard")

	if len(quotes) != 4 {
		t.Fatalf("expected official quote plus 3 stubs, got %d", len(quotes))
	}
	official := quotes[0]
	if official.Provider != "pokemon-tcg/tcgplayer" {
		t.Errorf("provider = %s, want pokemon-tcg/tcgplayer", official.Provider)
	}
	if official.Avg == nil || *official.Avg != 15 {
		t.Errorf("avg = %v, want 15", official.Avg)
	}
	if official.Low != nil || official.High != nil {
		t.Error("pokemon official quote should carry no low/high")
	}
	if official.URL != "https://prices.example/base1-4" {
		t.Errorf("url = %s, want the tcgplayer url", official.URL)
	}
}

func TestGetQuotesScryfallVolumeProxy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"mtg-1","name":"Shivan Dragon","prices":{"usd":"1.50","usd_foil":"3.50"},"edhrec_rank":400,"scryfall_uri":"https://scryfall.example/mtg-1"}`)
	}))
	defer srv.Close()

	scryfall := NewScryfallService()
	scryfall.baseURL = srv.URL
	market := NewMarketService(NewPokemonTCGService(""), scryfall)

	quotes := market.GetQuotes(context.Background(), models.GameMTG, "mtg-1", "Shivan Dragon")

	if len(quotes) != 4 {
		t.Fatalf("expected official quote plus 3 stubs, got %d", len(quotes))
	}
	official := quotes[0]
	if official.Avg == nil || *official.Avg != 2.5 {
		t.Errorf("avg = %v, want 2.5 (mean of usd and usd_foil)", official.Avg)
	}
	if official.Volume == nil || *official.Volume != 600 {
		t.Errorf("volume = %v, want 600 (1000 - rank)", official.Volume)
	}
}

func TestGetQuotesScryfallRankBeyondFloor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"mtg-2","name":"Mudhole","prices":{"usd":"0.10"},"edhrec_rank":5000}`)
	}))
	defer srv.Close()

	scryfall := NewScryfallService()
	scryfall.baseURL = srv.URL

	quote, err := scryfall.Pricing(context.Background(), "mtg-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Volume == nil || *quote.Volume != 0 {
		t.Errorf("volume = %v, want defined 0 for a rank past 1000", quote.Volume)
	}
}

func TestGetQuotesProviderFailureIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	pokemon := NewPokemonTCGService("")
	pokemon.baseURL = srv.URL
	market := NewMarketService(pokemon, NewScryfallService())

	quotes := market.GetQuotes(context.Background(), models.GamePokemon, "base1-4", "Charizard")

	if len(quotes) != 3 {
		t.Fatalf("expected stubs only when the official lookup fails, got %d", len(quotes))
	}
}

func TestPokemonPricingMissingPriceBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"base1-4","name":"Charizard"}}`)
	}))
	defer srv.Close()

	pokemon := NewPokemonTCGService("")
	pokemon.baseURL = srv.URL

	quote, err := pokemon.Pricing(context.Background(), "base1-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote != nil {
		t.Error("expected nil quote when the tcgplayer block is missing")
	}
}
