package services

import (
	"regexp"
	"strings"

	"github.com/tcgscan/scanbot/internal/models"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Curly quotes show up in OCR output depending on the source font.
	quoteReplacer = strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
	)
)

// NormalizeOCR cleans raw recognized text: collapses whitespace runs to
// single spaces, maps curly quotes to straight quotes and trims the ends.
// Idempotent; always returns a value.
func NormalizeOCR(text string) string {
	t := whitespaceRegex.ReplaceAllString(text, " ")
	t = quoteReplacer.Replace(t)
	return strings.TrimSpace(t)
}

var (
	pokemonKeywords = []string{"pokemon", "pokémon", "hp", "trainer"}
	mtgKeywords     = []string{"creature", "instant", "sorcery", "planeswalker"}
)

// GuessGame guesses the card game family from keyword heuristics.
// Pokemon keywords are checked first, so ties resolve to pokemon.
// Unknown is the safe default when nothing matches.
func GuessGame(text string) models.Game {
	t := strings.ToLower(text)
	for _, kw := range pokemonKeywords {
		if strings.Contains(t, kw) {
			return models.GamePokemon
		}
	}
	for _, kw := range mtgKeywords {
		if strings.Contains(t, kw) {
			return models.GameMTG
		}
	}
	return models.GameUnknown
}
