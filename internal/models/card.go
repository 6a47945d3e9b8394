package models

type Game string

const (
	GamePokemon Game = "pokemon"
	GameMTG     Game = "mtg"
	GameUnknown Game = "unknown"
)

// IsValid reports whether g is one of the three supported game values.
func (g Game) IsValid() bool {
	return g == GamePokemon || g == GameMTG || g == GameUnknown
}

// CandidateSource identifies which resolver produced a candidate.
type CandidateSource string

const (
	SourcePokemonTCG CandidateSource = "pokemon-tcg"
	SourceScryfall   CandidateSource = "scryfall"
	SourceManual     CandidateSource = "manual"
)

// CardCandidate is one possible identity for a scanned card.
// Confidence is a placeholder ranking hint in [0,1], not a calibrated
// probability - resolvers currently assign a fixed constant.
type CardCandidate struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Set        string          `json:"set,omitempty"`
	Number     string          `json:"number,omitempty"`
	Image      string          `json:"image,omitempty"`
	Source     CandidateSource `json:"source"`
	Confidence float64         `json:"confidence"`
}
