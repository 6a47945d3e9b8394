package models

// ResolveRequest is the body for POST /api/resolve.
type ResolveRequest struct {
	Game Game   `json:"game" binding:"required,oneof=pokemon mtg unknown"`
	Text string `json:"text" binding:"required,min=1"`
}

// ResolveResponse wraps the candidate list.
type ResolveResponse struct {
	Candidates []CardCandidate `json:"candidates"`
}

// AnalyzeCard is the caller-selected candidate driving an analysis.
// Only id, name and source are required; the rest mirror CardCandidate.
type AnalyzeCard struct {
	ID         string          `json:"id" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Source     CandidateSource `json:"source" binding:"required"`
	Set        string          `json:"set,omitempty"`
	Number     string          `json:"number,omitempty"`
	Image      string          `json:"image,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
}

// AnalyzeRequest is the body for POST /api/analyze.
type AnalyzeRequest struct {
	Game  Game         `json:"game" binding:"required,oneof=pokemon mtg unknown"`
	Card  AnalyzeCard  `json:"card" binding:"required"`
	Rules AutoBetRules `json:"rules" binding:"required"`
}

// AnalyzeResponse is the full pipeline output for one analysis.
type AnalyzeResponse struct {
	ScanID         string         `json:"scanId"`
	Quotes         []MarketQuote  `json:"quotes"`
	KPI            KPIs           `json:"kpi"`
	Recommendation Recommendation `json:"recommendation"`
}
