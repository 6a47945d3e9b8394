package models

// KPIs are summary statistics derived from a quote list. Nil means the
// underlying data was missing; they are recomputed per request and never
// persisted.
type KPIs struct {
	AvgPrice  *float64 `json:"avgPrice,omitempty"`
	LowPrice  *float64 `json:"lowPrice,omitempty"`
	HighPrice *float64 `json:"highPrice,omitempty"`
	Liquidity *float64 `json:"liquidity,omitempty"` // 0..100, volume proxy
	Rarity    *float64 `json:"rarity,omitempty"`    // 0..100, inverse of liquidity
	Growth    *float64 `json:"growth,omitempty"`    // -100..+100, % over history
}

// BidCondition is the user's assessment of the physical card.
type BidCondition string

const (
	ConditionGood    BidCondition = "good"
	ConditionDirty   BidCondition = "dirty"
	ConditionUnknown BidCondition = "unknown"
)

// AutoBetRules is the user-supplied bidding configuration.
type AutoBetRules struct {
	TargetDiscount float64      `json:"targetDiscount" binding:"gte=0,lte=0.9"`
	MaxBudget      *float64     `json:"maxBudget,omitempty" binding:"omitempty,gt=0"`
	Condition      BidCondition `json:"condition" binding:"required,oneof=good dirty unknown"`
}

type Verdict string

const (
	VerdictBuy   Verdict = "buy"
	VerdictWatch Verdict = "watch"
	VerdictSkip  Verdict = "skip"
)

// Recommendation is the engine's output. Notes are human-readable and
// ordered; MaxBid is absent when no market average was available.
type Recommendation struct {
	Verdict        Verdict  `json:"verdict"`
	MaxBid         *float64 `json:"maxBid,omitempty"`
	TargetDiscount *float64 `json:"targetDiscount,omitempty"`
	Notes          []string `json:"notes"`
}
