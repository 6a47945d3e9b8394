package services

import (
	"fmt"

	"github.com/tcgscan/scanbot/internal/models"
)

// Risk penalties by card condition.
const (
	dirtyPenalty   = 0.85
	unknownPenalty = 0.92
)

// Verdict thresholds relative to the market average, checked in order.
const (
	buyThreshold   = 0.70
	watchThreshold = 0.55
)

// Recommend applies the discount target and risk rules to the KPIs and
// produces a verdict with a maximum bid. A missing market average is the
// only early exit: it yields a watch verdict with no bid.
func Recommend(kpi models.KPIs, rules models.AutoBetRules) models.Recommendation {
	notes := []string{}

	if kpi.AvgPrice == nil || *kpi.AvgPrice <= 0 {
		return models.Recommendation{
			Verdict: models.VerdictWatch,
			Notes:   []string{"No reliable market average yet. Try manual selection or add providers."},
		}
	}
	avg := *kpi.AvgPrice

	discount := rules.TargetDiscount
	target := avg * (1 - discount)

	riskPenalty := 1.0
	switch rules.Condition {
	case models.ConditionDirty:
		notes = append(notes, "Condition marked DIRTY: applying risk penalty.")
		riskPenalty = dirtyPenalty
	case models.ConditionUnknown:
		notes = append(notes, "Condition unknown: applying small risk penalty.")
		riskPenalty = unknownPenalty
	}

	maxBid := target * riskPenalty

	if rules.MaxBudget != nil {
		if *rules.MaxBudget < maxBid {
			maxBid = *rules.MaxBudget
		}
		notes = append(notes, fmt.Sprintf("Budget cap applied: %.2f", *rules.MaxBudget))
	}

	liquidity := 50.0
	if kpi.Liquidity != nil {
		liquidity = *kpi.Liquidity
	}
	if maxBid < avg*0.5 {
		notes = append(notes, "Strict discount target (>=50%): fewer wins but higher ROI.")
	}
	if liquidity < 25 {
		notes = append(notes, "Low liquidity: expect fewer opportunities, be patient.")
	}

	verdict := models.VerdictSkip
	switch {
	case maxBid >= avg*buyThreshold:
		verdict = models.VerdictBuy
	case maxBid >= avg*watchThreshold:
		verdict = models.VerdictWatch
	}

	rounded := round2(maxBid)
	return models.Recommendation{
		Verdict:        verdict,
		MaxBid:         &rounded,
		TargetDiscount: &discount,
		Notes:          notes,
	}
}
