package services

import (
	"testing"

	"github.com/tcgscan/scanbot/internal/models"
)

func TestRecommendGoodConditionBuy(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(50)}
	rules := models.AutoBetRules{TargetDiscount: 0.3, Condition: models.ConditionGood}

	rec := Recommend(kpi, rules)

	if rec.Verdict != models.VerdictBuy {
		t.Errorf("verdict = %s, want buy", rec.Verdict)
	}
	if rec.MaxBid == nil || *rec.MaxBid != 70 {
		t.Errorf("maxBid = %v, want 70", rec.MaxBid)
	}
	if rec.TargetDiscount == nil || *rec.TargetDiscount != 0.3 {
		t.Errorf("targetDiscount = %v, want 0.3", rec.TargetDiscount)
	}
	if len(rec.Notes) != 0 {
		t.Errorf("expected no notes, got %v", rec.Notes)
	}
}

func TestRecommendDirtyPenaltyFlipsVerdict(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(50)}
	rules := models.AutoBetRules{TargetDiscount: 0.3, Condition: models.ConditionDirty}

	rec := Recommend(kpi, rules)

	// 100 * 0.7 * 0.85 = 59.50, between the 55% watch floor and the
	// 70% buy threshold.
	if rec.Verdict != models.VerdictWatch {
		t.Errorf("verdict = %s, want watch", rec.Verdict)
	}
	if rec.MaxBid == nil || *rec.MaxBid != 59.5 {
		t.Errorf("maxBid = %v, want 59.5", rec.MaxBid)
	}
	if !hasNote(rec.Notes, "Condition marked DIRTY: applying risk penalty.") {
		t.Errorf("missing dirty-condition note in %v", rec.Notes)
	}
}

func TestRecommendUnknownPenalty(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(50)}
	rules := models.AutoBetRules{TargetDiscount: 0.1, Condition: models.ConditionUnknown}

	rec := Recommend(kpi, rules)

	// 100 * 0.9 * 0.92 = 82.80, comfortably above the buy threshold.
	if rec.Verdict != models.VerdictBuy {
		t.Errorf("verdict = %s, want buy", rec.Verdict)
	}
	if rec.MaxBid == nil || *rec.MaxBid != 82.8 {
		t.Errorf("maxBid = %v, want 82.8", rec.MaxBid)
	}
	if !hasNote(rec.Notes, "Condition unknown: applying small risk penalty.") {
		t.Errorf("missing unknown-condition note in %v", rec.Notes)
	}
}

func TestRecommendBudgetCap(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(50)}
	rules := models.AutoBetRules{
		TargetDiscount: 0.3,
		MaxBudget:      fp(40),
		Condition:      models.ConditionGood,
	}

	rec := Recommend(kpi, rules)

	if rec.MaxBid == nil || *rec.MaxBid != 40 {
		t.Errorf("maxBid = %v, want capped at 40", rec.MaxBid)
	}
	if !hasNote(rec.Notes, "Budget cap applied: 40.00") {
		t.Errorf("missing budget note in %v", rec.Notes)
	}
	if rec.Verdict != models.VerdictSkip {
		t.Errorf("verdict = %s, want skip once the cap drags the bid below 55%%", rec.Verdict)
	}
	if !hasNote(rec.Notes, "Strict discount target (>=50%): fewer wins but higher ROI.") {
		t.Errorf("missing strict-target note in %v", rec.Notes)
	}
}

func TestRecommendBudgetAboveBidStillNoted(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(50)}
	rules := models.AutoBetRules{
		TargetDiscount: 0.3,
		MaxBudget:      fp(200),
		Condition:      models.ConditionGood,
	}

	rec := Recommend(kpi, rules)

	if rec.MaxBid == nil || *rec.MaxBid != 70 {
		t.Errorf("maxBid = %v, want 70 untouched by a loose budget", rec.MaxBid)
	}
	if !hasNote(rec.Notes, "Budget cap applied: 200.00") {
		t.Errorf("missing budget note in %v", rec.Notes)
	}
}

func TestRecommendNoAverage(t *testing.T) {
	tests := []struct {
		name string
		kpi  models.KPIs
	}{
		{"nil average", models.KPIs{}},
		{"zero average", models.KPIs{AvgPrice: fp(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.kpi, models.AutoBetRules{TargetDiscount: 0.3, Condition: models.ConditionGood})

			if rec.Verdict != models.VerdictWatch {
				t.Errorf("verdict = %s, want watch", rec.Verdict)
			}
			if rec.MaxBid != nil {
				t.Errorf("maxBid = %v, want nil", rec.MaxBid)
			}
			if len(rec.Notes) != 1 || rec.Notes[0] != "No reliable market average yet. Try manual selection or add providers." {
				t.Errorf("unexpected notes %v", rec.Notes)
			}
		})
	}
}

func TestRecommendLowLiquidityNote(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100), Liquidity: fp(10)}
	rules := models.AutoBetRules{TargetDiscount: 0.2, Condition: models.ConditionGood}

	rec := Recommend(kpi, rules)

	if !hasNote(rec.Notes, "Low liquidity: expect fewer opportunities, be patient.") {
		t.Errorf("missing low-liquidity note in %v", rec.Notes)
	}
}

func TestRecommendMissingLiquidityDefaultsNeutral(t *testing.T) {
	kpi := models.KPIs{AvgPrice: fp(100)}
	rules := models.AutoBetRules{TargetDiscount: 0.2, Condition: models.ConditionGood}

	rec := Recommend(kpi, rules)

	if hasNote(rec.Notes, "Low liquidity: expect fewer opportunities, be patient.") {
		t.Errorf("unknown liquidity should not trigger the low-liquidity note, got %v", rec.Notes)
	}
}

func hasNote(notes []string, want string) bool {
	for _, n := range notes {
		if n == want {
			return true
		}
	}
	return false
}
