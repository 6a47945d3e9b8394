package services

import (
	"math"

	"github.com/tcgscan/scanbot/internal/models"
)

// ComputeKPIs reduces a quote list plus optional historical averages into
// summary statistics. Pure function, no I/O. A nil field means the source
// data was missing; missing never collapses to zero.
//
// historicalAvgs must be in chronological ascending order; growth uses the
// first and last entries and does not sort.
func ComputeKPIs(quotes []models.MarketQuote, historicalAvgs []float64) models.KPIs {
	var avgs, lows, highs, volumes []float64
	for _, q := range quotes {
		if q.Avg != nil {
			avgs = append(avgs, *q.Avg)
		}
		if q.Low != nil {
			lows = append(lows, *q.Low)
		}
		if q.High != nil {
			highs = append(highs, *q.High)
		}
		if q.Volume != nil {
			volumes = append(volumes, float64(*q.Volume))
		}
	}

	var kpi models.KPIs
	if len(avgs) > 0 {
		v := mean(avgs)
		kpi.AvgPrice = &v
	}
	if len(lows) > 0 {
		v := minOf(lows)
		kpi.LowPrice = &v
	}
	if len(highs) > 0 {
		v := maxOf(highs)
		kpi.HighPrice = &v
	}

	// Liquidity proxy: normalized mean volume. Rarity is its inverse.
	// Both are rough heuristics, not calibrated measures.
	if len(volumes) > 0 {
		liquidity := clamp01(mean(volumes)/120) * 100
		rarity := 100 - liquidity
		kpi.Liquidity = &liquidity
		kpi.Rarity = &rarity
	}

	if growth, ok := growthFromHistory(historicalAvgs); ok {
		kpi.Growth = &growth
	}

	return kpi
}

// growthFromHistory computes the percent change between the first and last
// historical averages. Needs at least two entries and a positive, finite
// first entry.
func growthFromHistory(history []float64) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}
	first := history[0]
	last := history[len(history)-1]
	if math.IsNaN(first) || math.IsInf(first, 0) || first <= 0 {
		return 0, false
	}
	return (last - first) / first * 100, true
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
