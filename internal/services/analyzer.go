package services

import (
	"context"
	"log"

	"github.com/tcgscan/scanbot/internal/metrics"
	"github.com/tcgscan/scanbot/internal/models"
)

// AnalyzerService runs the full pipeline for one selected card: persist a
// scan, fetch quotes, persist snapshots, compute KPIs and recommend.
// Shared by the analyze endpoint and the capture worker.
type AnalyzerService struct {
	market *MarketService
	scans  *ScanService
}

func NewAnalyzerService(market *MarketService, scans *ScanService) *AnalyzerService {
	return &AnalyzerService{
		market: market,
		scans:  scans,
	}
}

// Analyze records the scan and its quotes before computing KPIs, then seeds
// the growth proxy from the scan's own snapshot history. Persistence write
// failures are returned; a failed history read degrades to no growth data.
func (s *AnalyzerService) Analyze(ctx context.Context, game models.Game, card models.AnalyzeCard, rules models.AutoBetRules) (*models.AnalyzeResponse, error) {
	scan, err := s.scans.CreateScan(game, card)
	if err != nil {
		return nil, err
	}

	quotes := s.market.GetQuotes(ctx, game, card.ID, card.Name)

	if err := s.scans.SaveSnapshots(scan.ID, quotes); err != nil {
		return nil, err
	}

	history, err := s.scans.RecentAvgHistory(scan.ID)
	if err != nil {
		log.Printf("Analyzer: history read failed for scan %s: %v", scan.ID, err)
		history = nil
	}

	kpi := ComputeKPIs(quotes, history)
	recommendation := Recommend(kpi, rules)
	metrics.RecommendationsTotal.WithLabelValues(string(recommendation.Verdict)).Inc()

	return &models.AnalyzeResponse{
		ScanID:         scan.ID,
		Quotes:         quotes,
		KPI:            kpi,
		Recommendation: recommendation,
	}, nil
}
