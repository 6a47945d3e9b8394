package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tcgscan/scanbot/internal/metrics"
	"github.com/tcgscan/scanbot/internal/models"
)

// historyLimit caps how many snapshot averages seed the growth proxy.
const historyLimit = 20

const defaultListLimit = 50

// ScanService is the persistence gateway for scans and price snapshots.
// Both tables are append-only.
type ScanService struct {
	db *gorm.DB
}

func NewScanService(db *gorm.DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan records a resolved card identity and returns the new scan.
func (s *ScanService) CreateScan(game models.Game, card models.AnalyzeCard) (*models.Scan, error) {
	scan := models.Scan{
		ID:           uuid.New().String(),
		RawText:      card.Name,
		Game:         game,
		ResolvedCard: card.ID,
		ResolvedName: card.Name,
		Confidence:   card.Confidence,
		ImageName:    card.Image,
	}
	if err := s.db.Create(&scan).Error; err != nil {
		return nil, err
	}
	metrics.ScansCreatedTotal.Inc()
	return &scan, nil
}

// SaveSnapshots flattens quotes into snapshot rows tied to a scan.
func (s *ScanService) SaveSnapshots(scanID string, quotes []models.MarketQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	snapshots := make([]models.PriceSnapshot, len(quotes))
	for i, q := range quotes {
		snapshots[i] = models.PriceSnapshot{
			ScanID:   scanID,
			Provider: q.Provider,
			Currency: q.Currency,
			Avg:      q.Avg,
			Low:      q.Low,
			High:     q.High,
			Volume:   q.Volume,
		}
	}
	if err := s.db.Create(&snapshots).Error; err != nil {
		return err
	}
	metrics.SnapshotRowsTotal.Add(float64(len(snapshots)))
	return nil
}

// RecentAvgHistory returns up to 20 defined snapshot averages for a scan,
// ordered by creation time ascending. The order matters downstream: the
// growth proxy reads the first and last entries.
func (s *ScanService) RecentAvgHistory(scanID string) ([]float64, error) {
	var snapshots []models.PriceSnapshot
	err := s.db.
		Where("scan_id = ? AND avg IS NOT NULL", scanID).
		Order("created_at ASC").
		Limit(historyLimit).
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Avg != nil {
			history = append(history, *snap.Avg)
		}
	}
	return history, nil
}

// GetScan returns a scan with its snapshots, or nil when absent.
func (s *ScanService) GetScan(id string) (*models.ScanDetail, error) {
	var scan models.Scan
	if err := s.db.First(&scan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var snapshots []models.PriceSnapshot
	if err := s.db.Where("scan_id = ?", id).Order("created_at ASC").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return &models.ScanDetail{
		Scan:      scan,
		Snapshots: snapshots,
	}, nil
}

// ListScans returns the most recent scans, newest first.
func (s *ScanService) ListScans(limit int) ([]models.Scan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var scans []models.Scan
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}
