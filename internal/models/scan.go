package models

import (
	"time"
)

// Scan records one resolved card identity. Rows are append-only; no update
// or delete operations exist.
type Scan struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	RawText      string    `json:"raw_text"`
	Game         Game      `json:"game" gorm:"not null;index"`
	ResolvedCard string    `json:"resolved_card"`
	ResolvedName string    `json:"resolved_name"`
	Confidence   *float64  `json:"confidence,omitempty"`
	ImageName    string    `json:"image_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PriceSnapshot is one provider quote tied to a scan, flattened for
// storage. Optional fields stay nil when the provider reported nothing.
type PriceSnapshot struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ScanID    string    `json:"scan_id" gorm:"not null;index"`
	Provider  string    `json:"provider"`
	Currency  string    `json:"currency"`
	Avg       *float64  `json:"avg,omitempty"`
	Low       *float64  `json:"low,omitempty"`
	High      *float64  `json:"high,omitempty"`
	Volume    *int      `json:"volume,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanDetail is the API response for a single scan with its snapshots.
type ScanDetail struct {
	Scan      Scan            `json:"scan"`
	Snapshots []PriceSnapshot `json:"snapshots"`
}
