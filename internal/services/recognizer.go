package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/tcgscan/scanbot/internal/models"
)

// Recognizer maps a captured frame to a card identity. Real image
// recognition is an external capability; the pipeline only depends on this
// interface. A nil candidate with nil error means nothing was recognized.
type Recognizer interface {
	Recognize(frame []byte) (*models.CardCandidate, error)
}

// mockCards is the fixed identification list the mock recognizer picks
// from. Useful for demoing the pipeline without a vision backend.
var mockCards = []models.CardCandidate{
	{ID: "swsh45-74", Name: "Charizard VMAX", Set: "Shining Fates", Source: models.SourceManual, Confidence: candidateConfidence},
	{ID: "swsh4-43", Name: "Pikachu V", Set: "Vivid Voltage", Source: models.SourceManual, Confidence: candidateConfidence},
	{ID: "sm8-159", Name: "Lugia GX", Set: "Lost Thunder", Source: models.SourceManual, Confidence: candidateConfidence},
	{ID: "swsh12pt5-56", Name: "Mewtwo VSTAR", Set: "Crown Zenith", Source: models.SourceManual, Confidence: candidateConfidence},
}

// MockRecognizer returns a random entry from a fixed card list regardless
// of the frame contents.
type MockRecognizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockRecognizer) Recognize(_ []byte) (*models.CardCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card := mockCards[m.rng.Intn(len(mockCards))]
	return &card, nil
}
