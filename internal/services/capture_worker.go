package services

import (
	"context"
	"log"
	"time"

	"github.com/tcgscan/scanbot/internal/metrics"
	"github.com/tcgscan/scanbot/internal/models"
)

// FrameSource delivers captured frames. Platform screen capture (overlay,
// media projection, permissions) lives outside this service; any source
// that yields image bytes plugs in here.
type FrameSource interface {
	NextFrame(ctx context.Context) ([]byte, error)
}

// NoopFrameSource yields empty frames. Paired with MockRecognizer it
// exercises the whole pipeline without a capture backend.
type NoopFrameSource struct{}

func (NoopFrameSource) NextFrame(_ context.Context) ([]byte, error) {
	return []byte{}, nil
}

const defaultCaptureInterval = 30 * time.Second

// CaptureWorker periodically pulls a frame, recognizes it and runs the
// recognized card through the analysis pipeline, logging the verdict.
type CaptureWorker struct {
	source     FrameSource
	recognizer Recognizer
	analyzer   *AnalyzerService
	rules      models.AutoBetRules
	interval   time.Duration
}

func NewCaptureWorker(source FrameSource, recognizer Recognizer, analyzer *AnalyzerService, rules models.AutoBetRules, interval time.Duration) *CaptureWorker {
	if interval <= 0 {
		interval = defaultCaptureInterval
	}
	return &CaptureWorker{
		source:     source,
		recognizer: recognizer,
		analyzer:   analyzer,
		rules:      rules,
		interval:   interval,
	}
}

// Start runs the capture loop until the context is cancelled.
func (w *CaptureWorker) Start(ctx context.Context) {
	log.Printf("Capture worker started: scanning every %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Capture worker stopping...")
			return
		case <-ticker.C:
			w.processFrame(ctx)
		}
	}
}

func (w *CaptureWorker) processFrame(ctx context.Context) {
	frame, err := w.source.NextFrame(ctx)
	if err != nil {
		log.Printf("Capture worker: frame capture failed: %v", err)
		metrics.CaptureFramesTotal.WithLabelValues("error").Inc()
		return
	}

	candidate, err := w.recognizer.Recognize(frame)
	if err != nil {
		log.Printf("Capture worker: recognition failed: %v", err)
		metrics.CaptureFramesTotal.WithLabelValues("error").Inc()
		return
	}
	if candidate == nil {
		metrics.CaptureFramesTotal.WithLabelValues("no_match").Inc()
		return
	}

	// Recognized cards from the mock list carry no provider identity, so
	// quotes come from the stub providers only (game unknown).
	card := models.AnalyzeCard{
		ID:         candidate.ID,
		Name:       candidate.Name,
		Source:     candidate.Source,
		Set:        candidate.Set,
		Number:     candidate.Number,
		Image:      candidate.Image,
		Confidence: &candidate.Confidence,
	}
	result, err := w.analyzer.Analyze(ctx, models.GameUnknown, card, w.rules)
	if err != nil {
		log.Printf("Capture worker: analysis failed for %s: %v", candidate.Name, err)
		metrics.CaptureFramesTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.CaptureFramesTotal.WithLabelValues("analyzed").Inc()
	if result.Recommendation.MaxBid != nil {
		log.Printf("Capture worker: %s -> %s (max bid %.2f)", candidate.Name, result.Recommendation.Verdict, *result.Recommendation.MaxBid)
	} else {
		log.Printf("Capture worker: %s -> %s", candidate.Name, result.Recommendation.Verdict)
	}
}
