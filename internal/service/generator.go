package service

import (
	"context"
	"fmt"

	"github.com/jphacks/hs-2501/internal/models"
)

const defaultDiaryImage = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1024&q=80"

// DiaryGenerator turns a day's schedule into diary prose. Implementations
// may call an external text-generation API; failures are surfaced to the
// caller, never retried here.
type DiaryGenerator interface {
	Generate(ctx context.Context, schedule []models.ScheduleItem) (text, imageURL string, err error)
}

// StubGenerator is the deterministic fallback used when no external
// generator is configured.
type StubGenerator struct{}

func (g *StubGenerator) Generate(ctx context.Context, schedule []models.ScheduleItem) (string, string, error) {
	text := fmt.Sprintf(
		"Today I had %d things planned. It was a fulfilling day, and %s left the strongest impression on me.",
		len(schedule), schedule[0].Activity,
	)
	return text, defaultDiaryImage, nil
}
