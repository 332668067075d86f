package matching

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
)

// DefaultDescription is returned whenever generation fails or is disabled.
const DefaultDescription = "Here are the possible matches for you."

// DescriptionGenerator produces a natural-language summary of a match result.
type DescriptionGenerator interface {
	GenerateMatchDescription(ctx context.Context, prefs *domain.Preferences, matchNames []string) (string, error)
}

// Describer bounds a DescriptionGenerator with a timeout and substitutes
// DefaultDescription on any failure.
type Describer struct {
	generator DescriptionGenerator
	timeout   time.Duration
	logger    *slog.Logger
}

func NewDescriber(generator DescriptionGenerator, timeout time.Duration, logger *slog.Logger) *Describer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Describer{generator: generator, timeout: timeout, logger: logger}
}

func (d *Describer) Describe(ctx context.Context, prefs *domain.Preferences, matchNames []string) string {
	if d == nil || d.generator == nil {
		return DefaultDescription
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := d.generator.GenerateMatchDescription(ctx, prefs, matchNames)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			d.logger.WarnContext(ctx, "match description generation failed", "error", res.err)
			return DefaultDescription
		}
		if text := strings.TrimSpace(res.text); text != "" {
			return text
		}
		return DefaultDescription
	case <-ctx.Done():
		d.logger.WarnContext(ctx, "match description generation timed out", "timeout", d.timeout)
		return DefaultDescription
	}
}
