package analyzer

import (
	"errors"
	"fmt"
	"heaps/classifier"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidRange is returned for an analysis bound below 1.
	ErrInvalidRange = errors.New("invalid range")
	// ErrNotFound is returned when a category has too few sizes for a query.
	ErrNotFound = errors.New("not found")
)

// Analyzer classifies contiguous ranges of pile sizes. The classifier's cache
// is reused across calls, so widening the range only classifies new sizes.
type Analyzer struct {
	classifier *classifier.Classifier
}

func New(c *classifier.Classifier) *Analyzer {
	return &Analyzer{classifier: c}
}

// Analyze classifies every size in [1, max] and groups the sizes by category.
func (a *Analyzer) Analyze(max int) (*Report, error) {
	if max < 1 {
		return nil, fmt.Errorf("analysis bound %d is below 1: %w", max, ErrInvalidRange)
	}

	start := time.Now()
	report := newReport(max)
	for size := 1; size <= max; size++ {
		t, err := a.classifier.Classify(size)
		if err != nil {
			return nil, err
		}
		report.add(size, t)
	}
	report.Duration = time.Since(start)
	report.Metric = a.classifier.Metric()

	log.Debug().Msgf("analyzed sizes 1..%d in %s: %d winning in one, %d unresolved",
		max, report.Duration, report.Count(classifier.WinIn1), report.Count(classifier.Unresolved))
	return report, nil
}
