package jobs

import (
	"context"
	"log"
	"time"
)

// HistoryPruner deletes history rows older than a cutoff.
type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionProcessor prunes search history past the configured retention
// window. It implements JobProcessor so it can run under the poll worker.
type RetentionProcessor struct {
	pruner    HistoryPruner
	retention time.Duration
	now       func() time.Time
}

// NewRetentionProcessor creates a new RetentionProcessor instance
func NewRetentionProcessor(pruner HistoryPruner, retention time.Duration) *RetentionProcessor {
	return &RetentionProcessor{
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
	}
}

// ProcessJobs deletes all history records past the retention window.
func (p *RetentionProcessor) ProcessJobs(ctx context.Context) error {
	cutoff := p.now().UTC().Add(-p.retention)

	deleted, err := p.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("retention: pruned %d history records older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}
