package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salespulse/internal/domain"
	"salespulse/pkg/logger"
	"salespulse/pkg/metrics"

	"golang.org/x/sync/semaphore"
)

// ErrRefreshInProgress is returned when a refresh is requested while
// another cycle is still in flight.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// IngestService runs the fetch, normalize, publish cycle. A cycle
// that fails leaves the previously published snapshot untouched.
type IngestService struct {
	source     domain.SheetSource
	snapshots  domain.SnapshotRepository
	normalizer *Normalizer
	logger     *logger.Logger
	metrics    *metrics.Metrics
	interval   time.Duration

	// at most one fetch in flight; a tick arriving mid-cycle is
	// dropped, not queued
	inflight *semaphore.Weighted
}

func NewIngestService(
	source domain.SheetSource,
	snapshots domain.SnapshotRepository,
	normalizer *Normalizer,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	interval time.Duration,
) *IngestService {
	return &IngestService{
		source:     source,
		snapshots:  snapshots,
		normalizer: normalizer,
		logger:     logger,
		metrics:    metrics,
		interval:   interval,
		inflight:   semaphore.NewWeighted(1),
	}
}

// RunOnce executes a single refresh cycle and publishes the result.
// Returns an error when the cycle was skipped or the fetch failed; in
// both cases the current snapshot is unchanged.
func (s *IngestService) RunOnce(ctx context.Context) error {
	if !s.inflight.TryAcquire(1) {
		s.metrics.RecordFetchSkipped()
		return ErrRefreshInProgress
	}
	defer s.inflight.Release(1)

	start := time.Now()
	log := s.logger.WithContext(ctx)

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		s.metrics.RecordFetchCycle("failed", time.Since(start))
		return fmt.Errorf("failed to fetch rows: %w", err)
	}

	records := s.normalizer.NormalizeAll(rows)
	snapshot := &domain.Snapshot{Records: records, FetchedAt: time.Now()}
	s.snapshots.Publish(snapshot)

	s.metrics.RecordFetchCycle("success", time.Since(start))
	s.metrics.RecordSnapshot(len(records), snapshot.FetchedAt)

	log.WithFields(map[string]interface{}{
		"duration": time.Since(start),
		"rows":     len(rows),
		"records":  len(records),
	}).Info("Published snapshot")

	return nil
}

// Run polls on a fixed interval until ctx is cancelled. The first
// fetch happens immediately. A failed cycle is logged and waits for
// the next tick; there is no backoff and no out-of-band retry.
func (s *IngestService) Run(ctx context.Context) {
	log := s.logger.WithContext(ctx)
	log.WithField("interval", s.interval).Info("Starting feed polling")

	if err := s.RunOnce(ctx); err != nil {
		log.WithError(err).Warn("Initial refresh failed, keeping empty state")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Feed polling stopped")
			return
		case <-ticker.C:
		}

		if err := s.RunOnce(ctx); err != nil {
			log.WithError(err).Warn("Refresh cycle failed, previous snapshot retained")
		}
	}
}
