package domain

import (
	"context"
)

// SheetSource fetches the raw tabular export and decodes it into rows
// keyed by header label. A document that cannot be decoded is a fetch
// failure, not a partial result.
type SheetSource interface {
	FetchRows(ctx context.Context) ([]RawRow, error)
}

// SnapshotRepository publishes and serves the current snapshot.
// Publish replaces the snapshot atomically; Current returns nil until
// the first successful publish.
type SnapshotRepository interface {
	Publish(snapshot *Snapshot)
	Current() *Snapshot
}
