// Package dataset owns the process-wide sales dataset: the mapped records,
// the loading and error flags, and the refresh lifecycle. The store is the
// only writer of the dataset; filtering and facet extraction read it and
// produce derived collections.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"salesdash/internal/core"
	"salesdash/internal/source"
)

// Snapshotter persists the last good dataset so it survives restarts.
type Snapshotter interface {
	Save(ctx context.Context, records []core.SaleRecord, fetchedAt time.Time) error
	Load(ctx context.Context) ([]core.SaleRecord, time.Time, error)
}

// Notifier announces a completed refresh to interested consumers.
type Notifier interface {
	DatasetRefreshed(ctx context.Context, cycleID string, count int, fetchedAt time.Time) error
}

// Status is a point-in-time view of the store's flags.
type Status struct {
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	Records   int       `json:"records"`
	Version   uint64    `json:"version"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type Store struct {
	src      source.RowSource
	snapshot Snapshotter
	notifier Notifier
	logger   *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	records   []core.SaleRecord
	version   uint64
	fetchedAt time.Time
	loading   bool
	lastErr   string
	inflight  int
	seq       uint64 // issued fetch sequence
	applied   uint64 // sequence of the last applied completion

	subs []chan struct{}
}

// Option configures optional collaborators.
type Option func(*Store)

func WithSnapshotter(s Snapshotter) Option { return func(st *Store) { st.snapshot = s } }
func WithNotifier(n Notifier) Option       { return func(st *Store) { st.notifier = n } }
func WithLogger(l *slog.Logger) Option     { return func(st *Store) { st.logger = l } }

// New creates a store over the given row source. The store starts empty and
// loading; callers trigger the first Refresh.
func New(src source.RowSource, opts ...Option) *Store {
	s := &Store{
		src:     src,
		records: []core.SaleRecord{},
		logger:  slog.Default(),
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh runs one full fetch cycle: authorize and fetch via the source, map
// rows to records, and swap the dataset wholesale. Concurrent calls collapse
// into one underlying fetch. On failure the previous dataset is preserved;
// only the error message changes.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Store) refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.lastErr = ""
	s.inflight++
	s.mu.Unlock()

	cycleID := uuid.NewString()
	s.logger.InfoContext(ctx, "Starting dataset refresh", "cycle_id", cycleID, "seq", seq)

	rows, err := s.src.FetchRows(ctx)
	if err != nil {
		s.complete(ctx, seq, nil, err)
		return fmt.Errorf("fetch rows: %w", err)
	}

	records := core.MapRows(rows)
	dropped := 0
	if len(rows) > 1 {
		dropped = len(rows) - 1 - len(records)
	}
	if dropped > 0 {
		// Rows with unparseable dates degrade silently; only the count shrinks.
		s.logger.WarnContext(ctx, "Dropped rows with unparseable dates",
			"cycle_id", cycleID, "dropped", dropped, "kept", len(records))
	}

	s.complete(ctx, seq, records, nil)
	s.logger.InfoContext(ctx, "Dataset refresh complete", "cycle_id", cycleID, "records", len(records))

	if s.notifier != nil {
		if nerr := s.notifier.DatasetRefreshed(ctx, cycleID, len(records), time.Now()); nerr != nil {
			s.logger.WarnContext(ctx, "Refresh notification failed", "error", nerr)
		}
	}
	return nil
}

// complete applies a fetch outcome. A completion older than one already
// applied is discarded so a stale response can never overwrite a newer
// dataset.
func (s *Store) complete(ctx context.Context, seq uint64, records []core.SaleRecord, err error) {
	var notify bool

	s.mu.Lock()
	s.inflight--
	if s.inflight <= 0 {
		s.loading = false
	}
	switch {
	case err != nil:
		s.lastErr = err.Error()
	case seq <= s.applied:
		s.logger.DebugContext(ctx, "Discarding stale fetch completion", "seq", seq, "applied", s.applied)
	default:
		s.records = records
		s.applied = seq
		s.version++
		s.fetchedAt = time.Now()
		s.lastErr = ""
		notify = true
	}
	subs := s.subs
	fetchedAt := s.fetchedAt
	s.mu.Unlock()

	if !notify {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	if s.snapshot != nil {
		if serr := s.snapshot.Save(ctx, records, fetchedAt); serr != nil {
			s.logger.WarnContext(ctx, "Snapshot save failed", "error", serr)
		}
	}
}

// LoadSnapshot replaces the dataset from the snapshot store. Used at startup
// when the remote fetch fails, and when a refresh event arrives from the
// worker.
func (s *Store) LoadSnapshot(ctx context.Context) error {
	if s.snapshot == nil {
		return fmt.Errorf("no snapshot store configured")
	}
	records, fetchedAt, err := s.snapshot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.version++
	s.fetchedAt = fetchedAt
	s.loading = false
	subs := s.subs
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Dataset loaded from snapshot", "records", len(records), "fetched_at", fetchedAt)
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Records returns a copy of the current dataset in fetch order.
func (s *Store) Records() []core.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.SaleRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Version returns the dataset generation, bumped on every swap. Derived-data
// caches key on it.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Status reports the current flags.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Loading:   s.loading,
		Error:     s.lastErr,
		Records:   len(s.records),
		Version:   s.version,
		FetchedAt: s.fetchedAt,
	}
}

// Subscribe returns a channel that receives a tick after every dataset swap.
// Slow subscribers miss ticks instead of blocking the store.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
