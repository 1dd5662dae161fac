// Package feed materializes the display-ready feed from the ledger and the
// content store: it resolves author identities across both profile
// generations, decides per-post visibility against premium entitlements,
// normalizes content bodies, and publishes the result as an immutable
// snapshot.
package feed

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anonto42/fairnet/backend/internal/ipfs"
	"github.com/anonto42/fairnet/backend/internal/ledger"
	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// Options tunes the materialization pipeline.
type Options struct {
	// Workers bounds the number of concurrent ledger/store sub-operations.
	Workers int
	// UnlockTimeout bounds a single unlock call.
	UnlockTimeout time.Duration
	// FetchTimeout bounds a single content store fetch.
	FetchTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 8
	}
	if o.UnlockTimeout <= 0 {
		o.UnlockTimeout = 10 * time.Second
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 10 * time.Second
	}
	return o
}

// Service is the feed materialization pipeline.
type Service struct {
	ledger ledger.Client
	store  ipfs.Client
	opts   Options

	runSeq   atomic.Uint64
	mu       sync.Mutex
	snapshot atomic.Pointer[models.Snapshot]
}

// NewService creates a feed Service over the given ledger and content store
// clients.
func NewService(ledgerClient ledger.Client, store ipfs.Client, opts Options) *Service {
	return &Service{
		ledger: ledgerClient,
		store:  store,
		opts:   opts.withDefaults(),
	}
}

// Snapshot returns the most recently published snapshot, or nil when no run
// has completed yet. The returned value is immutable.
func (s *Service) Snapshot() *models.Snapshot {
	return s.snapshot.Load()
}

// SnapshotFor returns the published snapshot only if it was materialized for
// the given viewer (nil for anonymous). A snapshot built for one viewer may
// carry premium content unlocked by that viewer's entitlements, so it must
// never be handed to another.
func (s *Service) SnapshotFor(viewer *common.Address) *models.Snapshot {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	var key string
	if viewer != nil {
		key = strings.ToLower(viewer.Hex())
	}
	if snap.Viewer != key {
		return nil
	}
	return snap
}

// publish installs a completed run's snapshot unless a higher-sequence run
// already published. Reports whether the snapshot was installed.
func (s *Service) publish(snap *models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.snapshot.Load(); cur != nil && cur.Seq >= snap.Seq {
		return false
	}
	s.snapshot.Store(snap)
	return true
}
