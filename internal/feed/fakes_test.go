package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/fairnet/backend/internal/ipfs"
	"github.com/anonto42/fairnet/backend/internal/ledger"
	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// fakeLedger implements ledger.Client from in-memory maps.
type fakeLedger struct {
	mu sync.Mutex

	posts    []models.PostRecord
	postsErr error
	// onGetAllPosts runs at the top of GetAllPosts, outside the lock, so
	// tests can stall one run while another proceeds.
	onGetAllPosts func()

	profiles     map[string]models.ProfileRecord
	profileErrs  map[string]error
	profileCalls map[string]int

	following    []common.Address
	followingErr error

	unlocks     map[uint64]string
	unlockErrs  map[uint64]error
	unlockCalls int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		profiles:     make(map[string]models.ProfileRecord),
		profileErrs:  make(map[string]error),
		profileCalls: make(map[string]int),
		unlocks:      make(map[uint64]string),
		unlockErrs:   make(map[uint64]error),
	}
}

func (f *fakeLedger) GetAllPosts(ctx context.Context) ([]models.PostRecord, error) {
	f.mu.Lock()
	hook := f.onGetAllPosts
	f.onGetAllPosts = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	posts := make([]models.PostRecord, len(f.posts))
	copy(posts, f.posts)
	return posts, nil
}

func (f *fakeLedger) GetProfile(ctx context.Context, addr common.Address) (models.ProfileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(addr.Hex())
	f.profileCalls[key]++
	if err := f.profileErrs[key]; err != nil {
		return models.ProfileRecord{}, err
	}
	return f.profiles[key], nil
}

func (f *fakeLedger) GetFollowing(ctx context.Context, viewer common.Address) ([]common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.followingErr != nil {
		return nil, f.followingErr
	}
	return append([]common.Address(nil), f.following...), nil
}

func (f *fakeLedger) UnlockPost(ctx context.Context, viewer common.Address, postID uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlockCalls++
	if err := f.unlockErrs[postID]; err != nil {
		return "", err
	}
	if ref, ok := f.unlocks[postID]; ok {
		return ref, nil
	}
	return "", fmt.Errorf("unlock post %d: %w", postID, ledger.ErrNotEntitled)
}

// fakeStore implements ipfs.Client from an in-memory object map.
type fakeStore struct {
	mu sync.Mutex

	objects    map[string][]byte
	fetchErrs  map[string]error
	fetchCalls map[string]int
	delays     map[string]time.Duration

	pins   []string
	pinErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:    make(map[string][]byte),
		fetchErrs:  make(map[string]error),
		fetchCalls: make(map[string]int),
		delays:     make(map[string]time.Duration),
	}
}

func (f *fakeStore) Fetch(ctx context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	delay := f.delays[ref]
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls[ref]++
	if err := f.fetchErrs[ref]; err != nil {
		return nil, err
	}
	if data, ok := f.objects[ref]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, fmt.Errorf("%w: %s", ipfs.ErrUnavailable, ref)
}

func (f *fakeStore) Pin(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pins = append(f.pins, ref)
	return f.pinErr
}

func (f *fakeStore) pinned() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pins...)
}

func addr(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

func addrKey(b byte) string {
	return strings.ToLower(addr(b).Hex())
}

func newTestService(l *fakeLedger, st *fakeStore) *Service {
	return NewService(l, st, Options{Workers: 4})
}
