package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveAccessPublicPost(t *testing.T) {
	l := newFakeLedger()
	s := newTestService(l, newFakeStore())
	viewer := addr(9)

	post := models.PostRecord{ID: 1, ContentRef: "QmPublic", IsPremium: false}
	vis := s.resolveAccess(context.Background(), post, &viewer)

	assert.Equal(t, VisPublic, vis.State)
	assert.Equal(t, "QmPublic", vis.ContentRef)
	assert.Zero(t, l.unlockCalls)
}

func TestResolveAccessPremiumWithOpenRef(t *testing.T) {
	l := newFakeLedger()
	s := newTestService(l, newFakeStore())
	viewer := addr(9)

	post := models.PostRecord{ID: 1, ContentRef: "QmOwn", IsPremium: true}
	vis := s.resolveAccess(context.Background(), post, &viewer)

	assert.Equal(t, VisUnlocked, vis.State)
	assert.Equal(t, "QmOwn", vis.ContentRef)
	assert.Zero(t, l.unlockCalls)
}

func TestResolveAccessAnonymousViewer(t *testing.T) {
	l := newFakeLedger()
	s := newTestService(l, newFakeStore())

	post := models.PostRecord{ID: 1, ContentRef: models.LockedRef, IsPremium: true}
	vis := s.resolveAccess(context.Background(), post, nil)

	assert.Equal(t, VisLocked, vis.State)
	// No authenticated viewer means no ledger call at all.
	assert.Zero(t, l.unlockCalls)
}

func TestResolveAccessEntitledViewer(t *testing.T) {
	l := newFakeLedger()
	l.unlocks[7] = "QmReal"
	s := newTestService(l, newFakeStore())
	viewer := addr(9)

	post := models.PostRecord{ID: 7, ContentRef: models.LockedRef, IsPremium: true}
	vis := s.resolveAccess(context.Background(), post, &viewer)

	assert.Equal(t, VisUnlocked, vis.State)
	assert.Equal(t, "QmReal", vis.ContentRef)
	assert.Equal(t, 1, l.unlockCalls)
}

func TestResolveAccessUnlockFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *fakeLedger)
	}{
		{
			name:  "not entitled",
			setup: func(l *fakeLedger) {},
		},
		{
			name: "transport error",
			setup: func(l *fakeLedger) {
				l.unlockErrs[7] = errors.New("rpc timeout")
			},
		},
		{
			name: "unlock echoes the sentinel",
			setup: func(l *fakeLedger) {
				l.unlocks[7] = models.LockedRef
			},
		},
		{
			name: "unlock returns empty ref",
			setup: func(l *fakeLedger) {
				l.unlocks[7] = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newFakeLedger()
			tt.setup(l)
			s := newTestService(l, newFakeStore())
			viewer := addr(9)

			post := models.PostRecord{ID: 7, ContentRef: models.LockedRef, IsPremium: true}
			vis := s.resolveAccess(context.Background(), post, &viewer)

			assert.Equal(t, VisLocked, vis.State)
			assert.Empty(t, vis.ContentRef)
		})
	}
}

func TestResolveAccessFailuresAreIndependent(t *testing.T) {
	l := newFakeLedger()
	l.unlocks[2] = "QmTwo"
	s := newTestService(l, newFakeStore())
	viewer := addr(9)

	locked := s.resolveAccess(context.Background(), models.PostRecord{ID: 1, ContentRef: models.LockedRef, IsPremium: true}, &viewer)
	unlocked := s.resolveAccess(context.Background(), models.PostRecord{ID: 2, ContentRef: models.LockedRef, IsPremium: true}, &viewer)

	assert.Equal(t, VisLocked, locked.State)
	assert.Equal(t, VisUnlocked, unlocked.State)
}
