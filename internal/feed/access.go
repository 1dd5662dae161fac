package feed

import (
	"context"
	"errors"
	"log"

	"github.com/anonto42/fairnet/backend/internal/ledger"
	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// VisState is the visibility decision for one (viewer, post) pair.
type VisState int

const (
	// VisPublic means the post was never gated.
	VisPublic VisState = iota
	// VisUnlocked means the post is premium and the viewer is entitled.
	VisUnlocked
	// VisLocked means the real content reference stays withheld.
	VisLocked
)

// Visibility carries the decision and, when visible, the resolvable content
// reference. The LOCKED sentinel never leaves this resolver.
type Visibility struct {
	State      VisState
	ContentRef string
}

// resolveAccess decides whether the viewer may see a post's content. For a
// gated premium post it attempts the entitlement-scoped unlock; any unlock
// failure resolves to Locked rather than propagating.
func (s *Service) resolveAccess(ctx context.Context, post models.PostRecord, viewer *common.Address) Visibility {
	if !post.IsPremium {
		return Visibility{State: VisPublic, ContentRef: post.ContentRef}
	}
	if !post.IsLocked() {
		// Premium, but the record already carries a resolvable
		// reference (e.g. the viewer authored it).
		return Visibility{State: VisUnlocked, ContentRef: post.ContentRef}
	}
	if viewer == nil {
		return Visibility{State: VisLocked}
	}

	uctx, cancel := context.WithTimeout(ctx, s.opts.UnlockTimeout)
	defer cancel()
	ref, err := s.ledger.UnlockPost(uctx, *viewer, post.ID)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotEntitled) {
			log.Printf("access: unlock failed for post %d: %v", post.ID, err)
		}
		return Visibility{State: VisLocked}
	}
	if ref == "" || ref == models.LockedRef {
		return Visibility{State: VisLocked}
	}
	return Visibility{State: VisUnlocked, ContentRef: ref}
}
