package ledger

import (
	"context"
	"errors"

	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// ErrNotEntitled is returned by UnlockPost when the viewer holds no valid
// subscription to the post's author.
var ErrNotEntitled = errors.New("viewer not entitled to unlock post")

// Client defines the interface for ledger read operations
type Client interface {
	// GetAllPosts returns every post record on the ledger.
	GetAllPosts(ctx context.Context) ([]models.PostRecord, error)
	// GetProfile returns the raw profile entry for an address. A missing
	// profile is not an error; the record comes back empty.
	GetProfile(ctx context.Context, addr common.Address) (models.ProfileRecord, error)
	// GetFollowing returns the addresses the viewer follows, as stored,
	// with duplicates and mixed casing intact.
	GetFollowing(ctx context.Context, viewer common.Address) ([]common.Address, error)
	// UnlockPost attempts an entitlement-scoped unlock of a premium post
	// and returns the real content reference on success.
	UnlockPost(ctx context.Context, viewer common.Address, postID uint64) (string, error)
}
