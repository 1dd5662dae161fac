package feed

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/sync/errgroup"
)

// Materialize rebuilds the feed for the given viewer (nil for anonymous),
// publishes it as the new snapshot and returns this run's result. Only a
// failed top-level ledger read is returned as an error; every per-post and
// per-author fault degrades to a dropped post, a locked placeholder, or an
// address-as-name identity. On error the previously published snapshot is
// left untouched.
func (s *Service) Materialize(ctx context.Context, viewer *common.Address) (*models.Snapshot, error) {
	seq := s.runSeq.Add(1)

	posts, err := s.ledger.GetAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	var following []string
	if viewer != nil {
		set, err := s.NormalizedFollowing(ctx, *viewer)
		if err != nil {
			return nil, fmt.Errorf("load following: %w", err)
		}
		following = make([]string, 0, len(set))
		for addr := range set {
			following = append(following, addr)
		}
		sort.Strings(following)
	}

	// Feed order is fixed here, before any concurrent work begins:
	// most recent post first.
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })

	authors := make([]common.Address, 0, len(posts)+1)
	for _, p := range posts {
		authors = append(authors, p.Author)
	}
	if viewer != nil {
		// A viewer with zero posts still gets an identity.
		authors = append(authors, *viewer)
	}
	identities := s.ResolveIdentities(ctx, authors)

	// Fan out per post, join positionally so slow items cannot reorder
	// the result.
	results := make([]*models.FeedItem, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			results[i] = s.resolveItem(gctx, post, viewer, identities)
			return nil
		})
	}
	_ = g.Wait() // goroutines degrade faults internally, never error

	items := make([]models.FeedItem, 0, len(posts))
	for _, it := range results {
		if it != nil {
			items = append(items, *it)
		}
	}

	snap := &models.Snapshot{
		Seq:         seq,
		Items:       items,
		Following:   following,
		RefreshedAt: time.Now().UTC(),
	}
	if viewer != nil {
		snap.Viewer = strings.ToLower(viewer.Hex())
	}
	if !s.publish(snap) {
		log.Printf("feed: run %d superseded by a newer snapshot, not published", seq)
	}
	return snap, nil
}

// resolveItem materializes one post. A nil return drops the post from the
// feed.
func (s *Service) resolveItem(ctx context.Context, post models.PostRecord, viewer *common.Address, identities map[string]models.Identity) *models.FeedItem {
	author := strings.ToLower(post.Author.Hex())
	ident, ok := identities[author]
	if !ok {
		ident = models.FallbackIdentity(author)
	}

	item := models.FeedItem{
		ID:            post.ID,
		Author:        author,
		Owner:         strings.ToLower(post.Owner.Hex()),
		AuthorName:    ident.DisplayName,
		AuthorAvatar:  ident.AvatarRef,
		CreatedAt:     post.CreatedAt,
		IsCollectible: post.IsCollectible,
		ForSale:       post.ForSale,
		PriceETH:      weiToEther(post.Price),
		TipETH:        weiToEther(post.TipTotal),
	}

	vis := s.resolveAccess(ctx, post, viewer)
	if vis.State == VisLocked {
		item.Locked = true
		return &item
	}

	content, err := s.normalizeContent(ctx, vis.ContentRef)
	if err != nil {
		log.Printf("feed: dropping post %d: %v", post.ID, err)
		return nil
	}
	item.Text = content.Text
	item.ImageRef = content.ImageRef
	return &item
}

// weiToEther renders a wei amount as a decimal ether string for display.
func weiToEther(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, big.NewFloat(params.Ether))
	return f.Text('f', -1)
}
