package feed

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// profileMeta is the profile object stored behind a modern profile pointer.
type profileMeta struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// ResolveIdentities maps each distinct address to its display identity. Keys
// of the returned map are lower-cased hex addresses. Lookups run
// concurrently; a failure for one address degrades only that entry to the
// address-as-name fallback.
func (s *Service) ResolveIdentities(ctx context.Context, addrs []common.Address) map[string]models.Identity {
	distinct := make([]common.Address, 0, len(addrs))
	seen := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		key := strings.ToLower(a.Hex())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, a)
	}

	results := make([]models.Identity, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, addr := range distinct {
		i, addr := i, addr
		g.Go(func() error {
			results[i] = s.resolveIdentity(gctx, addr)
			return nil
		})
	}
	_ = g.Wait() // goroutines degrade faults internally, never error

	identities := make(map[string]models.Identity, len(distinct))
	for i, addr := range distinct {
		identities[strings.ToLower(addr.Hex())] = results[i]
	}
	return identities
}

func (s *Service) resolveIdentity(ctx context.Context, addr common.Address) models.Identity {
	key := strings.ToLower(addr.Hex())

	rec, err := s.ledger.GetProfile(ctx, addr)
	if err != nil {
		log.Printf("identity: profile lookup failed for %s: %v", key, err)
		return models.FallbackIdentity(key)
	}
	if rec.Empty() {
		return models.FallbackIdentity(key)
	}
	if rec.LegacyName != "" {
		return models.Identity{Kind: models.IdentityLegacy, DisplayName: rec.LegacyName}
	}

	fctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()
	data, err := s.store.Fetch(fctx, rec.Ref)
	if err != nil {
		log.Printf("identity: profile fetch failed for %s: %v", key, err)
		return models.FallbackIdentity(key)
	}
	var meta profileMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		log.Printf("identity: bad profile object for %s: %v", key, err)
		return models.FallbackIdentity(key)
	}

	name := meta.Name
	if name == "" {
		name = key
	}
	return models.Identity{
		Kind:        models.IdentityModern,
		DisplayName: name,
		Bio:         meta.Bio,
		AvatarRef:   meta.Avatar,
	}
}
