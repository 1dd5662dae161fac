package feed

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizedFollowing returns the viewer's following set with duplicates
// removed and addresses lower-cased, ready for comparison against feed item
// authors. The set is derived fresh per call and never shared across viewers.
func (s *Service) NormalizedFollowing(ctx context.Context, viewer common.Address) (map[string]struct{}, error) {
	addrs, err := s.ledger.GetFollowing(ctx, viewer)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		set[strings.ToLower(a.Hex())] = struct{}{}
	}
	return set, nil
}
