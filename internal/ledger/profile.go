package ledger

import (
	"strings"

	"github.com/anonto42/fairnet/backend/internal/models"
)

// classifyProfile decides once, at the ledger boundary, whether a raw profile
// string is a content-store pointer or a legacy plain display name. The
// profile field predates content-addressed profiles, so old accounts still
// hold the name directly.
func classifyProfile(raw string) models.ProfileRecord {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.ProfileRecord{}
	}
	if looksLikeContentRef(raw) {
		return models.ProfileRecord{Ref: raw}
	}
	return models.ProfileRecord{LegacyName: raw}
}

// looksLikeContentRef reports whether a string is shaped like an IPFS
// reference: a CIDv0 ("Qm", 46 chars), a CIDv1 ("bafy..."), an ipfs:// URI,
// or a gateway URL containing an /ipfs/ path segment.
func looksLikeContentRef(s string) bool {
	if strings.HasPrefix(s, "ipfs://") || strings.Contains(s, "/ipfs/") {
		return true
	}
	if strings.HasPrefix(s, "Qm") && len(s) == 46 {
		return true
	}
	if strings.HasPrefix(s, "baf") && len(s) >= 32 {
		return true
	}
	return false
}
