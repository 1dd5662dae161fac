package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// LockedRef is the reserved content reference the ledger stores for a
// premium post whose real reference is withheld pending an entitlement check.
const LockedRef = "LOCKED"

// PostRecord is one post as recorded on the ledger. Core fields are immutable
// once created; the collectible flags and accumulators are updated by later
// ledger transactions.
type PostRecord struct {
	ID            uint64         `json:"id"`
	Author        common.Address `json:"author"`
	Owner         common.Address `json:"owner"`
	ContentRef    string         `json:"content_ref"`
	CreatedAt     time.Time      `json:"created_at"`
	IsPremium     bool           `json:"is_premium"`
	IsCollectible bool           `json:"is_collectible"`
	ForSale       bool           `json:"for_sale"`
	Price         *big.Int       `json:"price"`
	TipTotal      *big.Int       `json:"tip_total"`
}

// IsLocked reports whether the record withholds its content reference.
func (p PostRecord) IsLocked() bool {
	return p.ContentRef == LockedRef
}

// ProfileRecord is the raw per-address profile entry from the ledger. Exactly
// one of Ref or LegacyName is set for a populated profile; both empty means
// the address never wrote a profile.
type ProfileRecord struct {
	Ref        string `json:"ref,omitempty"`
	LegacyName string `json:"legacy_name,omitempty"`
}

// Empty reports whether the address has no profile entry at all.
func (p ProfileRecord) Empty() bool {
	return p.Ref == "" && p.LegacyName == ""
}

// PostContent is the canonical body of a post after normalization.
type PostContent struct {
	Text     string `json:"text"`
	ImageRef string `json:"image_ref,omitempty"`
}
