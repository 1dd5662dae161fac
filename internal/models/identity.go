package models

// IdentityKind tags which profile generation an identity was resolved from.
type IdentityKind int

const (
	// IdentityAbsent means the address has no profile entry; the display
	// name falls back to the address itself.
	IdentityAbsent IdentityKind = iota
	// IdentityLegacy means the ledger held a plain display name directly.
	IdentityLegacy
	// IdentityModern means the ledger held a content reference to a
	// profile object with name, bio and avatar.
	IdentityModern
)

// Identity is the resolved display identity of one address. The shape of the
// underlying profile record is decided once at resolution time; downstream
// code never re-inspects raw profile data.
type Identity struct {
	Kind        IdentityKind `json:"-"`
	DisplayName string       `json:"display_name"`
	Bio         string       `json:"bio,omitempty"`
	AvatarRef   string       `json:"avatar_ref,omitempty"`
}

// FallbackIdentity is the identity used when an address has no resolvable
// profile: the address itself as the display name.
func FallbackIdentity(address string) Identity {
	return Identity{Kind: IdentityAbsent, DisplayName: address}
}
