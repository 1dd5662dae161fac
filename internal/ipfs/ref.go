package ipfs

import (
	"fmt"
	"strings"
)

// canonicalRef reduces the reference shapes found in ledger records to a bare
// content path the API accepts. Posts written by older clients stored full
// gateway URLs or ipfs:// URIs instead of bare CIDs.
func canonicalRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty content reference", ErrUnavailable)
	}
	if rest, ok := strings.CutPrefix(ref, "ipfs://"); ok {
		ref = rest
	} else if i := strings.Index(ref, "/ipfs/"); i >= 0 {
		ref = ref[i+len("/ipfs/"):]
	}
	ref = strings.TrimSuffix(ref, "/")
	if ref == "" {
		return "", fmt.Errorf("%w: empty content reference", ErrUnavailable)
	}
	return ref, nil
}
