package ipfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		{"ipfs://QmAbc", "QmAbc"},
		{"https://ipfs.io/ipfs/QmAbc", "QmAbc"},
		{"http://127.0.0.1:8080/ipfs/QmAbc/", "QmAbc"},
		{"  QmAbc ", "QmAbc"},
	}
	for _, tt := range tests {
		got, err := canonicalRef(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCanonicalRefEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "ipfs://", "https://ipfs.io/ipfs/"} {
		_, err := canonicalRef(in)
		assert.ErrorIs(t, err, ErrUnavailable, "input %q", in)
	}
}
