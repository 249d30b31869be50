package idgen

import (
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXID_NewID(t *testing.T) {
	gen := XID{}
	seen := make(map[string]bool)
	for range 100 {
		id := gen.NewID()
		assert.Len(t, id, 20)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		_, err := xid.FromString(id)
		require.NoError(t, err)
	}
}
