// Package idgen provides document ID generation.
package idgen

import (
	"github.com/rs/xid"

	"github.com/runoshun/editflow/internal/domain"
)

// XID generates globally unique, time-sortable 20-character IDs.
type XID struct{}

// NewID returns a new xid string.
func (XID) NewID() string {
	return xid.New().String()
}

// Ensure XID implements domain.IDGenerator.
var _ domain.IDGenerator = XID{}
