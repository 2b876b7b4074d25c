package store

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newID returns a random 16 character lowercase hex id. Ids are not checked
// for collisions.
func newID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:8])
}
