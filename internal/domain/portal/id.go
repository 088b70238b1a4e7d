package portal

import (
	"fmt"
	"sync/atomic"
)

// idCounter hands out process-wide unique portal IDs. The zero ID is
// reserved, so the first Add result (1) is the first valid ID.
var idCounter atomic.Uint64

// ID is a monotonically-increasing unique portal identifier.
//
// IDs are assigned per process and never persisted; a world rebuilt from a
// saved document gets fresh IDs, so callers must not assume stable IDs
// across sessions.
type ID uint64

// NewID returns the next unique ID. Panics on overflow.
func NewID() ID {
	id := idCounter.Add(1)
	if id == 0 {
		panic("portal ID overflow")
	}
	return ID(id)
}

// String returns the display form "#N".
func (id ID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}
