package ids

import "github.com/segmentio/ksuid"

// New returns a new sortable string id.
func New() string {
	return ksuid.New().String()
}
