package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. Challenges carry one for log
// correlation; ULIDs sort lexicographically by creation time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
