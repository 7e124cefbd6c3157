// Package refgen produces human-readable transaction references.
package refgen

import (
	"fmt"
	"math/rand"
	"time"
)

// MaxAttempts bounds the regenerate-and-retry loop callers run when an insert
// hits the unique constraint on reference. Collisions need the same
// millisecond and the same 3-digit suffix, so exhausting this is an
// operational alarm, not a normal error path.
const MaxAttempts = 5

// Generate returns a reference of the form TXN-<millisecond epoch>-<3 digits>.
// Uniqueness is enforced by the database; callers retry on collision.
func Generate() string {
	return fmt.Sprintf("TXN-%d-%d", time.Now().UnixMilli(), 100+rand.Intn(900))
}
