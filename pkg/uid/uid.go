// Package uid generates record identifiers in the 5-digit format the sheet
// already contains. The format predates this service and is kept for
// compatibility with stored rows; it is not collision-proof under rapid
// creation, which is acceptable for a single low-volume user.
package uid

import (
	"fmt"
	"math/rand"
	"time"
)

// New returns a 5-character numeric identifier: the last three digits of the
// current Unix millisecond timestamp followed by a zero-padded random value
// in [0,100).
func New() string {
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("%03d%02d", millis%1000, rand.Intn(100))
}
