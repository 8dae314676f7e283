package invoice

import (
	"fmt"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`^INV-\d+-(\d+)$`)

// NextNumber allocates the invoice number following latest, formatted as
// INV-<year>-<seq> with the sequence zero-padded to at least three digits.
// The year is always the current calendar year at allocation time while the
// sequence continues from the latest number regardless of its year, so the
// counter does not reset at a year boundary. That is long-standing contract:
// consumers sort on the globally increasing sequence, and a reset would
// reissue old sequence values under a new prefix.
func NextNumber(year int, latest string) string {
	seq := 1

	if m := numberPattern.FindStringSubmatch(latest); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			seq = n + 1
		}
	}

	return fmt.Sprintf("INV-%d-%03d", year, seq)
}
