package invoice

import (
	"fmt"
	"time"

	"github.com/daybillhq/daybill/internal/project"
)

// ComputeAmount derives the amount due, in minor currency units, for an
// invoice generated from a project with the given billing mode and rate.
//
// Fixed-price projects bill the flat rate and ignore the selected days.
// Daily-rate projects bill the rate once per distinct calendar date: the
// selection is a set, so a date passed twice contributes a single unit.
func ComputeAmount(billing project.Billing, rate int64, days []time.Time) (int64, error) {
	switch billing {
	case project.BillingFixedPrice:
		return rate, nil

	case project.BillingDailyRate:
		distinct := make(map[string]struct{}, len(days))
		for _, d := range days {
			distinct[d.Format(time.DateOnly)] = struct{}{}
		}

		if len(distinct) == 0 {
			return 0, fmt.Errorf("%w: at least one workday required", ErrInvalid)
		}

		return rate * int64(len(distinct)), nil

	default:
		return 0, fmt.Errorf("%w: unknown billing mode %q", ErrInvalid, billing)
	}
}
