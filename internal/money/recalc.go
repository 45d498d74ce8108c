package money

import "github.com/kartavantaj/kampanya/internal/model"

// Recalculate derives the single "spend required for the stated maximum
// benefit" from the reward structure and rewrites MinSpend accordingly.
// It is pure and idempotent: the pipeline re-runs it after a referee
// merge, so the final requirement is always deterministic.
//
// Skipped entirely for mixed-currency text, where the arithmetic would be
// unsound.
func Recalculate(r Result) Result {
	if r.HasMixedCurrency {
		return r
	}

	// Cap resolution: an incremental "toplam" figure wins over an
	// independently matched cap, but a disagreement between the two is a
	// conflict worth a manual look, not something to resolve silently.
	capAmount := r.explicitCap
	if r.statedTotal > 0 {
		if r.incrementStep > 0 && capAmount > 0 && capAmount != r.statedTotal {
			r.Flags = appendFlag(r.Flags, model.FlagIncrementalTotalConflict)
		}
		capAmount = r.statedTotal
	}
	if capAmount == 0 {
		// MaxDiscount may have been filled by the referee merge.
		capAmount = r.MaxDiscount
	}

	var required *int
	switch {
	case r.incrementStep > 0 && r.incrementReward > 0:
		if capAmount > 0 {
			req := ceilDiv(capAmount, r.incrementReward) * r.incrementStep
			required = &req
		} else {
			r.Flags = appendFlag(r.Flags, model.FlagNoCapInIncremental)
			req := r.incrementStep
			required = &req
		}

	case r.DiscountPercentage > 0 && capAmount > 0:
		req := ceilDiv(capAmount*100, r.DiscountPercentage)
		required = &req

	case capAmount > 0:
		r.Flags = appendFlag(r.Flags, model.FlagCapWithoutRate)

	case r.MinSpend > 0:
		req := r.MinSpend
		required = &req

	case r.pointsReward:
		r.Flags = appendFlag(r.Flags, model.FlagNoCapForPointsReward)
	}

	// The requirement never undercuts the detected minimum spend, and once
	// computed it becomes the minimum spend: min_spend represents "spend to
	// reach the stated maximum benefit".
	if required != nil {
		if *required < r.MinSpend {
			*required = r.MinSpend
		}
		r.RequiredSpend = required
		r.MinSpend = *required
	}

	return r
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
