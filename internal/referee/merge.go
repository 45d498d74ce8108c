package referee

import "github.com/kartavantaj/kampanya/internal/model"

// Merge folds a referee suggestion into the record. The deterministic
// value always wins when it is non-trivial: a disagreement is recorded as
// a conflict flag, never applied. Trivial fields (zero, empty) may be
// filled from the suggestion. Returns true when any field was filled, so
// the caller knows to re-run the spend recalculation.
func Merge(rec *model.ExtractedRecord, s *model.MathSuggestion) bool {
	if s == nil {
		return false
	}
	rec.AISuggestion = s

	filled := false

	if s.MinSpend != nil {
		switch {
		case rec.MinSpend == 0 && *s.MinSpend > 0:
			rec.MinSpend = *s.MinSpend
			filled = true
		case rec.MinSpend != 0 && *s.MinSpend != rec.MinSpend:
			addFlag(rec, model.FlagAIConflictMinSpend)
		}
	}

	if s.Earning != nil {
		switch {
		case rec.Earning == "" && *s.Earning != "":
			rec.Earning = *s.Earning
			filled = true
		case rec.Earning != "" && *s.Earning != rec.Earning:
			addFlag(rec, model.FlagAIConflictEarning)
		}
	}

	if s.Discount != nil {
		switch {
		case rec.Discount == "" && *s.Discount != "":
			rec.Discount = *s.Discount
			filled = true
		case rec.Discount != "" && *s.Discount != rec.Discount:
			addFlag(rec, model.FlagAIConflictDiscount)
		}
	}

	if s.MaxDiscount != nil {
		switch {
		case rec.MaxDiscount == 0 && *s.MaxDiscount > 0:
			rec.MaxDiscount = *s.MaxDiscount
			filled = true
		case rec.MaxDiscount != 0 && *s.MaxDiscount != rec.MaxDiscount:
			addFlag(rec, model.FlagAIConflictMaxDiscount)
		}
	}

	if s.DiscountPercentage != nil {
		switch {
		case rec.DiscountPercentage == 0 && *s.DiscountPercentage > 0:
			rec.DiscountPercentage = *s.DiscountPercentage
			filled = true
		case rec.DiscountPercentage != 0 && *s.DiscountPercentage != rec.DiscountPercentage:
			addFlag(rec, model.FlagAIConflictDiscountPercentage)
		}
	}

	if s.ValidUntil != nil && rec.ValidUntil == "" {
		rec.ValidUntil = *s.ValidUntil
		filled = true
	}

	return filled
}

func addFlag(rec *model.ExtractedRecord, f model.MathFlag) {
	if rec.HasMathFlag(f) {
		return
	}
	rec.MathFlags = append(rec.MathFlags, f)
}
