package model

// ExtractedRecord is the structured result of running the extraction
// pipeline over a single campaign document. It is immutable once returned;
// the persistence layer merges it with scraper-supplied fields downstream.
type ExtractedRecord struct {
	// Date facts
	ValidFrom  string     `json:"valid_from,omitempty"`  // ISO date (YYYY-MM-DD), empty when absent
	ValidUntil string     `json:"valid_until,omitempty"` // ISO date (YYYY-MM-DD), empty when absent
	DateFlags  []DateFlag `json:"date_flags,omitempty"`  // Which date heuristics fired

	// Money facts
	MinSpend            int        `json:"min_spend"`                                // Minimum qualifying spend (0 = none found)
	MinSpendCurrency    Currency   `json:"min_spend_currency,omitempty"`             // Currency of MinSpend
	Earning             string     `json:"earning,omitempty"`                        // Reward text as it appeared (e.g. "150 TL chip-para")
	Discount            string     `json:"discount,omitempty"`                       // Installment/discount text (e.g. "6 taksit")
	MaxDiscount         int        `json:"max_discount,omitempty"`                   // Reward cap, 0 when absent
	MaxDiscountCurrency Currency   `json:"max_discount_currency,omitempty"`          // Currency of MaxDiscount
	DiscountPercentage  int        `json:"discount_percentage,omitempty"`            // Percentage reward rate, 0 when absent
	RequiredSpend       *int       `json:"required_spend_for_max_benefit,omitempty"` // Spend needed to reach the stated maximum benefit
	MathFlags           []MathFlag `json:"math_flags,omitempty"`                     // Diagnostic flags from the math pass
	HasMixedCurrency    bool       `json:"has_mixed_currency"`                       // More than one currency family in the text

	// Eligibility facts
	EligibleCards []string `json:"eligible_cards,omitempty"` // Reference-list order, negated mentions excluded

	// Operational facts
	ParticipationMethod ParticipationMethod `json:"participation_method,omitempty"` // Empty when no trigger matched
	SpendChannel        SpendChannel        `json:"spend_channel"`                  // UNKNOWN when no trigger matched
	SpendChannelDetail  string              `json:"spend_channel_detail,omitempty"` // Trigger phrase that decided the channel

	// Classification facts
	Brand                string               `json:"brand,omitempty"`       // Canonical brand name from the dictionary
	SectorSlug           string               `json:"sector_slug"`           // Winning sector slug ("diger" fallback)
	Category             string               `json:"category"`              // Display name of the winning sector
	SectorConfidence     Confidence           `json:"sector_confidence"`     // high/medium/low per classification rule
	ClassificationMethod ClassificationMethod `json:"classification_method"` // How the sector was decided

	// Review facts
	NeedsManualSector bool `json:"needs_manual_sector"`
	NeedsManualMath   bool `json:"needs_manual_math"`
	NeedsManualReward bool `json:"needs_manual_reward"`

	// AISuggestion is the referee's opinion, retained for review only.
	// It never replaces a confident deterministic value.
	AISuggestion *MathSuggestion `json:"ai_suggestion,omitempty"`
}

// MathSuggestion is the referee's partial view of the money facts.
// Nil pointers mean the referee offered no opinion on that field.
type MathSuggestion struct {
	MinSpend           *int    `json:"min_spend,omitempty"`
	Earning            *string `json:"earning,omitempty"`
	Discount           *string `json:"discount,omitempty"`
	MaxDiscount        *int    `json:"max_discount,omitempty"`
	DiscountPercentage *int    `json:"discount_percentage,omitempty"`
	ValidUntil         *string `json:"valid_until,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// Candidate is an internal numeric token classified during the money
// candidate pass. It is never persisted.
type Candidate struct {
	Value    int
	Currency Currency
	Role     CandidateRole
	Position int // Byte offset in the source text
}

// CandidateRole classifies what a numeric token most likely denotes.
type CandidateRole string

const (
	RoleSpend   CandidateRole = "spend"
	RoleReward  CandidateRole = "reward"
	RoleUnknown CandidateRole = "unknown"
)

// HasDateFlag reports whether the record carries the given date flag.
func (r *ExtractedRecord) HasDateFlag(f DateFlag) bool {
	for _, v := range r.DateFlags {
		if v == f {
			return true
		}
	}
	return false
}

// HasMathFlag reports whether the record carries the given math flag.
func (r *ExtractedRecord) HasMathFlag(f MathFlag) bool {
	for _, v := range r.MathFlags {
		if v == f {
			return true
		}
	}
	return false
}
