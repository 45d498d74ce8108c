package model

// DateFlag marks a date heuristic that fired during parsing. The set is
// closed: new flags require a new constant, never an ad hoc string.
type DateFlag string

const (
	// FlagYearInferred is set whenever a year absent from the source text
	// was computed from the reference date.
	FlagYearInferred DateFlag = "year_inferred"

	// FlagSingleDateFromInvalidRange is set when a "D - D Month" range had
	// identical endpoints and was collapsed to a single end date.
	FlagSingleDateFromInvalidRange DateFlag = "single_date_from_invalid_range"

	// FlagMonthEndFallback is set when no explicit end date was found and
	// the deadline was computed from a "<Month> sonuna kadar" phrase.
	FlagMonthEndFallback DateFlag = "month_end_fallback"
)

// MathFlag marks an anomaly detected by the money pass or the referee
// merge. Ambiguous cases are surfaced via flags instead of being silently
// resolved.
type MathFlag string

const (
	// FlagSpendZeroWithSignals: no minimum spend was extracted although the
	// text carries spend-requirement keywords.
	FlagSpendZeroWithSignals MathFlag = "spend_zero_with_signals"

	// FlagSpendMissingButReward: a reward was extracted without any
	// qualifying spend; may be a no-minimum campaign or a miss.
	FlagSpendMissingButReward MathFlag = "spend_missing_but_reward_exists"

	// FlagRewardExceedsSpend: the reward value is at least the minimum
	// spend, which usually means the two were swapped in the source.
	FlagRewardExceedsSpend MathFlag = "reward_exceeds_spend"

	// FlagNoCapInIncremental: an incremental reward ("her X TL'ye Y")
	// had no stated total, so the requirement covers a single step only.
	FlagNoCapInIncremental MathFlag = "no_cap_in_incremental"

	// FlagCapWithoutRate: a cap was found but neither a percentage nor an
	// increment explains how to reach it.
	FlagCapWithoutRate MathFlag = "cap_without_rate"

	// FlagNoCapForPointsReward: an open-ended points/cashback reward with
	// no cap and no increment; no requirement can be computed.
	FlagNoCapForPointsReward MathFlag = "no_cap_for_points_reward"

	// FlagIncrementalTotalConflict: the "toplam" figure of an incremental
	// reward disagrees with an independently extracted cap.
	FlagIncrementalTotalConflict MathFlag = "incremental_total_conflict"

	// FlagMixedCurrency: more than one currency family appears in the text,
	// so the spend arithmetic was skipped entirely.
	FlagMixedCurrency MathFlag = "mixed_currency"

	// FlagRefereeUnavailable: escalation was attempted but the referee
	// call failed; the record is deterministic-only.
	FlagRefereeUnavailable MathFlag = "ai_referee_unavailable"
)

// AI conflict flags, one per overlapping money field. Raised when the
// referee disagrees with a non-trivial deterministic value.
const (
	FlagAIConflictMinSpend           MathFlag = "ai_conflict_min_spend"
	FlagAIConflictEarning            MathFlag = "ai_conflict_earning"
	FlagAIConflictDiscount           MathFlag = "ai_conflict_discount"
	FlagAIConflictMaxDiscount        MathFlag = "ai_conflict_max_discount"
	FlagAIConflictDiscountPercentage MathFlag = "ai_conflict_discount_percentage"
)

// Currency identifies a currency family from the fixed symbol table.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// ParticipationMethod classifies how a customer enrolls in a campaign.
// The empty string means no trigger matched; the extractor never guesses.
type ParticipationMethod string

const (
	ParticipationAuto       ParticipationMethod = "AUTO"
	ParticipationSMS        ParticipationMethod = "SMS"
	ParticipationJuzdan     ParticipationMethod = "JUZDAN"
	ParticipationMobileApp  ParticipationMethod = "MOBILE_APP"
	ParticipationCallCenter ParticipationMethod = "CALL_CENTER"
	ParticipationWeb        ParticipationMethod = "WEB"
)

// SpendChannel classifies where the qualifying spend must happen.
type SpendChannel string

const (
	ChannelInStorePOS       SpendChannel = "IN_STORE_POS"
	ChannelOnline           SpendChannel = "ONLINE"
	ChannelInApp            SpendChannel = "IN_APP"
	ChannelMerchantSpecific SpendChannel = "MERCHANT_SPECIFIC"
	ChannelMemberMerchant   SpendChannel = "MEMBER_MERCHANT"
	ChannelUnknown          SpendChannel = "UNKNOWN"
)

// Confidence is the three-tier certainty of the sector classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ClassificationMethod records how the sector was decided.
type ClassificationMethod string

const (
	// MethodBrandMapping: the matched brand carried a sector mapping.
	// Authoritative; short-circuits keyword scoring.
	MethodBrandMapping ClassificationMethod = "brand_mapping"

	// MethodKeywordScoring: weighted keyword occurrence scoring.
	MethodKeywordScoring ClassificationMethod = "keyword_scoring"

	// MethodFallback: zero score everywhere, catch-all sector assigned.
	MethodFallback ClassificationMethod = "fallback"
)
