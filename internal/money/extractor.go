package money

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/normalize"
)

// Result carries the extracted money facts plus the internal signals the
// recalculator needs. Fields that exist only to drive recalculation are
// unexported and never leave this package.
type Result struct {
	MinSpend            int
	MinSpendCurrency    model.Currency
	Earning             string
	Discount            string
	MaxDiscount         int
	MaxDiscountCurrency model.Currency
	DiscountPercentage  int
	RequiredSpend       *int
	Flags               []model.MathFlag
	HasMixedCurrency    bool
	NeedsManualReward   bool

	incrementStep   int  // X in "her X TL'ye Y TL"
	incrementReward int  // Y
	statedTotal     int  // "toplam Y TL"
	explicitCap     int  // "maksimum Y TL", "Y TL'ye varan"
	rewardValue     int  // leading number of the reward text
	pointsReward    bool // reward keyword is a points/cashback kind
	spendSignalSeen bool
}

const curAlt = `(₺|tl|try|\$|usd|dolar|€|eur|avro|£|gbp|sterlin)`

// Explicit patterns (step A) and the shared numeric-token scan (step B)
// run on normalized, suffix-stripped text with thousand separators
// collapsed, so "1.500 TL'ye varan" arrives as "1500 tl varan".
var (
	numCurRe = regexp.MustCompile(`(\d+)\s*` + curAlt)
	curNumRe = regexp.MustCompile(curAlt + `\s*(\d+)`)

	spendUpperRe  = regexp.MustCompile(`(\d+)\s*` + curAlt + `\s*(?:ve\s+)?(?:üzeri|üzerinde|üzerindeki)`)
	spendPhraseRe = regexp.MustCompile(`(\d+)\s*` + curAlt + `\s+(?:tutarında|tutarındaki|harcamaya|harcamanıza|alışverişe|alışverişinize|yüklemeye|siparişe|ödemeye)`)
	firstSpendRe  = regexp.MustCompile(`ilk\s+(\d+)\s*` + curAlt)

	capRe   = regexp.MustCompile(`(?:maksimum|max|en fazla)\s*\(?\s*(\d+)\s*` + curAlt)
	totalRe = regexp.MustCompile(`toplam(?:da)?\s*(\d+)\s*` + curAlt)
	varanRe = regexp.MustCompile(`(\d+)\s*` + curAlt + `\s*varan`)

	percentRe     = regexp.MustCompile(`%\s*(\d{1,3})`)
	percentWordRe = regexp.MustCompile(`yüzde\s+(\d{1,3})`)

	// Incremental reward, both word orders: "her 1000 TL'ye 100 TL" and
	// "1500 TL ve üzeri her harcamanıza 150 TL".
	incrementHeadRe = regexp.MustCompile(`her\s+(\d+)\s*` + curAlt + `[^.]{0,50}?(\d+)\s*` + curAlt)
	incrementTailRe = regexp.MustCompile(`(\d+)\s*` + curAlt + `\s*(?:ve\s+)?üzeri\s+her\s+[^.]{0,40}?(\d+)\s*` + curAlt)

	// Step C runs on normalized but unstripped text: the connector tokens
	// between number and reward keyword ("değerinde", "'ye varan") are
	// part of the reward phrase.
	rewardTextRe  = regexp.MustCompile(`(%?\d[\d.,]*)\s*(?:tl|₺)?\s*(?:'?[a-zçğıöşü]{1,12}\s+){0,2}(chip-para|chippara|chip para|puan|bonus|maxipuan|parafpara|worldpuan|mil|indirim|iade|taksit)`)
	installmentRe = regexp.MustCompile(`(\+?\d+)\s*(?:aya\s+varan\s+)?taksit`)

	thousandSepRe = regexp.MustCompile(`(\d)\.(\d{3})`)
	decimalTailRe = regexp.MustCompile(`(\d),\d+`)
)

var spendKeywords = []string{"harcama", "alışveriş", "yükleme", "sipariş", "ödeme", "üzeri", "tutar"}

var rewardKeywords = []string{
	"chip-para", "chippara", "chip para", "puan", "bonus", "maxipuan",
	"parafpara", "worldpuan", "mil", "indirim", "iade", "taksit",
}

var pointsKeywords = []string{
	"chip-para", "chippara", "chip para", "puan", "bonus", "maxipuan",
	"parafpara", "worldpuan", "mil", "iade",
}

var capContextWords = []string{"toplam", "maksimum", "max", "en fazla"}

// Extractor pulls min spend, reward terms, percentage and cap out of
// campaign text. It degrades to zero values on no-match; anomalies are
// surfaced as flags, never as errors.
type Extractor struct{}

// NewExtractor creates a money extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs the explicit-pattern pass, then the keyword-proximity
// candidate pass when no spend was found, then the relaxed reward-text
// pass. Inputs must already be normalized (lowercase, ASCII dashes).
func (e *Extractor) Extract(title, text string) Result {
	var r Result

	flat := flatten(normalize.StripSuffixes(text))
	combined := flatten(normalize.StripSuffixes(title)) + " " + flat

	// Currency inventory across title and body. Mixed-currency text makes
	// every arithmetic step unsound, so it is detected up front.
	seen := currenciesIn(combined)
	if len(seen) > 1 {
		r.HasMixedCurrency = true
		r.Flags = appendFlag(r.Flags, model.FlagMixedCurrency)
	}

	r.spendSignalSeen = hasAny(flat, spendKeywords)

	// Step A: explicit patterns.
	if m := incrementHeadRe.FindStringSubmatch(flat); m != nil {
		r.incrementStep = atoi(m[1])
		r.incrementReward = atoi(m[3])
		r.MinSpend = r.incrementStep
		r.MinSpendCurrency = currencyOf(m[2])
	} else if m := incrementTailRe.FindStringSubmatch(flat); m != nil {
		r.incrementStep = atoi(m[1])
		r.incrementReward = atoi(m[3])
		r.MinSpend = r.incrementStep
		r.MinSpendCurrency = currencyOf(m[2])
	}

	if r.MinSpend == 0 {
		for _, re := range []*regexp.Regexp{spendUpperRe, spendPhraseRe, firstSpendRe} {
			if m := re.FindStringSubmatch(flat); m != nil {
				r.MinSpend = atoi(m[1])
				r.MinSpendCurrency = currencyOf(m[2])
				break
			}
		}
	}

	if m := capRe.FindStringSubmatch(flat); m != nil {
		r.explicitCap = atoi(m[1])
		r.MaxDiscountCurrency = currencyOf(m[2])
	} else if m := varanRe.FindStringSubmatch(flat); m != nil {
		r.explicitCap = atoi(m[1])
		r.MaxDiscountCurrency = currencyOf(m[2])
	}
	if m := totalRe.FindStringSubmatch(flat); m != nil {
		r.statedTotal = atoi(m[1])
		if r.MaxDiscountCurrency == "" {
			r.MaxDiscountCurrency = currencyOf(m[2])
		}
	}
	r.MaxDiscount = r.explicitCap
	if r.MaxDiscount == 0 {
		r.MaxDiscount = r.statedTotal
	}

	if m := percentRe.FindStringSubmatch(combined); m != nil {
		r.DiscountPercentage = atoi(m[1])
	} else if m := percentWordRe.FindStringSubmatch(combined); m != nil {
		r.DiscountPercentage = atoi(m[1])
	}

	// Step B: candidate pass, only when the explicit pass found no spend.
	if r.MinSpend == 0 {
		if c, ok := bestSpendCandidate(flat); ok {
			r.MinSpend = c.Value
			r.MinSpendCurrency = c.Currency
		}
	}

	// Step C: reward text, title first. Installment text is a discount,
	// not a monetary earning.
	m := rewardTextRe.FindStringSubmatch(title)
	if m == nil {
		m = rewardTextRe.FindStringSubmatch(text)
	}
	if m != nil {
		matched := strings.TrimSpace(m[0])
		if strings.Contains(matched, "taksit") {
			r.Discount = matched
		} else {
			r.Earning = matched
			r.rewardValue = atoi(flatten(strings.TrimPrefix(m[1], "%")))
			r.pointsReward = isPointsKeyword(m[2])
		}
	}
	if r.Discount == "" {
		if m := installmentRe.FindStringSubmatch(title); m != nil {
			r.Discount = strings.TrimSpace(m[0])
		} else if m := installmentRe.FindStringSubmatch(text); m != nil {
			r.Discount = strings.TrimSpace(m[0])
		}
	}

	// Diagnostic flags. Guessing silently is worse than flagging.
	if r.MinSpend == 0 && r.spendSignalSeen {
		r.Flags = appendFlag(r.Flags, model.FlagSpendZeroWithSignals)
	}
	if r.MinSpend == 0 && r.Earning != "" {
		r.Flags = appendFlag(r.Flags, model.FlagSpendMissingButReward)
	}
	if r.MinSpend > 0 && r.rewardValue >= r.MinSpend && r.rewardValue > 0 && r.incrementStep == 0 {
		r.Flags = appendFlag(r.Flags, model.FlagRewardExceedsSpend)
	}

	rewardKeywordSeen := hasAny(combined, rewardKeywords)
	r.NeedsManualReward = rewardKeywordSeen && r.Earning == "" && r.Discount == ""

	return r
}

// Escalatable reports whether the result is weak enough to warrant a
// second opinion: suspicious math plus at least one monetary keyword in
// the text.
func Escalatable(r Result, text string) bool {
	suspicious := len(r.Flags) > 0 || r.MinSpend == 0 || r.Earning == ""
	if !suspicious {
		return false
	}
	return hasAny(text, rewardKeywords) || numCurRe.MatchString(flatten(text)) || strings.Contains(text, "%")
}

// bestSpendCandidate classifies every numeric token by the keywords in a
// window around it and picks the highest-value spend. Campaigns typically
// lead with the largest qualifying tier.
func bestSpendCandidate(flat string) (model.Candidate, bool) {
	var best model.Candidate
	found := false

	for _, idx := range numCurRe.FindAllStringSubmatchIndex(flat, -1) {
		value := atoi(flat[idx[2]:idx[3]])
		cur := currencyOf(flat[idx[4]:idx[5]])
		before := snippet(flat, idx[0]-30, idx[0])
		after := snippet(flat, idx[1], idx[1]+40)

		c := model.Candidate{Value: value, Currency: cur, Role: model.RoleUnknown, Position: idx[0]}
		switch {
		case hasAny(after[:min(25, len(after))], rewardKeywords):
			c.Role = model.RoleReward
		case hasAny(before, capContextWords):
			// Cap figure, not a spend tier.
		case hasAny(before, spendKeywords) || hasAny(after, spendKeywords):
			c.Role = model.RoleSpend
		}

		if c.Role == model.RoleSpend && (!found || c.Value > best.Value) {
			best = c
			found = true
		}
	}

	return best, found
}

// flatten collapses Turkish thousand separators and truncates decimal
// tails so "1.500,50" scans as 1500.
func flatten(s string) string {
	for thousandSepRe.MatchString(s) {
		s = thousandSepRe.ReplaceAllString(s, "$1$2")
	}
	return decimalTailRe.ReplaceAllString(s, "$1")
}

func currenciesIn(flat string) map[model.Currency]bool {
	seen := make(map[model.Currency]bool)
	for _, m := range numCurRe.FindAllStringSubmatch(flat, -1) {
		seen[currencyOf(m[2])] = true
	}
	for _, m := range curNumRe.FindAllStringSubmatch(flat, -1) {
		seen[currencyOf(m[1])] = true
	}
	return seen
}

// currencyOf resolves a matched symbol or word via the fixed table.
func currencyOf(tok string) model.Currency {
	switch tok {
	case "₺", "tl", "try":
		return model.CurrencyTRY
	case "$", "usd", "dolar":
		return model.CurrencyUSD
	case "€", "eur", "avro":
		return model.CurrencyEUR
	case "£", "gbp", "sterlin":
		return model.CurrencyGBP
	}
	return model.CurrencyTRY
}

func isPointsKeyword(kw string) bool {
	for _, p := range pointsKeywords {
		if kw == p {
			return true
		}
	}
	return false
}

func hasAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func snippet(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		return ""
	}
	return s[start:end]
}

func appendFlag(flags []model.MathFlag, f model.MathFlag) []model.MathFlag {
	for _, v := range flags {
		if v == f {
			return flags
		}
	}
	return append(flags, f)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
