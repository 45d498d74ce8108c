package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/normalize"
)

// Range is the validity window extracted from campaign text. Empty strings
// mean the endpoint was absent from the source.
type Range struct {
	From  string           // ISO date (YYYY-MM-DD)
	Until string           // ISO date (YYYY-MM-DD)
	Flags []model.DateFlag // Heuristics that fired
}

const isoDate = "2006-01-02"

var months = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
}

const monthAlt = `(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)`

// Pattern families in strict priority order. Text is normalized and
// suffix-stripped before matching, so dashes are ASCII and "2025'e kadar"
// arrives as "2025 kadar".
var (
	// 1. DD.MM.YYYY - DD.MM.YYYY
	fullRangeRe = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})\s*-\s*(\d{1,2})[./](\d{1,2})[./](\d{4})`)

	// 2. DD.MM - DD.MM (no year)
	shortRangeRe = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})\s*-\s*(\d{1,2})[./](\d{1,2})`)

	// 3. D - D Month [YYYY]
	dayRangeRe = regexp.MustCompile(`(\d{1,2})\s*-\s*(\d{1,2})\s+` + monthAlt + `(?:\s+(\d{4}))?`)

	// 4. D Month [YYYY] ... D Month [YYYY], possibly cross-month
	textualRangeRe = regexp.MustCompile(`(\d{1,2})\s+` + monthAlt + `(?:\s+(\d{4}))?\s*(?:-|ile|ila|ve)?\s*(\d{1,2})\s+` + monthAlt + `(?:\s+(\d{4}))?`)

	// 5. Individual mentions for the fallback scan
	textualDateRe = regexp.MustCompile(`(\d{1,2})\s+` + monthAlt + `(?:\s+(\d{4}))?`)
	numericDateRe = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`)
	monthEndRe    = regexp.MustCompile(monthAlt + `\s+sonuna\s+kadar`)
)

var untilSignals = []string{"kadar", "son gün", "son tarih"}

// Parser extracts a validity window from normalized campaign text.
// Fully-qualified patterns are trusted unconditionally; weaker heuristics
// are last-resort and always flagged.
type Parser struct{}

// NewParser creates a date parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs the pattern families in priority order against normalized
// text. today drives year inference for patterns that omit the year.
func (p *Parser) Parse(text string, today time.Time) Range {
	stripped := normalize.StripSuffixes(text)

	if r, ok := p.fullRange(stripped); ok {
		return r
	}
	if r, ok := p.shortRange(stripped, today); ok {
		return r
	}
	if r, ok := p.dayRange(stripped, today); ok {
		return r
	}
	if r, ok := p.textualRange(stripped, today); ok {
		return r
	}
	return p.fallback(stripped, today)
}

// fullRange handles DD.MM.YYYY - DD.MM.YYYY. Both ends explicit, no
// inference, no flags.
func (p *Parser) fullRange(text string) (Range, bool) {
	m := fullRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}

	from, ok1 := makeDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]))
	until, ok2 := makeDate(atoi(m[6]), time.Month(atoi(m[5])), atoi(m[4]))
	if !ok1 || !ok2 {
		return Range{}, false
	}

	return Range{From: from.Format(isoDate), Until: until.Format(isoDate)}, true
}

// shortRange handles DD.MM - DD.MM with the year inferred from today.
// If the computed end precedes the start, the end's year rolls forward.
func (p *Parser) shortRange(text string, today time.Time) (Range, bool) {
	m := shortRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}

	startMonth := time.Month(atoi(m[2]))
	year := inferYear(startMonth, today)

	from, ok1 := makeDate(year, startMonth, atoi(m[1]))
	until, ok2 := makeDate(year, time.Month(atoi(m[4])), atoi(m[3]))
	if !ok1 || !ok2 {
		return Range{}, false
	}
	if until.Before(from) {
		until = until.AddDate(1, 0, 0)
	}

	return Range{
		From:  from.Format(isoDate),
		Until: until.Format(isoDate),
		Flags: []model.DateFlag{model.FlagYearInferred},
	}, true
}

// dayRange handles "D - D Month [YYYY]". Equal endpoints mean a single
// mis-punctuated date, not a range.
func (p *Parser) dayRange(text string, today time.Time) (Range, bool) {
	m := dayRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}

	day1, day2 := atoi(m[1]), atoi(m[2])
	month := months[m[3]]

	var flags []model.DateFlag
	year := 0
	if m[4] != "" {
		year = atoi(m[4])
	} else {
		year = inferYear(month, today)
		flags = append(flags, model.FlagYearInferred)
	}

	if day1 == day2 {
		until, ok := makeDate(year, month, day2)
		if !ok {
			return Range{}, false
		}
		flags = append(flags, model.FlagSingleDateFromInvalidRange)
		return Range{Until: until.Format(isoDate), Flags: flags}, true
	}

	from, ok1 := makeDate(year, month, day1)
	until, ok2 := makeDate(year, month, day2)
	if !ok1 || !ok2 {
		return Range{}, false
	}

	return Range{From: from.Format(isoDate), Until: until.Format(isoDate), Flags: flags}, true
}

// textualRange handles "D Month [YYYY] ... D Month [YYYY]" with both ends
// parsed independently. A missing year on one end borrows the other end's
// explicit year; when both are missing the start month decides.
func (p *Parser) textualRange(text string, today time.Time) (Range, bool) {
	m := textualRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}

	fromDay, fromMonth := atoi(m[1]), months[m[2]]
	untilDay, untilMonth := atoi(m[4]), months[m[5]]

	var flags []model.DateFlag
	fromYear, untilYear := 0, 0
	switch {
	case m[3] != "" && m[6] != "":
		fromYear, untilYear = atoi(m[3]), atoi(m[6])
	case m[3] != "":
		fromYear = atoi(m[3])
		untilYear = fromYear
	case m[6] != "":
		untilYear = atoi(m[6])
		fromYear = untilYear
	default:
		fromYear = inferYear(fromMonth, today)
		untilYear = fromYear
		flags = append(flags, model.FlagYearInferred)
	}

	from, ok1 := makeDate(fromYear, fromMonth, fromDay)
	until, ok2 := makeDate(untilYear, untilMonth, untilDay)
	if !ok1 || !ok2 {
		return Range{}, false
	}

	if from.Equal(until) {
		flags = append(flags, model.FlagSingleDateFromInvalidRange)
		return Range{Until: until.Format(isoDate), Flags: flags}, true
	}

	if from.After(until) {
		until = until.AddDate(1, 0, 0)
		flags = appendUnique(flags, model.FlagYearInferred)
	}

	return Range{From: from.Format(isoDate), Until: until.Format(isoDate), Flags: flags}, true
}

// fallback scans individual date mentions and picks the one whose
// surrounding window carries an "until" signal; failing that, computes the
// true last calendar day from a "<Month> sonuna kadar" phrase.
func (p *Parser) fallback(text string, today time.Time) Range {
	type mention struct {
		date     time.Time
		inferred bool
		start    int
		end      int
	}
	var mentions []mention

	for _, idx := range textualDateRe.FindAllStringSubmatchIndex(text, -1) {
		day := atoi(text[idx[2]:idx[3]])
		month := months[text[idx[4]:idx[5]]]
		year, inferred := 0, false
		if idx[6] >= 0 {
			year = atoi(text[idx[6]:idx[7]])
		} else {
			year = inferYear(month, today)
			inferred = true
		}
		if d, ok := makeDate(year, month, day); ok {
			mentions = append(mentions, mention{d, inferred, idx[0], idx[1]})
		}
	}
	for _, idx := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		day := atoi(text[idx[2]:idx[3]])
		month := time.Month(atoi(text[idx[4]:idx[5]]))
		year := atoi(text[idx[6]:idx[7]])
		if d, ok := makeDate(year, month, day); ok {
			mentions = append(mentions, mention{d, false, idx[0], idx[1]})
		}
	}

	for _, m := range mentions {
		if hasUntilSignal(window(text, m.start-20, m.end+50)) {
			r := Range{Until: m.date.Format(isoDate)}
			if m.inferred {
				r.Flags = []model.DateFlag{model.FlagYearInferred}
			}
			return r
		}
	}

	if m := monthEndRe.FindStringSubmatch(text); m != nil {
		month := months[m[1]]
		year := inferYear(month, today)
		// Day 0 of the next month is the true last day of this one.
		last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
		return Range{
			Until: last.Format(isoDate),
			Flags: []model.DateFlag{model.FlagMonthEndFallback, model.FlagYearInferred},
		}
	}

	return Range{}
}

// inferYear picks the current year when the month has not yet passed,
// otherwise next year. Campaign copy is inconsistent about years, so this
// is the only safe default.
func inferYear(month time.Month, today time.Time) int {
	if month >= today.Month() {
		return today.Year()
	}
	return today.Year() + 1
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers like 31 Nisan -> 1 Mayıs
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

func hasUntilSignal(window string) bool {
	for _, sig := range untilSignals {
		if strings.Contains(window, sig) {
			return true
		}
	}
	return false
}

func window(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

func appendUnique(flags []model.DateFlag, f model.DateFlag) []model.DateFlag {
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

// String renders the range for logs.
func (r Range) String() string {
	return fmt.Sprintf("from=%q until=%q flags=%v", r.From, r.Until, r.Flags)
}
