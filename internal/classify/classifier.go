package classify

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kartavantaj/kampanya/internal/model"
)

// Scan limits keep scoring linear on pathological inputs. The lede of a
// campaign page carries nearly all of the sector signal.
const (
	brandScanLimit   = 3000
	keywordScanLimit = 1000
	titleWeight      = 5
)

// Result is the sector decision for one campaign.
type Result struct {
	Brand       string
	SectorSlug  string
	Category    string
	Confidence  model.Confidence
	Method      model.ClassificationMethod
	NeedsManual bool
}

// foldedBrand pairs a dictionary entry with its match key. The key is
// folded with the same Turkish caser the normalizer applies to campaign
// text, so entries like "İstanbul" line up with the normalized input.
type foldedBrand struct {
	entry model.BrandEntry
	name  string
}

// Classifier assigns a sector to campaign text using a brand dictionary
// first and weighted keyword scoring second.
type Classifier struct {
	brands  []model.BrandEntry
	sectors []model.SectorDefinition
	byLen   []foldedBrand
}

// New builds a classifier over the given dictionaries. Keyword entries
// are expected lowercase; brand names are folded here.
func New(brands []model.BrandEntry, sectors []model.SectorDefinition) *Classifier {
	lower := cases.Lower(language.Turkish)
	byLen := make([]foldedBrand, 0, len(brands))
	for _, b := range brands {
		name := strings.TrimSpace(lower.String(b.Name))
		if name == "" {
			continue
		}
		byLen = append(byLen, foldedBrand{entry: b, name: name})
	}
	// Longest name first so "getir yemek" beats "getir".
	sort.SliceStable(byLen, func(i, j int) bool {
		return len(byLen[i].name) > len(byLen[j].name)
	})
	return &Classifier{brands: brands, sectors: sectors, byLen: byLen}
}

// Classify decides a sector for the normalized title and body text.
func (c *Classifier) Classify(title, text string) Result {
	body := text
	if len(body) > brandScanLimit {
		body = body[:brandScanLimit]
	}

	brand, mapped := c.matchBrand(title, body)
	if mapped != nil {
		return Result{
			Brand:      brand,
			SectorSlug: mapped.Slug,
			Category:   mapped.Name,
			Confidence: model.ConfidenceHigh,
			Method:     model.MethodBrandMapping,
		}
	}

	slug, category, conf := c.scoreKeywords(title, text)
	if slug == "" {
		return Result{
			Brand:       brand,
			SectorSlug:  model.FallbackSectorSlug,
			Category:    model.FallbackCategory,
			Confidence:  model.ConfidenceLow,
			Method:      model.MethodFallback,
			NeedsManual: true,
		}
	}
	return Result{
		Brand:      brand,
		SectorSlug: slug,
		Category:   category,
		Confidence: conf,
		Method:     model.MethodKeywordScoring,
	}
}

// matchBrand returns the first brand whose name occurs in the title,
// longest names first; the body lede is scanned only when no brand is in
// the title. The second return value is non-nil only when the matched
// brand maps to a sector.
func (c *Classifier) matchBrand(title, body string) (string, *model.SectorDefinition) {
	for _, haystack := range []string{title, body} {
		for _, b := range c.byLen {
			if !strings.Contains(haystack, b.name) {
				continue
			}
			if b.entry.SectorSlug == "" {
				return b.entry.Name, nil
			}
			for i := range c.sectors {
				if c.sectors[i].Slug == b.entry.SectorSlug {
					return b.entry.Name, &c.sectors[i]
				}
			}
			return b.entry.Name, nil
		}
	}
	return "", nil
}

// scoreKeywords runs weighted occurrence counting: a title hit is worth
// titleWeight body hits. Ties keep the earlier sector in the taxonomy.
func (c *Classifier) scoreKeywords(title, text string) (string, string, model.Confidence) {
	if len(text) > keywordScanLimit {
		text = text[:keywordScanLimit]
	}

	bestIdx := -1
	bestScore := 0
	bestTitleHits := 0
	bestBodyHits := 0
	for i, s := range c.sectors {
		titleHits, bodyHits := 0, 0
		for _, kw := range s.Keywords {
			titleHits += strings.Count(title, kw)
			bodyHits += strings.Count(text, kw)
		}
		score := titleHits*titleWeight + bodyHits
		if score > bestScore {
			bestIdx, bestScore = i, score
			bestTitleHits, bestBodyHits = titleHits, bodyHits
		}
	}
	if bestIdx < 0 {
		return "", "", model.ConfidenceLow
	}

	conf := model.ConfidenceLow
	switch {
	case bestTitleHits >= 1 && bestTitleHits+bestBodyHits >= 2:
		conf = model.ConfidenceHigh
	case bestTitleHits >= 1 || bestBodyHits >= 2:
		conf = model.ConfidenceMedium
	}
	return c.sectors[bestIdx].Slug, c.sectors[bestIdx].Name, conf
}
