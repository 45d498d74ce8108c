package classify

import (
	"testing"

	"github.com/kartavantaj/kampanya/internal/model"
)

func testSectors() []model.SectorDefinition {
	return []model.SectorDefinition{
		{Slug: "market-gida", Name: "Market & Gıda", Keywords: []string{"market", "migros", "gıda"}},
		{Slug: "akaryakit", Name: "Akaryakıt", Keywords: []string{"akaryakıt", "benzin", "istasyon"}},
		{Slug: "e-ticaret", Name: "E-Ticaret", Keywords: []string{"trendyol", "online alışveriş"}},
	}
}

func testBrands() []model.BrandEntry {
	return []model.BrandEntry{
		{Name: "migros", SectorSlug: "market-gida"},
		{Name: "getir", SectorSlug: "market-gida"},
		{Name: "getir yemek", SectorSlug: "restoran-kafe"},
		{Name: "acme"},
	}
}

func TestClassifier_BrandMapping(t *testing.T) {
	c := New(testBrands(), testSectors())

	r := c.Classify("migros alışverişlerinize özel", "kampanya detayları")
	if r.Method != model.MethodBrandMapping {
		t.Fatalf("Expected brand_mapping, got %s", r.Method)
	}
	if r.Brand != "migros" || r.SectorSlug != "market-gida" || r.Category != "Market & Gıda" {
		t.Errorf("Unexpected result: %+v", r)
	}
	if r.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected high confidence for mapped brand, got %s", r.Confidence)
	}
}

func TestClassifier_LongestBrandWins(t *testing.T) {
	c := New(testBrands(), testSectors())

	// "getir yemek" must match before its prefix "getir"
	r := c.Classify("getir yemek siparişlerinde indirim", "")
	if r.Brand != "getir yemek" {
		t.Errorf("Expected brand %q, got %q", "getir yemek", r.Brand)
	}
}

func TestClassifier_TitleBrandBeatsBodyBrand(t *testing.T) {
	brands := []model.BrandEntry{
		{Name: "opet", SectorSlug: "akaryakit"},
		{Name: "carrefoursa", SectorSlug: "market-gida"},
	}
	c := New(brands, testSectors())

	// "carrefoursa" is longer, but only the title brand decides
	r := c.Classify("opet kampanyası", "carrefoursa mağazalarında da geçerli değildir")
	if r.Brand != "opet" {
		t.Fatalf("Expected title brand %q, got %q", "opet", r.Brand)
	}
	if r.SectorSlug != "akaryakit" {
		t.Errorf("Expected akaryakit, got %s", r.SectorSlug)
	}
}

func TestClassifier_BodyBrandWhenTitleMisses(t *testing.T) {
	c := New(testBrands(), testSectors())

	r := c.Classify("haftanın fırsatı", "migros alışverişlerinizde geçerlidir")
	if r.Brand != "migros" {
		t.Errorf("Expected body brand %q, got %q", "migros", r.Brand)
	}
}

func TestClassifier_TurkishUppercaseBrandEntry(t *testing.T) {
	brands := []model.BrandEntry{{Name: "İstanbul Kart", SectorSlug: "e-ticaret"}}
	c := New(brands, testSectors())

	// Input arrives normalized; the dictionary entry must fold the same way
	r := c.Classify("istanbul kart ile ulaşımda indirim", "")
	if r.Brand != "İstanbul Kart" {
		t.Fatalf("Expected brand matched despite dotted capital, got %q", r.Brand)
	}
	if r.Method != model.MethodBrandMapping {
		t.Errorf("Expected brand_mapping, got %s", r.Method)
	}
}

func TestClassifier_UnmappedBrandFallsThroughToKeywords(t *testing.T) {
	c := New(testBrands(), testSectors())

	// "acme" has no sector mapping; keyword scoring decides
	r := c.Classify("acme istasyonlarında benzin alana puan", "akaryakıt kampanyası")
	if r.Brand != "acme" {
		t.Errorf("Expected brand %q carried through, got %q", "acme", r.Brand)
	}
	if r.Method != model.MethodKeywordScoring {
		t.Fatalf("Expected keyword_scoring, got %s", r.Method)
	}
	if r.SectorSlug != "akaryakit" {
		t.Errorf("Expected akaryakit, got %s", r.SectorSlug)
	}
}

func TestClassifier_TitleWeighting(t *testing.T) {
	c := New(nil, testSectors())

	// One title hit outweighs a few body hits of another sector
	r := c.Classify("akaryakıt kampanyası", "market market market alışverişi")
	if r.SectorSlug != "akaryakit" {
		t.Errorf("Expected title hit to win, got %s", r.SectorSlug)
	}
}

func TestClassifier_ConfidenceTiers(t *testing.T) {
	c := New(nil, testSectors())

	// Title hit plus body hit: high
	r := c.Classify("benzin kampanyası", "tüm istasyon harcamalarında geçerli")
	if r.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected high, got %s", r.Confidence)
	}

	// Single title hit, nothing in the body: medium
	r = c.Classify("benzin kampanyası", "detaylar yakında")
	if r.Confidence != model.ConfidenceMedium {
		t.Errorf("Expected medium, got %s", r.Confidence)
	}

	// Single body hit only: low
	r = c.Classify("yeni kampanya", "benzin fırsatı")
	if r.Confidence != model.ConfidenceLow {
		t.Errorf("Expected low, got %s", r.Confidence)
	}
}

func TestClassifier_FallbackSector(t *testing.T) {
	c := New(testBrands(), testSectors())

	r := c.Classify("sürpriz kampanya", "detaylar çok yakında sizlerle")
	if r.SectorSlug != model.FallbackSectorSlug || r.Category != model.FallbackCategory {
		t.Errorf("Expected fallback sector, got %s/%s", r.SectorSlug, r.Category)
	}
	if r.Method != model.MethodFallback {
		t.Errorf("Expected fallback method, got %s", r.Method)
	}
	if !r.NeedsManual {
		t.Error("Expected manual review on fallback")
	}
	if r.Confidence != model.ConfidenceLow {
		t.Errorf("Expected low confidence, got %s", r.Confidence)
	}
}
