package model

// SectorDefinition is a collaborator-supplied, read-only entry of the
// merchant-category taxonomy.
type SectorDefinition struct {
	Slug     string   `json:"slug" yaml:"slug"`
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// BrandEntry is a collaborator-supplied, read-only brand dictionary entry.
// SectorSlug, when set, maps the brand to a sector authoritatively.
type BrandEntry struct {
	Name       string `json:"name" yaml:"name"`
	SectorSlug string `json:"sector_slug,omitempty" yaml:"sector_slug,omitempty"`
}

// Catch-all sector used when classification produces no signal.
const (
	FallbackSectorSlug = "diger"
	FallbackCategory   = "Diğer"
)

// DefaultSectors returns the built-in taxonomy used when the collaborator
// store supplies nothing. Keywords are stored lowercase.
func DefaultSectors() []SectorDefinition {
	return []SectorDefinition{
		{Slug: "market-gida", Name: "Market & Gıda", Keywords: []string{"migros", "carrefoursa", "şok market", "a101", "bim", "getir", "yemeksepeti market", "kasap", "şarküteri", "fırın", "market"}},
		{Slug: "akaryakit", Name: "Akaryakıt", Keywords: []string{"shell", "opet", "bp", "petrol ofisi", "totalenergies", "akaryakıt", "benzin", "motorin", "lpg", "istasyon"}},
		{Slug: "giyim-aksesuar", Name: "Giyim & Aksesuar", Keywords: []string{"boyner", "zara", "h&m", "mango", "lcw", "koton", "giyim", "ayakkabı", "çanta", "moda", "aksesuar", "takı", "saat"}},
		{Slug: "restoran-kafe", Name: "Restoran & Kafe", Keywords: []string{"restoran", "yemeksepeti", "getir yemek", "starbucks", "kahve", "cafe", "kafe", "burger king", "mcdonalds", "fast food"}},
		{Slug: "elektronik", Name: "Elektronik", Keywords: []string{"teknosa", "vatan bilgisayar", "media markt", "apple", "samsung", "elektronik", "beyaz eşya", "telefon", "bilgisayar", "tablet", "laptop", "televizyon", "klima"}},
		{Slug: "mobilya-dekorasyon", Name: "Mobilya & Dekorasyon", Keywords: []string{"ikea", "koçtaş", "bauhaus", "mobilya", "dekorasyon", "ev tekstili", "yatak", "mutfak", "halı", "iklimlendirme"}},
		{Slug: "kozmetik-saglik", Name: "Kozmetik & Sağlık", Keywords: []string{"gratis", "watsons", "rossmann", "sephora", "kozmetik", "kişisel bakım", "eczane", "sağlık", "hastane", "parfüm"}},
		{Slug: "e-ticaret", Name: "E-Ticaret", Keywords: []string{"trendyol", "hepsiburada", "amazon", "n11", "pazarama", "çiçeksepeti", "e-ticaret", "online alışveriş"}},
		{Slug: "ulasim", Name: "Ulaşım", Keywords: []string{"thy", "pegasus", "türk hava yolları", "havayolu", "otobüs", "ulaşım", "araç kiralama", "rent a car", "martı", "bitaksi", "uber"}},
		{Slug: "dijital-platform", Name: "Dijital Platform", Keywords: []string{"netflix", "spotify", "youtube premium", "exxen", "disney+", "steam", "playstation", "xbox", "dijital platform", "oyun"}},
		{Slug: "kultur-sanat", Name: "Kültür & Sanat", Keywords: []string{"sinema", "tiyatro", "konser", "biletix", "itunes", "kitap", "etkinlik", "müze", "sanat"}},
		{Slug: "egitim", Name: "Eğitim", Keywords: []string{"okul", "üniversite", "kırtasiye", "kurs", "eğitim", "öğrenim"}},
		{Slug: "sigorta", Name: "Sigorta", Keywords: []string{"sigorta", "kasko", "poliçe", "emeklilik"}},
		{Slug: "otomotiv", Name: "Otomotiv", Keywords: []string{"otomotiv", "servis", "bakım", "yedek parça", "lastik", "oto"}},
		{Slug: "vergi-kamu", Name: "Vergi & Kamu", Keywords: []string{"vergi", "mtv", "belediye", "e-devlet", "kamu", "fatura"}},
		{Slug: "turizm-konaklama", Name: "Turizm & Konaklama", Keywords: []string{"otel", "tatil", "konaklama", "turizm", "acente", "jolly tur", "etstur", "setur", "yurt dışı", "seyahat"}},
	}
}

// DefaultCards returns the reference list of card-product names checked by
// the eligibility extractor. Output order of eligible cards follows this
// list, not occurrence order.
func DefaultCards() []string {
	return []string{
		"Axess", "Wings", "Free", "Akbank Kart", "Neo", "Ticari Kart",
		"Bonus", "World", "Maximum", "Maximiles", "Paraf", "Bankkart",
	}
}
