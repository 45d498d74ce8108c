package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/referee"
)

var testToday = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

func TestPipeline_FullExtraction(t *testing.T) {
	p := New(Options{
		Brands: []model.BrandEntry{{Name: "opet", SectorSlug: "akaryakit"}},
	})

	doc := Document{
		Title: "Opet'te Axess'e özel chip-para",
		Text: "1500 TL ve üzeri her akaryakıt harcamanıza 150 TL chip-para kazanın. " +
			"Kampanya boyunca toplam 450 TL chip-para kazanabilirsiniz. " +
			"Kampanya 31 Aralık 2025'e kadar geçerlidir. " +
			"Katılım için KAMPANYA yazıp SMS gönderin. Wings kartlar kampanyaya dahil değildir.",
		Today: testToday,
	}

	rec := p.Extract(context.Background(), doc)

	if rec.ValidUntil != "2025-12-31" {
		t.Errorf("Expected valid_until 2025-12-31, got %q", rec.ValidUntil)
	}
	if rec.RequiredSpend == nil || *rec.RequiredSpend != 4500 {
		t.Errorf("Expected required spend 4500, got %v", rec.RequiredSpend)
	}
	if rec.MinSpend != 4500 {
		t.Errorf("Expected min spend 4500 after recalculation, got %d", rec.MinSpend)
	}
	if rec.Earning != "150 tl chip-para" {
		t.Errorf("Expected earning %q, got %q", "150 tl chip-para", rec.Earning)
	}
	if len(rec.EligibleCards) != 1 || rec.EligibleCards[0] != "Axess" {
		t.Errorf("Expected only Axess eligible, got %v", rec.EligibleCards)
	}
	if rec.ParticipationMethod != model.ParticipationSMS {
		t.Errorf("Expected SMS participation, got %s", rec.ParticipationMethod)
	}
	if rec.SectorSlug != "akaryakit" || rec.ClassificationMethod != model.MethodBrandMapping {
		t.Errorf("Expected brand-mapped akaryakit, got %s via %s", rec.SectorSlug, rec.ClassificationMethod)
	}
	if rec.NeedsManualMath {
		t.Errorf("Expected clean math, flags: %v", rec.MathFlags)
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	p := New(Options{})

	doc := Document{
		Title: "Market kampanyası",
		Text:  "500 TL ve üzeri market alışverişinize 50 TL bonus. 30 Kasım'a kadar geçerlidir.",
		Today: testToday,
	}

	a := p.Extract(context.Background(), doc)
	b := p.Extract(context.Background(), doc)

	if a.MinSpend != b.MinSpend || a.ValidUntil != b.ValidUntil || a.SectorSlug != b.SectorSlug {
		t.Errorf("Same input produced different records: %+v vs %+v", a, b)
	}
}

func TestPipeline_UnknownChannelAndEmptyParticipation(t *testing.T) {
	p := New(Options{})

	rec := p.Extract(context.Background(), Document{
		Title: "Sürpriz kampanya",
		Text:  "Detaylar çok yakında.",
		Today: testToday,
	})

	if rec.SpendChannel != model.ChannelUnknown {
		t.Errorf("Expected UNKNOWN channel, got %s", rec.SpendChannel)
	}
	if rec.ParticipationMethod != "" {
		t.Errorf("Expected empty participation, got %s", rec.ParticipationMethod)
	}
	if rec.SectorSlug != model.FallbackSectorSlug || !rec.NeedsManualSector {
		t.Errorf("Expected fallback sector needing review, got %s", rec.SectorSlug)
	}
}

func TestPipeline_MixedCurrencyFlagsManualMath(t *testing.T) {
	p := New(Options{})

	rec := p.Extract(context.Background(), Document{
		Title: "Yurt dışı kampanyası",
		Text:  "Yurt dışında $50 harcamanıza, yurt içinde 1000 TL ve üzeri harcamanıza 100 TL bonus.",
		Today: testToday,
	})

	if !rec.HasMixedCurrency {
		t.Fatal("Expected mixed currency to be detected")
	}
	if !rec.HasMathFlag(model.FlagMixedCurrency) {
		t.Errorf("Expected mixed_currency flag, got %v", rec.MathFlags)
	}
	if !rec.NeedsManualMath {
		t.Error("Expected manual math review for mixed currency")
	}

	// A review verdict always names its reason in the flags.
	reason := false
	for _, f := range rec.MathFlags {
		if f != model.FlagRefereeUnavailable {
			reason = true
		}
	}
	if rec.NeedsManualMath && !reason {
		t.Errorf("needs_manual_math without a math flag: %v", rec.MathFlags)
	}
}

// stubReferee returns a canned suggestion or error.
type stubReferee struct {
	suggestion *model.MathSuggestion
	err        error
	calls      int
}

func (s *stubReferee) Name() string { return "stub" }

func (s *stubReferee) Suggest(ctx context.Context, req referee.Request) (*model.MathSuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

func TestPipeline_RefereeFillsMissingSpend(t *testing.T) {
	min := 1000
	stub := &stubReferee{suggestion: &model.MathSuggestion{MinSpend: &min}}
	p := New(Options{Referee: stub})

	// Reward without any spend tier triggers escalation
	rec := p.Extract(context.Background(), Document{
		Title: "Bonus fırsatı",
		Text:  "Kampanyaya katılın, 100 TL bonus hediye.",
		Today: testToday,
	})

	if stub.calls != 1 {
		t.Fatalf("Expected one referee call, got %d", stub.calls)
	}
	if rec.MinSpend != 1000 {
		t.Errorf("Expected referee-filled min spend 1000, got %d", rec.MinSpend)
	}
	if rec.RequiredSpend == nil || *rec.RequiredSpend != 1000 {
		t.Errorf("Expected requirement recalculated from fill, got %v", rec.RequiredSpend)
	}
	if rec.AISuggestion == nil {
		t.Error("Expected suggestion retained on the record")
	}
}

func TestPipeline_RefereeConflictKeepsDeterministicValue(t *testing.T) {
	other := 9999
	stub := &stubReferee{suggestion: &model.MathSuggestion{MaxDiscount: &other}}
	p := New(Options{Referee: stub})

	rec := p.Extract(context.Background(), Document{
		Title: "Chip-para kampanyası",
		Text:  "Tüm harcamalarınıza %10 chip-para, maksimum 300 TL.",
		Today: testToday,
	})

	if rec.MaxDiscount != 300 {
		t.Errorf("Expected deterministic cap 300 kept, got %d", rec.MaxDiscount)
	}
	if !rec.HasMathFlag(model.FlagAIConflictMaxDiscount) {
		t.Errorf("Expected conflict flag, got %v", rec.MathFlags)
	}
	if !rec.NeedsManualMath {
		t.Error("Expected manual math review on conflict")
	}
}

func TestPipeline_RefereeFailureIsFlagged(t *testing.T) {
	stub := &stubReferee{err: fmt.Errorf("timeout")}
	p := New(Options{Referee: stub})

	rec := p.Extract(context.Background(), Document{
		Title: "Bonus fırsatı",
		Text:  "Kampanyaya katılın, 100 TL bonus hediye.",
		Today: testToday,
	})

	if !rec.HasMathFlag(model.FlagRefereeUnavailable) {
		t.Errorf("Expected ai_referee_unavailable flag, got %v", rec.MathFlags)
	}
	if !rec.NeedsManualMath {
		t.Error("Expected manual math review when the referee is down")
	}
}

func TestPipeline_NoRefereeNoEscalation(t *testing.T) {
	p := New(Options{})

	rec := p.Extract(context.Background(), Document{
		Title: "Bonus fırsatı",
		Text:  "Kampanyaya katılın, 100 TL bonus hediye.",
		Today: testToday,
	})

	if rec.HasMathFlag(model.FlagRefereeUnavailable) {
		t.Errorf("Disabled referee must not flag unavailability, got %v", rec.MathFlags)
	}
	if rec.AISuggestion != nil {
		t.Error("Expected no suggestion without a referee")
	}
}
