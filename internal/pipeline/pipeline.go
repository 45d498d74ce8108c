package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/kartavantaj/kampanya/internal/classify"
	"github.com/kartavantaj/kampanya/internal/dates"
	"github.com/kartavantaj/kampanya/internal/eligibility"
	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/money"
	"github.com/kartavantaj/kampanya/internal/normalize"
	"github.com/kartavantaj/kampanya/internal/referee"
	"github.com/kartavantaj/kampanya/internal/sectorcache"
)

// Document is one campaign to extract from.
type Document struct {
	Title string
	Text  string

	// Today anchors year inference for partial dates. Zero means time.Now.
	Today time.Time
}

// Options wires the pipeline's collaborators. Sectors and Referee are
// optional; everything else has a working default.
type Options struct {
	Brands  []model.BrandEntry
	Cards   []string
	Sectors *sectorcache.Service
	Referee referee.Provider
	Logger  *slog.Logger
}

// Pipeline orchestrates the full extraction: normalize, dates, money,
// eligibility, classification, then the optional referee escalation.
type Pipeline struct {
	normalizer    *normalize.Normalizer
	dates         *dates.Parser
	money         *money.Extractor
	cards         *eligibility.CardExtractor
	participation *eligibility.ParticipationExtractor
	channel       *eligibility.ChannelExtractor
	brands        []model.BrandEntry
	sectors       *sectorcache.Service
	referee       referee.Provider
	logger        *slog.Logger
}

// New creates a pipeline with the given options.
func New(opts Options) *Pipeline {
	cards := opts.Cards
	if len(cards) == 0 {
		cards = model.DefaultCards()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		normalizer:    normalize.New(),
		dates:         dates.NewParser(),
		money:         money.NewExtractor(),
		cards:         eligibility.NewCardExtractor(cards),
		participation: eligibility.NewParticipationExtractor(),
		channel:       eligibility.NewChannelExtractor(),
		brands:        opts.Brands,
		sectors:       opts.Sectors,
		referee:       opts.Referee,
		logger:        logger,
	}
}

// Extract runs the full pipeline over one campaign document, pulling the
// sector taxonomy from the cache and consulting the referee when wired.
func (p *Pipeline) Extract(ctx context.Context, doc Document) *model.ExtractedRecord {
	sectors := model.DefaultSectors()
	if p.sectors != nil {
		sectors = p.sectors.Sectors(ctx)
	}

	rec, mr := p.ExtractWithDictionaries(doc, p.brands, sectors)

	// Referee escalation: a second opinion on weak math, never the first.
	combined := p.normalizer.Normalize(doc.Title) + " " + p.normalizer.Normalize(doc.Text)
	if p.referee != nil && money.Escalatable(mr, combined) {
		p.escalate(ctx, doc, rec, mr)
	}

	finishRecord(rec)
	return rec
}

// ExtractWithDictionaries is the deterministic core: same input and
// dictionaries, same record. The money result is returned alongside so the
// caller can decide about escalation.
func (p *Pipeline) ExtractWithDictionaries(doc Document, brands []model.BrandEntry, sectors []model.SectorDefinition) (*model.ExtractedRecord, money.Result) {
	today := doc.Today
	if today.IsZero() {
		today = time.Now()
	}

	title := p.normalizer.Normalize(doc.Title)
	text := p.normalizer.Normalize(doc.Text)
	combined := title + " " + text

	rec := &model.ExtractedRecord{}

	// Dates.
	dr := p.dates.Parse(combined, today)
	rec.ValidFrom = dr.From
	rec.ValidUntil = dr.Until
	rec.DateFlags = dr.Flags

	// Money.
	mr := p.money.Extract(title, text)
	mr = money.Recalculate(mr)
	applyMoney(rec, mr)

	// Eligibility and operational facts.
	rec.EligibleCards = p.cards.Extract(combined)
	rec.ParticipationMethod = p.participation.Extract(combined)
	rec.SpendChannel, rec.SpendChannelDetail = p.channel.Extract(combined)

	cls := classify.New(brands, sectors).Classify(title, text)
	rec.Brand = cls.Brand
	rec.SectorSlug = cls.SectorSlug
	rec.Category = cls.Category
	rec.SectorConfidence = cls.Confidence
	rec.ClassificationMethod = cls.Method
	rec.NeedsManualSector = cls.NeedsManual

	finishRecord(rec)
	return rec, mr
}

// finishRecord derives the review verdict from the flag set alone, so a
// needs_manual_math record always carries the flag that caused it. An
// unavailable referee is not itself a review reason; the anomaly that
// triggered escalation is.
func finishRecord(rec *model.ExtractedRecord) {
	for _, f := range rec.MathFlags {
		if f != model.FlagRefereeUnavailable {
			rec.NeedsManualMath = true
			break
		}
	}
}

// escalate consults the referee and folds its suggestion in. A referee
// failure is recorded as a flag and the deterministic record stands.
func (p *Pipeline) escalate(ctx context.Context, doc Document, rec *model.ExtractedRecord, mr money.Result) {
	req := referee.Request{Title: doc.Title, Text: doc.Text, Snapshot: *rec}
	suggestion, err := p.referee.Suggest(ctx, req)
	if err != nil {
		p.logger.Warn("referee unavailable", "provider", p.referee.Name(), "error", err)
		rec.MathFlags = append(rec.MathFlags, model.FlagRefereeUnavailable)
		return
	}
	if suggestion == nil {
		return
	}

	if referee.Merge(rec, suggestion) {
		// A filled field can change the spend arithmetic. Push the merged
		// values back through the recalculation so the requirement stays
		// rule-derived even after an AI fill.
		mr.MinSpend = rec.MinSpend
		mr.Earning = rec.Earning
		mr.Discount = rec.Discount
		mr.MaxDiscount = rec.MaxDiscount
		mr.DiscountPercentage = rec.DiscountPercentage
		mr.Flags = rec.MathFlags
		mr.NeedsManualReward = mr.NeedsManualReward && mr.Earning == "" && mr.Discount == ""
		mr = money.Recalculate(mr)
		applyMoney(rec, mr)
	}
}

func applyMoney(rec *model.ExtractedRecord, mr money.Result) {
	rec.MinSpend = mr.MinSpend
	rec.MinSpendCurrency = mr.MinSpendCurrency
	rec.Earning = mr.Earning
	rec.Discount = mr.Discount
	rec.MaxDiscount = mr.MaxDiscount
	rec.MaxDiscountCurrency = mr.MaxDiscountCurrency
	rec.DiscountPercentage = mr.DiscountPercentage
	rec.RequiredSpend = mr.RequiredSpend
	rec.MathFlags = mr.Flags
	rec.HasMixedCurrency = mr.HasMixedCurrency
	rec.NeedsManualReward = mr.NeedsManualReward
}
