package referee

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kartavantaj/kampanya/internal/model"
)

// Provider is an AI referee backend. The referee is consulted only when
// the deterministic pass flags an anomaly; its answer is a suggestion,
// never an overwrite.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Suggest asks the referee for its reading of the campaign's money
	// facts. A nil suggestion with nil error means the referee declined.
	Suggest(ctx context.Context, req Request) (*model.MathSuggestion, error)
}

// Request carries the campaign text plus the deterministic snapshot the
// referee is asked to double-check.
type Request struct {
	// Title is the campaign headline.
	Title string

	// Text is the campaign body, already normalized.
	Text string

	// Snapshot is the deterministic extraction the referee reviews.
	Snapshot model.ExtractedRecord
}

// NewFromConfig builds the configured provider, or nil when the referee
// is disabled.
func NewFromConfig(cfg model.RefereeConfig) (Provider, error) {
	if !cfg.Enabled || cfg.Provider == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown referee provider: %q", cfg.Provider)
	}
}

// buildPrompt constructs the referee prompt. The deterministic snapshot
// is inlined so the model reviews instead of extracting from scratch.
func buildPrompt(req Request) string {
	snapshot, _ := json.Marshal(map[string]any{
		"min_spend":           req.Snapshot.MinSpend,
		"earning":             req.Snapshot.Earning,
		"discount":            req.Snapshot.Discount,
		"max_discount":        req.Snapshot.MaxDiscount,
		"discount_percentage": req.Snapshot.DiscountPercentage,
		"valid_until":         req.Snapshot.ValidUntil,
		"flags":               req.Snapshot.MathFlags,
	})

	return fmt.Sprintf(`You are reviewing a Turkish bank campaign. A rule-based extractor already produced the values below; double-check them against the campaign text.

CRITICAL RULES:
1. Answer ONLY with a single JSON object, no prose around it.
2. Use ONLY these keys, all optional: min_spend (number), earning (string), discount (string), max_discount (number), discount_percentage (number), valid_until ("YYYY-MM-DD"), notes (string).
3. Omit a key entirely when you agree with the extractor or the text says nothing about it.
4. Never invent amounts that do not appear in the text.
5. valid_until must come from an explicit date in the text.

Extractor output:
%s

Campaign title:
%s

Campaign text:
%s`, snapshot, req.Title, req.Text)
}
