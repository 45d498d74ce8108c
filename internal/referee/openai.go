package referee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kartavantaj/kampanya/internal/model"
)

// jsonBlobRe grabs the outermost JSON object even when the model wraps
// it in markdown fences or prose.
var jsonBlobRe = regexp.MustCompile(`\{[\s\S]*\}`)

// OpenAIProvider implements Provider against the OpenAI chat API or any
// OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client  *openai.Client
	config  model.RefereeConfig
	limiter *rate.Limiter
}

// NewOpenAIProvider creates a new OpenAI referee.
func NewOpenAIProvider(cfg model.RefereeConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(rpm/60.0), 1),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Suggest asks the model to review the deterministic snapshot. One retry
// on rate-limit responses, then the error propagates.
func (p *OpenAIProvider) Suggest(ctx context.Context, req Request) (*model.MathSuggestion, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}
	timeout := time.Duration(p.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You verify numeric facts extracted from Turkish bank campaign text. You answer with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0, // Verification, not generation
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if isRateLimited(err) {
		select {
		case <-time.After(2 * time.Second):
		case <-ctxWithTimeout.Done():
			return nil, ctxWithTimeout.Err()
		}
		resp, err = p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	}
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseSuggestion(resp.Choices[0].Message.Content)
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429
	}
	return false
}

// parseSuggestion pulls the JSON object out of the model's reply and
// coerces it leniently: models return numbers as strings, "1.500 TL"
// instead of 1500, null instead of omitting a key.
func parseSuggestion(content string) (*model.MathSuggestion, error) {
	blob := jsonBlobRe.FindString(content)
	if blob == "" {
		return nil, fmt.Errorf("no JSON object in referee reply")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("malformed referee reply: %w", err)
	}

	s := &model.MathSuggestion{}
	empty := true
	if v, ok := coerceInt(raw["min_spend"]); ok {
		s.MinSpend, empty = &v, false
	}
	if v, ok := coerceString(raw["earning"]); ok {
		s.Earning, empty = &v, false
	}
	if v, ok := coerceString(raw["discount"]); ok {
		s.Discount, empty = &v, false
	}
	if v, ok := coerceInt(raw["max_discount"]); ok {
		s.MaxDiscount, empty = &v, false
	}
	if v, ok := coerceInt(raw["discount_percentage"]); ok {
		s.DiscountPercentage, empty = &v, false
	}
	if v, ok := coerceString(raw["valid_until"]); ok && isISODate(v) {
		s.ValidUntil, empty = &v, false
	}
	if v, ok := coerceString(raw["notes"]); ok {
		s.Notes = v
	}

	if empty {
		return nil, nil
	}
	return s, nil
}

func coerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		cleaned := strings.TrimSpace(t)
		cleaned = strings.NewReplacer(".", "", ",", ".", " ", "", "TL", "", "tl", "", "₺", "").Replace(cleaned)
		if dot := strings.IndexByte(cleaned, '.'); dot >= 0 {
			cleaned = cleaned[:dot]
		}
		n, err := strconv.Atoi(cleaned)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func coerceString(v any) (string, bool) {
	t, ok := v.(string)
	if !ok {
		return "", false
	}
	t = strings.TrimSpace(t)
	if t == "" || strings.EqualFold(t, "null") {
		return "", false
	}
	return t, true
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
