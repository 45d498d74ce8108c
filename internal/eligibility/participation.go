package eligibility

import (
	"regexp"
	"strings"

	"github.com/kartavantaj/kampanya/internal/model"
)

// participationRule is one entry of the priority cascade. Either keywords
// or pattern is set.
type participationRule struct {
	method   model.ParticipationMethod
	keywords []string
	pattern  *regexp.Regexp
}

// ParticipationExtractor classifies the enrollment mechanism via an
// ordered priority list, most specific trigger first. No match yields the
// empty method, never a guess.
type ParticipationExtractor struct {
	rules []participationRule
}

// NewParticipationExtractor creates the extractor with the built-in
// cascade.
func NewParticipationExtractor() *ParticipationExtractor {
	return &ParticipationExtractor{
		rules: []participationRule{
			{method: model.ParticipationJuzdan, keywords: []string{"juzdan"}},
			{method: model.ParticipationSMS, keywords: []string{"sms", "kısa mesaj"}, pattern: regexp.MustCompile(`kayıt\s+yaz`)},
			{method: model.ParticipationMobileApp, keywords: []string{"mobil uygulama", "mobil bankacılık", "uygulamadan katıl"}},
			{method: model.ParticipationCallCenter, keywords: []string{"çağrı merkezi", "müşteri iletişim merkezi", "telefon şubesi"}},
			{method: model.ParticipationWeb, keywords: []string{"internet şubesi", "internet bankacılığı", "web sitesi"}},
			{method: model.ParticipationAuto, keywords: []string{"otomatik", "katılım şartı yoktur", "başvuru gerekmez", "kayıt gerekmez"}},
		},
	}
}

// Extract returns the first matching enrollment method for normalized
// text, or "" when nothing matched.
func (e *ParticipationExtractor) Extract(text string) model.ParticipationMethod {
	for _, rule := range e.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.method
			}
		}
		if rule.pattern != nil && rule.pattern.MatchString(text) {
			return rule.method
		}
	}
	return ""
}
