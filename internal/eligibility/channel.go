package eligibility

import (
	"regexp"
	"strings"

	"github.com/kartavantaj/kampanya/internal/model"
)

// merchantPattern captures the merchant name preceding a store-scoped
// phrase, e.g. "Migros mağazalarında".
var merchantPattern = regexp.MustCompile(`(\S+)\s+(?:mağazalarında|mağazasında|şubelerinde|restoranlarında)`)

type channelRule struct {
	channel  model.SpendChannel
	keywords []string
}

// ChannelExtractor classifies where the qualifying spend must happen.
// Rules run in priority order so that the more specific channels
// (in-app, online) win over the physical-POS fallback wording.
type ChannelExtractor struct {
	rules []channelRule
}

// NewChannelExtractor creates the extractor with the built-in cascade.
func NewChannelExtractor() *ChannelExtractor {
	return &ChannelExtractor{
		rules: []channelRule{
			{channel: model.ChannelInApp, keywords: []string{"juzdan ile öde", "uygulama üzerinden", "mobil uygulamadan", "qr ile öde"}},
			{channel: model.ChannelOnline, keywords: []string{"internetten", "online alışveriş", "e-ticaret", "internet alışveriş", "sanal pos"}},
			{channel: model.ChannelMemberMerchant, keywords: []string{"üye işyer", "üye iş yer"}},
			{channel: model.ChannelInStorePOS, keywords: []string{"tek seferde", "temassız", "mağazada", "pos"}},
		},
	}
}

// Extract returns the spend channel and the trigger detail for normalized
// text. Merchant-scoped wording outranks the generic in-store keywords:
// "mağazalarında" names a merchant, "mağazada" does not.
func (e *ChannelExtractor) Extract(text string) (model.SpendChannel, string) {
	for _, rule := range e.rules {
		if rule.channel == model.ChannelInStorePOS {
			if m := merchantPattern.FindStringSubmatch(text); m != nil {
				return model.ChannelMerchantSpecific, strings.TrimSpace(m[1])
			}
		}
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.channel, kw
			}
		}
	}
	return model.ChannelUnknown, ""
}
