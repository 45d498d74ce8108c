package eligibility

import "strings"

// negationWindow is how far past a card mention the extractor looks for a
// negation phrase ("Free kartlar kampanyaya dahil değildir").
const negationWindow = 60

var negationPhrases = []string{"dahil değil", "geçerli değil"}

// CardExtractor matches known card-product names against campaign text,
// suppressing mentions adjacent to negation phrases.
type CardExtractor struct {
	cards []string
}

// NewCardExtractor creates an extractor over a reference list of card
// names. Output order follows this list, not occurrence order.
func NewCardExtractor(cards []string) *CardExtractor {
	return &CardExtractor{cards: cards}
}

// Extract returns the card names mentioned in normalized text whose first
// occurrence is not followed by a negation phrase within the window.
func (e *CardExtractor) Extract(text string) []string {
	var found []string

	for _, card := range e.cards {
		needle := strings.ToLower(card)
		idx := strings.Index(text, needle)
		if idx < 0 {
			continue
		}

		end := idx + len(needle) + negationWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[idx:end]

		if containsNegation(window) {
			continue
		}
		found = append(found, card)
	}

	return found
}

func containsNegation(window string) bool {
	for _, p := range negationPhrases {
		if strings.Contains(window, p) {
			return true
		}
	}
	return false
}
