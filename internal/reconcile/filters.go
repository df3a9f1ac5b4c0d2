package reconcile

import "strings"

// accessoryKeywords mark listings that are add-ons rather than the product
// itself. Matched against the lower-cased title.
var accessoryKeywords = []string{
	"case", "cover", "screen protector", "film", "charger", "cable",
	"adapter", "holder", "stand", "skin", "sleeve", "pouch", "strap",
	"coque", "hülle", "schutzhülle", "tasche", "étui", "protection", "pellicule",
}

// subscriptionMarkers identify installment or plan pricing in the display
// price. Matched against the lower-cased price string.
var subscriptionMarkers = []string{
	"/mo", " mo ", "monat", "mois", "month", "/m ", "x 24", "x 12", "now", "/wk",
}

func isAccessory(title string) (string, bool) {
	return containsAny(strings.ToLower(title), accessoryKeywords)
}

func isSubscriptionPrice(display string) (string, bool) {
	return containsAny(strings.ToLower(display), subscriptionMarkers)
}

func containsAny(s string, needles []string) (string, bool) {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return n, true
		}
	}
	return "", false
}
