package validation

import (
	"context"
	"strings"

	"github.com/lukman83/pricecompare/internal/models"
)

var accessoryTerms = []string{
	"case", "cover", "screen protector", "tempered glass", "film",
	"charger", "cable", "adapter", "holder", "stand", "mount",
	"skin", "sleeve", "pouch", "wallet", "folio", "bumper", "shell",
	"strap", "band", "tripod", "lens", "grip", "ring",
	"coque", "étui", "protection", "pellicule",
	"hülle", "schutzhülle", "tasche",
	"ケース", "カバー", "フィルム", "充電器",
}

// Heuristic is an offline classifier. It rejects accessory titles (unless the
// query itself asks for that accessory) and titles matching fewer than half
// of the query words.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

func (Heuristic) Validate(_ context.Context, query string, items []models.ValidationItem) (map[int]models.Verdict, error) {
	out := make(map[int]models.Verdict, len(items))
	for i, it := range items {
		out[i] = QuickValidate(it.Title, query)
	}
	return out, nil
}

// QuickValidate judges a single title against the query.
func QuickValidate(title, query string) models.Verdict {
	t := strings.ToLower(title)
	q := strings.ToLower(query)

	for _, term := range accessoryTerms {
		if strings.Contains(t, term) && !strings.Contains(q, term) {
			return models.Verdict{Valid: false, Reason: "accessory: " + term, Confidence: 0.7}
		}
	}

	// Short words never count as matches but still count towards the total.
	words := strings.Fields(q)
	matched := 0
	for _, w := range words {
		if len([]rune(w)) > 2 && strings.Contains(t, w) {
			matched++
		}
	}
	if len(words) > 0 && float64(matched)/float64(len(words)) < 0.5 {
		return models.Verdict{Valid: false, Reason: "title does not match query", Confidence: 0.6}
	}
	return models.Verdict{Valid: true, Reason: "matches query", Confidence: 0.8}
}
