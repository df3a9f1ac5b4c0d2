// Package validation classifies search results as matching the query or not.
// Every classifier here is advisory: callers keep offers a classifier did not
// judge and ignore a classifier that fails.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lukman83/pricecompare/internal/models"
)

// parsedConfidence is assigned to every verdict read from a model reply.
const parsedConfidence = 0.9

// ErrNoVerdicts is returned when a reply contains no usable verdict array.
var ErrNoVerdicts = errors.New("no verdicts in classifier reply")

// buildPrompt describes the task and lists items 1-indexed.
func buildPrompt(query string, items []models.ValidationItem) string {
	var list strings.Builder
	for i, it := range items {
		fmt.Fprintf(&list, "%d. %q - %s %s\n", i+1, it.Title, it.Currency, strconv.FormatFloat(it.Price, 'f', -1, 64))
	}

	return fmt.Sprintf(`You are a product matching expert. The user searched for: "%s"

Decide for each product below whether it IS the searched product (or a direct variant such as a different storage size or colour).
Mark as INVALID:
- accessories (cases, covers, screen protectors, chargers, cables, stands)
- different product models or generations
- bundles where the main product is not the searched item
- refurbished or used items when the listing says so
- prices that are implausibly low for the product

Products:
%s
Respond ONLY with a JSON array, one entry per product:
[{"idx": 1, "valid": true, "reason": "exact match"}, {"idx": 2, "valid": false, "reason": "phone case"}]`, query, list.String())
}

type rawVerdict struct {
	Idx    int    `json:"idx"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// parseVerdicts reads a JSON verdict array from a model reply, tolerating
// markdown fences and surrounding prose. Verdicts are keyed by 0-based item
// index; out-of-range indices are dropped.
func parseVerdicts(reply string, n int) (map[int]models.Verdict, error) {
	body := strings.TrimSpace(reply)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	start, end := strings.Index(body, "["), strings.LastIndex(body, "]")
	if start < 0 || end <= start {
		return nil, ErrNoVerdicts
	}

	var raw []rawVerdict
	if err := json.Unmarshal([]byte(body[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode verdicts: %w", err)
	}

	out := make(map[int]models.Verdict, len(raw))
	for _, v := range raw {
		idx := v.Idx - 1
		if idx < 0 || idx >= n {
			continue
		}
		out[idx] = models.Verdict{Valid: v.Valid, Reason: v.Reason, Confidence: parsedConfidence}
	}
	return out, nil
}
