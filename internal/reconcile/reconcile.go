// Package reconcile merges offers from several providers into one ranked,
// filtered list per country, and compares those lists across countries.
package reconcile

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/models"
	"github.com/lukman83/pricecompare/internal/provider"
)

// Reconcile filters, de-duplicates and ranks the offers in sets, which must
// be in provider priority order. It does no I/O and returns the same ordered
// list for the same input.
//
// Offers are dropped, in this order, when the store is not trusted for the
// country, the native price is below the country minimum, the title names an
// accessory, or the display price looks like an installment plan. Offers
// sharing a store and display price collapse to the first one seen. The
// survivors are sorted by native price, ties keeping encounter order.
func Reconcile(country catalog.Country, sets []provider.ResultSet) []models.Offer {
	seen := make(map[string]struct{})
	var out []models.Offer

	for _, set := range sets {
		for _, o := range set.Offers {
			if reason, ok := rejectReason(country, o); !ok {
				slog.Debug("offer filtered",
					"country", country.Code,
					"provider", set.Provider,
					"store", o.StoreName,
					"price", o.Price,
					"reason", reason,
				)
				continue
			}

			key := strings.ToLower(o.StoreName) + "-" + o.Price
			if _, dup := seen[key]; dup {
				slog.Debug("duplicate offer", "country", country.Code, "store", o.StoreName, "price", o.Price)
				continue
			}
			seen[key] = struct{}{}

			if o.PriceNumeric <= 0 {
				continue
			}
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceNumeric < out[j].PriceNumeric
	})
	return out
}

// rejectReason reports whether o passes the per-offer filters and, if not,
// which one rejected it.
func rejectReason(country catalog.Country, o models.Offer) (string, bool) {
	if !catalog.IsTrusted(o.StoreName, country.Code) && !catalog.IsTrusted(o.PageURL, country.Code) {
		return "untrusted store", false
	}
	if o.PriceNumeric < country.MinPrice {
		return "below minimum price", false
	}
	if kw, ok := isAccessory(o.TitleText()); ok {
		return "accessory: " + kw, false
	}
	if marker, ok := isSubscriptionPrice(o.Price); ok {
		return "subscription price: " + marker, false
	}
	return "", true
}
