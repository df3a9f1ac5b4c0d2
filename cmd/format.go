package cmd

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/currency"
	"github.com/lukman83/pricecompare/internal/models"
)

// printCountryResult prints one country's offers in a human-friendly card layout.
func printCountryResult(w io.Writer, res *models.CountryResult) {
	fmt.Fprintf(w, "%s %s (%s)  %d offers", flagFor(res.Country), res.CountryName, res.Currency, len(res.Offers))
	if len(res.SourcesUsed) > 0 {
		fmt.Fprintf(w, " via %s", strings.Join(res.SourcesUsed, ", "))
	}
	fmt.Fprintln(w)
	if len(res.Offers) == 0 {
		fmt.Fprintln(w, "    No offers from trusted retailers.")
		return
	}

	for i, o := range res.Offers {
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %d. %s\n", i+1, truncate(o.TitleText(), 80))

		// Price line with optional original price and discount
		priceLine := "    Price: " + o.Price
		if o.OnSale && o.OriginalPrice != nil {
			priceLine += "  (was " + *o.OriginalPrice
			if o.PercentOff != nil {
				priceLine += ", " + *o.PercentOff
			}
			priceLine += ")"
		}
		if o.PriceReference > 0 && o.Currency != currency.Reference {
			priceLine += "  ≈ " + formatINR(o.PriceReference)
		}
		priceLine += "  |  Store: " + o.StoreName
		if o.Seller != "" {
			priceLine += " (" + o.Seller + ")"
		}
		if o.IsPrime != nil && *o.IsPrime {
			priceLine += " [Prime]"
		}
		fmt.Fprintln(w, priceLine)

		var details []string
		if o.Shipping != "" {
			details = append(details, "Shipping: "+o.Shipping)
		}
		if o.StoreRating != nil {
			rating := "Rating: " + *o.StoreRating
			if o.StoreReviewCount > 0 {
				rating += fmt.Sprintf(" (%s reviews)", groupThousands(int64(o.StoreReviewCount)))
			}
			details = append(details, rating)
		}
		if o.Condition != "" && !strings.EqualFold(o.Condition, "new") {
			details = append(details, "Condition: "+o.Condition)
		}
		if len(details) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(details, "  |  "))
		}
		if o.PageURL != "" {
			fmt.Fprintf(w, "    %s\n", cleanURL(o.PageURL))
		}
	}
}

// printComparison prints countries ranked by their cheapest offer in the
// reference currency, then the savings summary.
func printComparison(w io.Writer, cmp *models.Comparison) {
	fmt.Fprintf(w, "Comparison for %q  (rates: %s", cmp.Query, cmp.RatesSource)
	if cmp.RatesDegraded {
		fmt.Fprint(w, ", approximate")
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)

	ranked := make([]models.CountryResult, len(cmp.Results))
	copy(ranked, cmp.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if (a.Cheapest == nil) != (b.Cheapest == nil) {
			return a.Cheapest != nil
		}
		return a.CheapestReference < b.CheapestReference
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, " #\tCountry\tCheapest\tIn %s\tStore\n", cmp.ReferenceCurrency)
	for i, r := range ranked {
		name := strings.TrimSpace(flagFor(r.Country) + " " + r.CountryName)
		if name == "" {
			name = r.Country
		}
		switch {
		case r.Error != "":
			fmt.Fprintf(tw, " %d\t%s\t-\t-\terror: %s\n", i+1, name, truncate(r.Error, 40))
		case r.Cheapest == nil:
			fmt.Fprintf(tw, " %d\t%s\t-\t-\tno offers\n", i+1, name)
		default:
			fmt.Fprintf(tw, " %d\t%s\t%s\t%s\t%s\n", i+1, name, r.Cheapest.Price, formatINR(r.CheapestReference), r.Cheapest.StoreName)
		}
	}
	tw.Flush()

	a := cmp.Analysis
	if a == nil {
		fmt.Fprintln(w, "\nNo country returned an offer.")
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cheapest: %s at %s\n", countryName(a.CheapestCountry), formatINR(a.CheapestPrice))
	if a.CountriesWithOffers > 1 && a.Savings > 0 {
		fmt.Fprintf(w, "Save %s (%s%%) compared to %s\n",
			formatINR(a.Savings), strconv.FormatFloat(a.SavingsPercent, 'f', 1, 64), countryName(a.MostExpensiveCountry))
	}
	if a.HomeCountry != "" && a.HomeCountry != a.CheapestCountry && a.HomeSavings > 0 {
		fmt.Fprintf(w, "Buying in %s instead of %s saves %s\n",
			countryName(a.CheapestCountry), countryName(a.HomeCountry), formatINR(a.HomeSavings))
	}
}

// printRates prints a rate snapshot as a table, one currency per line.
func printRates(w io.Writer, snap *currency.Snapshot) {
	status := "live"
	if snap.Degraded {
		status = "fallback (approximate)"
	}
	fmt.Fprintf(w, "Base: %s  |  Source: %s  |  Status: %s\n", currency.Reference, snap.Source, status)
	fmt.Fprintf(w, "Fetched: %s (%s ago)\n\n", snap.FetchedAt.Format(time.RFC3339), snap.Age(time.Now()).Truncate(time.Second))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, " Currency\tPer 1 %s\t1 unit in %s\n", currency.Reference, currency.Reference)
	for _, code := range snap.Codes() {
		if code == currency.Reference {
			continue
		}
		rate := snap.Rate(code)
		fmt.Fprintf(tw, " %s\t%s\t%s\n", code, strconv.FormatFloat(rate, 'f', -1, 64), formatINRPrecise(currency.ToReference(1, code, snap)))
	}
	tw.Flush()
}

// printCountries prints the country catalog.
func printCountries(w io.Writer, countries []catalog.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " Code\tCountry\tCurrency\tMin price\tTrusted retailers")
	for _, c := range countries {
		fmt.Fprintf(tw, " %s\t%s %s\t%s (%s)\t%s\t%s\n",
			c.Code, c.Flag, c.Name, c.Currency, c.Symbol,
			groupThousands(int64(c.MinPrice)), strings.Join(c.Retailers, ", "))
	}
	tw.Flush()
}

func flagFor(code string) string {
	if c, ok := catalog.Lookup(code); ok {
		return c.Flag
	}
	return ""
}

func countryName(code string) string {
	if c, ok := catalog.Lookup(code); ok {
		return c.Name
	}
	return strings.ToUpper(code)
}

// formatINR formats a rupee amount with Indian digit grouping and no
// fraction, e.g. "₹1,23,457".
func formatINR(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	return "₹" + groupIndian(n)
}

// formatINRPrecise keeps two decimals for small amounts such as unit rates.
func formatINRPrecise(v float64) string {
	if v >= 1000 {
		return formatINR(v)
	}
	return "₹" + strconv.FormatFloat(currency.Round2(v), 'f', 2, 64)
}

// groupIndian groups digits as 12,34,567: the last three together, then pairs.
func groupIndian(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// groupThousands formats n as "1,234,567".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// cleanURL strips tracking query params and fragments, keeping the product
// page URL. Google redirect links keep their query since the target is in it.
func cleanURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if strings.Contains(u.Host, "google.") {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
