package catalog

import "strings"

var retailersIN = []Retailer{
	{Name: "Amazon India", Domain: "amazon.in", Aliases: []string{"amazon", "amazon.in"}},
	{Name: "Flipkart", Domain: "flipkart.com", Aliases: []string{"flipkart"}},
	{Name: "Reliance Digital", Domain: "reliancedigital.in", Aliases: []string{"reliance digital", "reliance"}},
	{Name: "Croma", Domain: "croma.com", Aliases: []string{"croma"}},
	{Name: "Vijay Sales", Domain: "vijaysales.com", Aliases: []string{"vijay sales"}},
	{Name: "Tata Cliq", Domain: "tatacliq.com", Aliases: []string{"tata cliq", "tatacliq"}},
}

var retailersUS = []Retailer{
	{Name: "Amazon", Domain: "amazon.com", Aliases: []string{"amazon", "amazon.com"}},
	{Name: "Walmart", Domain: "walmart.com", Aliases: []string{"walmart"}},
	{Name: "Best Buy", Domain: "bestbuy.com", Aliases: []string{"best buy", "bestbuy"}},
	{Name: "eBay", Domain: "ebay.com", Aliases: []string{"ebay"}},
	{Name: "B&H Photo Video", Domain: "bhphotovideo.com", Aliases: []string{"b&h", "b&h photo", "bhphotovideo"}},
	{Name: "Target", Domain: "target.com", Aliases: []string{"target"}},
	{Name: "Costco", Domain: "costco.com", Aliases: []string{"costco"}},
	{Name: "Newegg", Domain: "newegg.com", Aliases: []string{"newegg"}},
	{Name: "Apple", Domain: "apple.com", Aliases: []string{"apple"}},
}

var retailersGB = []Retailer{
	{Name: "Amazon UK", Domain: "amazon.co.uk", Aliases: []string{"amazon", "amazon.co.uk", "amazon uk"}},
	{Name: "Argos", Domain: "argos.co.uk", Aliases: []string{"argos"}},
	{Name: "Currys", Domain: "currys.co.uk", Aliases: []string{"currys", "curry's"}},
	{Name: "John Lewis", Domain: "johnlewis.com", Aliases: []string{"john lewis"}},
	{Name: "Very", Domain: "very.co.uk", Aliases: []string{"very"}},
	{Name: "AO", Domain: "ao.com", Aliases: []string{"ao", "ao.com"}},
}

var retailersDE = []Retailer{
	{Name: "Amazon Germany", Domain: "amazon.de", Aliases: []string{"amazon", "amazon.de", "amazon germany"}},
	{Name: "MediaMarkt", Domain: "mediamarkt.de", Aliases: []string{"mediamarkt", "media markt"}},
	{Name: "Saturn", Domain: "saturn.de", Aliases: []string{"saturn"}},
	{Name: "Otto", Domain: "otto.de", Aliases: []string{"otto"}},
	{Name: "Cyberport", Domain: "cyberport.de", Aliases: []string{"cyberport"}},
	{Name: "Notebooksbilliger", Domain: "notebooksbilliger.de", Aliases: []string{"notebooksbilliger"}},
	{Name: "Alternate", Domain: "alternate.de", Aliases: []string{"alternate"}},
	{Name: "Conrad", Domain: "conrad.de", Aliases: []string{"conrad"}},
}

var retailersFR = []Retailer{
	{Name: "Amazon France", Domain: "amazon.fr", Aliases: []string{"amazon", "amazon.fr", "amazon france"}},
	{Name: "Fnac", Domain: "fnac.com", Aliases: []string{"fnac"}},
	{Name: "Darty", Domain: "darty.com", Aliases: []string{"darty"}},
	{Name: "Boulanger", Domain: "boulanger.com", Aliases: []string{"boulanger"}},
	{Name: "Cdiscount", Domain: "cdiscount.com", Aliases: []string{"cdiscount"}},
	{Name: "Rue du Commerce", Domain: "rueducommerce.fr", Aliases: []string{"rue du commerce", "rueducommerce"}},
}

var retailersAU = []Retailer{
	{Name: "Amazon Australia", Domain: "amazon.com.au", Aliases: []string{"amazon", "amazon.com.au", "amazon australia"}},
	{Name: "JB Hi-Fi", Domain: "jbhifi.com.au", Aliases: []string{"jb hi-fi", "jb hifi", "jbhifi"}},
	{Name: "Harvey Norman", Domain: "harveynorman.com.au", Aliases: []string{"harvey norman"}},
	{Name: "The Good Guys", Domain: "thegoodguys.com.au", Aliases: []string{"the good guys", "good guys"}},
	{Name: "Kogan", Domain: "kogan.com", Aliases: []string{"kogan"}},
	{Name: "Officeworks", Domain: "officeworks.com.au", Aliases: []string{"officeworks"}},
	{Name: "Big W", Domain: "bigw.com.au", Aliases: []string{"big w", "bigw"}},
}

var retailersCA = []Retailer{
	{Name: "Amazon Canada", Domain: "amazon.ca", Aliases: []string{"amazon", "amazon.ca", "amazon canada"}},
	{Name: "Best Buy Canada", Domain: "bestbuy.ca", Aliases: []string{"best buy", "bestbuy"}},
	{Name: "Canada Computers", Domain: "canadacomputers.com", Aliases: []string{"canada computers"}},
	{Name: "Staples", Domain: "staples.ca", Aliases: []string{"staples"}},
	{Name: "The Source", Domain: "thesource.ca", Aliases: []string{"the source"}},
	{Name: "Walmart Canada", Domain: "walmart.ca", Aliases: []string{"walmart"}},
}

var retailersJP = []Retailer{
	{Name: "Amazon Japan", Domain: "amazon.co.jp", Aliases: []string{"amazon", "amazon.co.jp", "amazon japan", "amazon公式サイト"}},
	{Name: "Rakuten", Domain: "rakuten.co.jp", Aliases: []string{"rakuten", "楽天"}},
	{Name: "Bic Camera", Domain: "biccamera.com", Aliases: []string{"bic camera", "biccamera", "ビックカメラ"}},
	{Name: "Yodobashi", Domain: "yodobashi.com", Aliases: []string{"yodobashi", "ヨドバシ"}},
	{Name: "Yamada Denki", Domain: "yamada-denkiweb.com", Aliases: []string{"yamada denki", "yamada", "ヤマダ電機"}},
	{Name: "Joshin", Domain: "joshinweb.jp", Aliases: []string{"joshin", "ジョーシン"}},
	{Name: "Nojima", Domain: "nojima.co.jp", Aliases: []string{"nojima", "ノジマ"}},
}

var retailersSG = []Retailer{
	{Name: "Amazon Singapore", Domain: "amazon.sg", Aliases: []string{"amazon", "amazon.sg", "amazon singapore"}},
	{Name: "Shopee Singapore", Domain: "shopee.sg", Aliases: []string{"shopee"}},
	{Name: "Lazada Singapore", Domain: "lazada.sg", Aliases: []string{"lazada"}},
	{Name: "Courts", Domain: "courts.com.sg", Aliases: []string{"courts"}},
	{Name: "Challenger", Domain: "challenger.sg", Aliases: []string{"challenger"}},
	{Name: "Harvey Norman Singapore", Domain: "harveynorman.com.sg", Aliases: []string{"harvey norman"}},
}

var retailersAE = []Retailer{
	{Name: "Amazon UAE", Domain: "amazon.ae", Aliases: []string{"amazon", "amazon.ae", "amazon uae"}},
	{Name: "Noon", Domain: "noon.com", Aliases: []string{"noon"}},
	{Name: "Sharaf DG", Domain: "sharafdg.com", Aliases: []string{"sharaf dg", "sharaf"}},
	{Name: "Jumbo Electronics", Domain: "jumbo.ae", Aliases: []string{"jumbo", "jumbo electronics"}},
	{Name: "Carrefour UAE", Domain: "carrefouruae.com", Aliases: []string{"carrefour"}},
	{Name: "Virgin Megastore", Domain: "virginmegastore.ae", Aliases: []string{"virgin", "virgin megastore"}},
}

// IsTrusted reports whether a store name or URL belongs to one of the
// country's allow-listed retailers. Unknown countries trust nothing.
//
// Besides the plain containment checks, an input longer than three runes
// that appears inside an alias also matches, which catches truncated store
// names such as "flipk".
func IsTrusted(storeNameOrURL, countryCode string) bool {
	c, ok := Lookup(countryCode)
	if !ok {
		return false
	}
	s := strings.ToLower(strings.TrimSpace(storeNameOrURL))
	if s == "" {
		return false
	}

	for _, r := range c.Retailers {
		if strings.Contains(s, r.Domain) || strings.Contains(s, strings.ToLower(r.Name)) {
			return true
		}
		for _, alias := range r.Aliases {
			if strings.Contains(s, alias) {
				return true
			}
			if len([]rune(s)) > 3 && strings.Contains(alias, s) {
				return true
			}
		}
	}
	return false
}

// TrustedRetailerNames lists the display names of a country's retailers.
func TrustedRetailerNames(countryCode string) []string {
	c, ok := Lookup(countryCode)
	if !ok {
		return nil
	}
	names := make([]string, len(c.Retailers))
	for i, r := range c.Retailers {
		names[i] = r.Name
	}
	return names
}

// TrustedDomains lists the domains of a country's retailers.
func TrustedDomains(countryCode string) []string {
	c, ok := Lookup(countryCode)
	if !ok {
		return nil
	}
	domains := make([]string, len(c.Retailers))
	for i, r := range c.Retailers {
		domains[i] = r.Domain
	}
	return domains
}
