package prober

// DefaultTargets are the retailer search pages the dashboard checks.
func DefaultTargets() []Target {
	return []Target{
		{Name: "Amazon", URLTemplate: "https://www.amazon.com/s?k=%s"},
		{Name: "Walmart", URLTemplate: "https://www.walmart.com/search?q=%s"},
		{Name: "Best Buy", URLTemplate: "https://www.bestbuy.com/site/searchpage.jsp?st=%s"},
	}
}
