// Package catalog holds the fixed table of modules shown in the directory and
// the filter that derives the visible subset for a category tab and a query.
package catalog

import (
	"fmt"
	"strings"
)

// Category groups modules under a tab. CategoryAll is only a filter value;
// no item carries it.
type Category string

const (
	CategoryAll        Category = "All"
	CategoryCore       Category = "Core"
	CategoryBrand      Category = "Brand"
	CategoryGrowth     Category = "Growth"
	CategoryConversion Category = "Conversion"
)

// String returns the display name of the category.
func (c Category) String() string {
	return string(c)
}

var categories = []Category{
	CategoryAll,
	CategoryCore,
	CategoryBrand,
	CategoryGrowth,
	CategoryConversion,
}

// Categories returns the tab set in display order, starting with CategoryAll.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category name case-insensitively. The empty string
// resolves to CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAll, nil
	}
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Item is a single module entry. Items are values; the table is never mutated.
type Item struct {
	Name        string
	URL         string
	Category    Category
	Description string
	// Icon is an opaque symbol id resolved by the presentation layer.
	Icon string
}

var items = []Item{
	{Name: "Business Modeller", URL: "https://chatgpt.com/g/g-6908185e71fc8191be60baf3f8eb129f-business-modeler-codex", Icon: "briefcase", Description: "Architect the fundamental logic of your venture.", Category: CategoryCore},
	{Name: "Revenue Model", URL: "https://chatgpt.com/g/g-6908456435b48191afb16a24b609e541-revenue-model-codex", Icon: "dollar-sign", Description: "Engineer sustainable income streams.", Category: CategoryCore},
	{Name: "GTM Strategy", URL: "https://chatgpt.com/g/g-69084dbe2904819193f7fbc43cf6ae19-gtm-codex", Icon: "rocket", Description: "Precision launch sequencing for new markets.", Category: CategoryCore},

	{Name: "BrandName", URL: "https://chatgpt.com/g/g-69081c7f81ac8191b0a197d5b0b35c11-brandname-codex", Icon: "pen-tool", Description: "Linguistic engineering for brand identity.", Category: CategoryBrand},
	{Name: "Persona", URL: "https://chatgpt.com/g/g-69044ba5c6088191bee6a918192dedc2-persona-codex", Icon: "user", Description: "Deep psychological mapping of your ideal user.", Category: CategoryBrand},
	{Name: "Brand Story", URL: "https://chatgpt.com/g/g-69083ca9c79081919dc8ee7af19250d5-brand-story-codex", Icon: "book-open", Description: "Narrative architecture for emotional resonance.", Category: CategoryBrand},
	{Name: "Brand Strategy", URL: "https://chatgpt.com/g/g-69085293c12881918e3dc15e83912393-brand-strategy-codex", Icon: "award", Description: "Long-term equity and positioning frameworks.", Category: CategoryBrand},

	{Name: "Social Strategy", URL: "https://chatgpt.com/g/g-6908480495448191a59373b56e379aa0-social-strategy-codex", Icon: "share", Description: "Viral mechanics and community architecture.", Category: CategoryGrowth},
	{Name: "SEO Strategy", URL: "https://chatgpt.com/g/g-69084923b62c819196d2e6c16addd06e-seo-strategy-codex", Icon: "search", Description: "Algorithmic visibility and search dominance.", Category: CategoryGrowth},
	{Name: "Content Marketing", URL: "https://chatgpt.com/g/g-69084a36153c81918ed553c3f458a164-content-marketing-codex", Icon: "file-text", Description: "Value-driven content distribution systems.", Category: CategoryGrowth},
	{Name: "Marketing Strategy", URL: "https://chatgpt.com/g/g-69084b938fc08191b6b04f89eb22255e-marketing-strategy-codex", Icon: "target", Description: "Omni-channel growth orchestration.", Category: CategoryGrowth},
	{Name: "Channel Strategy", URL: "https://chatgpt.com/g/g-69085dd5a2f48191ac8724963eb3560f-channel-strategy-codex", Icon: "git-branch", Description: "Distribution logistics and partner modeling.", Category: CategoryGrowth},
	{Name: "Meta Ads", URL: "https://chatgpt.com/g/g-69088122d74c8191ad982645feae0ea2-meta-ads-codex", Icon: "facebook", Description: "Performance creative and paid scaling.", Category: CategoryGrowth},
	{Name: "RSA Ad", URL: "https://chatgpt.com/g/g-690ab6a48c1c8191970398eeae104df0-rsa-ads-codex", Icon: "mouse-pointer", Description: "Responsive Search engine logic.", Category: CategoryGrowth},

	{Name: "Funnel", URL: "https://chatgpt.com/g/g-690879f18d448191af3d0e3ef099b4ca-funnel-codex", Icon: "filter", Description: "Conversion path optimization and leak repair.", Category: CategoryConversion},
	{Name: "Lead Magnet", URL: "https://chatgpt.com/g/g-69087e5ccb6881918208afc0777a435b-lead-magnet-codex", Icon: "magnet", Description: "High-value asset engineering for acquisition.", Category: CategoryConversion},
	{Name: "Landing Page Copy", URL: "https://chatgpt.com/g/g-69089d50cce88191a6b989cf920b785f-landing-page-copy-codex", Icon: "monitor", Description: "Direct response linguistics for high conversion.", Category: CategoryConversion},
	{Name: "Website Copy", URL: "https://chatgpt.com/g/g-69085aeb684c8191b850c9e8d5121f9f-website-copy-codex", Icon: "layout", Description: "Digital storefront messaging architecture.", Category: CategoryConversion},
	{Name: "Email Marketing", URL: "https://chatgpt.com/g/g-69084c631b5481919a36385edff3916c-email-marketing-codex", Icon: "mail", Description: "Retention loops and automated sequence design.", Category: CategoryConversion},
	{Name: "Sales Strategy", URL: "https://chatgpt.com/g/g-69084f51231c81919bc4d4677a8870c7-sales-strategy-codex", Icon: "trending-up", Description: "Closing mechanics and deal-flow management.", Category: CategoryConversion},
	{Name: "Competitor Analysis", URL: "https://chatgpt.com/g/g-690855d6c7c48191965906897e1e837b-competitor-analysis-codex", Icon: "bar-chart", Description: "Strategic reconnaissance and market positioning.", Category: CategoryCore},
}

// List returns the catalog in its fixed order. The returned slice is a copy.
func List() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Lookup returns the item with the given name. Names are the identity key.
func Lookup(name string) (Item, bool) {
	for _, it := range items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}
