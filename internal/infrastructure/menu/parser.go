package menu

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/menuscraper/backend/internal/domain"
)

var (
	innerWhitespace   = regexp.MustCompile(`\s+`)
	trademarkReplacer = strings.NewReplacer("®", "", "™", "", "©", "")
)

// ParseLinks extracts the absolute URL of every product in the category
// listing, in page order. Relative hrefs are resolved against pageURL.
func ParseLinks(html, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid menu URL %q: %w", pageURL, err)
	}

	anchors := doc.Find(ProductLinkSelector)
	if anchors.Length() == 0 {
		return nil, fmt.Errorf("%w: %s: no elements match %q", domain.ErrPageStructure, pageURL, ProductLinkSelector)
	}

	links := make([]string, 0, anchors.Length())
	var parseErr error
	anchors.EachWithBreak(func(i int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			parseErr = fmt.Errorf("%w: %s: product link %d has no href", domain.ErrPageStructure, pageURL, i)
			return false
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			parseErr = fmt.Errorf("%w: %s: product link %d: %v", domain.ErrPageStructure, pageURL, i, err)
			return false
		}
		links = append(links, base.ResolveReference(ref).String())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return links, nil
}

// ParseProduct reads a product record from a product page whose nutrition
// details panel has already been expanded.
func ParseProduct(html, pageURL string) (*domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	name, err := firstText(doc.Selection, NameSelector, pageURL)
	if err != nil {
		return nil, err
	}
	description, err := firstText(doc.Selection, DescriptionSelector, pageURL)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        cleanName(name),
		Description: description,
	}

	for _, g := range nutritionLayout {
		items := doc.Find(g.Selector)
		for _, s := range g.Slots {
			if s.Item >= items.Length() {
				return nil, fmt.Errorf("%w: %s: %s group has %d items, need index %d (%s)",
					domain.ErrPageStructure, pageURL, g.Name, items.Length(), s.Item, s.Field)
			}
			spans := items.Eq(s.Item).Find(valueSelector)
			if s.Span >= spans.Length() {
				return nil, fmt.Errorf("%w: %s: %s item %d has %d value spans, need index %d (%s)",
					domain.ErrPageStructure, pageURL, g.Name, s.Item, spans.Length(), s.Span, s.Field)
			}
			product.SetField(s.Field, normalizeText(spans.Eq(s.Span).Text()))
		}
	}

	return product, nil
}

// firstText returns the normalized text of the first element matching selector
func firstText(sel *goquery.Selection, selector, pageURL string) (string, error) {
	found := sel.Find(selector)
	if found.Length() == 0 {
		return "", fmt.Errorf("%w: %s: no element matches %q", domain.ErrPageStructure, pageURL, selector)
	}
	return normalizeText(found.First().Text()), nil
}

// cleanName drops decorative trademark glyphs from a product title
func cleanName(name string) string {
	return normalizeText(trademarkReplacer.Replace(name))
}

// normalizeText collapses runs of whitespace and trims the ends, approximating
// the rendered text a browser reports for an element.
func normalizeText(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}
