package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gosimple/slug"
	"github.com/menuscraper/backend/internal/domain"
	"github.com/menuscraper/backend/internal/infrastructure/menu"
)

// CollectorConfig holds configuration for the collector
type CollectorConfig struct {
	MenuURL     string
	WaitTimeout time.Duration
	RenderDelay time.Duration
}

// Collector scrapes the whole menu into a catalog, one page at a time
type Collector struct {
	launcher    domain.BrowserLauncher
	store       domain.CatalogRepository
	menuURL     string
	waitTimeout time.Duration
	renderDelay time.Duration
}

// NewCollector creates a new collector with dependencies
func NewCollector(
	launcher domain.BrowserLauncher,
	store domain.CatalogRepository,
	config CollectorConfig,
) *Collector {
	waitTimeout := config.WaitTimeout
	if waitTimeout == 0 {
		waitTimeout = 10 * time.Second
	}

	return &Collector{
		launcher:    launcher,
		store:       store,
		menuURL:     config.MenuURL,
		waitTimeout: waitTimeout,
		renderDelay: config.RenderDelay,
	}
}

// Run scrapes every product listed on the menu page and replaces the stored
// catalog with the result. The browser session is closed on every return
// path; on any failure nothing is written.
func (c *Collector) Run(ctx context.Context) (catalog domain.Catalog, err error) {
	session, err := c.launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: close: %v", domain.ErrBrowser, closeErr)
		}
	}()

	links, err := c.EnumerateLinks(session)
	if err != nil {
		log.Printf("[Collector] Menu page %s: %v", c.menuURL, err)
		return nil, err
	}
	log.Printf("[Collector] Found %d product links", len(links))

	catalog = make(domain.Catalog, len(links))
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		product, err := c.ExtractProduct(session, link)
		if err != nil {
			log.Printf("[Collector] Product %d/%d failed (%s): %v", i+1, len(links), link, err)
			return nil, fmt.Errorf("product %d (%s): %w", i, link, err)
		}

		key := productSlug(product.Name)
		if _, dup := catalog[key]; dup {
			log.Printf("[Collector] Slug %q produced twice, keeping %s", key, link)
		}
		catalog[key] = *product
		log.Printf("[Collector] %d/%d %s -> %s", i+1, len(links), link, key)
	}

	if err := c.store.Save(ctx, catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

// separators are turned into word breaks instead of the English words slug
// would spell out, so "Fries & Cola" keys as fries-cola.
var separators = map[string]string{
	"&": " ",
	"@": " ",
	"'": " ",
	"’": " ",
}

// productSlug derives the catalog key from a product name
func productSlug(name string) string {
	return slug.Make(slug.Substitute(name, separators))
}

// EnumerateLinks opens the menu page and returns the absolute URL of every
// product in listing order.
func (c *Collector) EnumerateLinks(session domain.BrowserSession) ([]string, error) {
	if err := session.Navigate(c.menuURL); err != nil {
		return nil, err
	}

	html, err := session.HTML()
	if err != nil {
		return nil, err
	}

	return menu.ParseLinks(html, c.menuURL)
}

// ExtractProduct opens a product page, expands the nutrition details panel
// and reads the product record.
func (c *Collector) ExtractProduct(session domain.BrowserSession, url string) (*domain.Product, error) {
	if err := session.Navigate(url); err != nil {
		return nil, err
	}

	if err := session.ExpandDetails(menu.DetailsButtonSelector, c.waitTimeout); err != nil {
		return nil, err
	}

	// The panel content renders asynchronously after the click
	if c.renderDelay > 0 {
		time.Sleep(c.renderDelay)
	}

	html, err := session.HTML()
	if err != nil {
		return nil, err
	}

	product, err := menu.ParseProduct(html, url)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// IsStructuralFailure reports whether err came from a page that did not
// match the expected layout, as opposed to a browser or storage failure.
func IsStructuralFailure(err error) bool {
	return errors.Is(err, domain.ErrPageStructure)
}
