package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the persisted catalog document
type CatalogRepository interface {
	Load(ctx context.Context) (Catalog, error)
	Save(ctx context.Context, catalog Catalog) error
}

// BrowserSession is one exclusively-owned browser tab driven by the collector.
// Close must be called exactly once and releases the underlying browser.
type BrowserSession interface {
	Navigate(url string) error
	// ExpandDetails waits up to timeout for the control matched by selector to
	// become clickable, moves the pointer onto it and clicks it.
	ExpandDetails(selector string, timeout time.Duration) error
	// HTML returns the current rendered document
	HTML() (string, error)
	Close() error
}

// BrowserLauncher starts a new browser session bound to ctx
type BrowserLauncher interface {
	Launch(ctx context.Context) (BrowserSession, error)
}
