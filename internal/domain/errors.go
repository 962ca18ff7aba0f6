package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product is stored under the requested slug
	ErrProductNotFound = errors.New("product not found")

	// ErrFieldNotFound is returned when the product exists but the field is unknown or empty
	ErrFieldNotFound = errors.New("product field not found")

	// ErrCatalogUnavailable is returned when the catalog document is missing, unreadable or malformed
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrPageStructure is returned when a scraped page does not match the expected layout
	ErrPageStructure = errors.New("unexpected page structure")

	// ErrBrowser is returned when the browser session fails to navigate or interact
	ErrBrowser = errors.New("browser session failure")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
