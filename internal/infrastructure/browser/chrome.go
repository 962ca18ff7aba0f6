package browser

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/menuscraper/backend/internal/domain"
)

// Options configures the Chrome process started for a collector run
type Options struct {
	Headless  bool
	UserAgent string
	ExecPath  string // empty means let chromedp locate Chrome
}

// ChromeLauncher starts headless Chrome sessions through chromedp
type ChromeLauncher struct {
	opts Options
}

// NewChromeLauncher creates a launcher with the given options
func NewChromeLauncher(opts Options) *ChromeLauncher {
	return &ChromeLauncher{opts: opts}
}

// Launch starts Chrome and opens a tab. The returned session owns the
// process; closing it (or cancelling ctx) terminates Chrome.
func (l *ChromeLauncher) Launch(ctx context.Context) (domain.BrowserSession, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.Flag("headless", l.opts.Headless))
	if l.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(l.opts.UserAgent))
	}
	if l.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(l.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser so launch errors surface here
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("%w: failed to start chrome: %v", domain.ErrBrowser, err)
	}

	log.Printf("[Browser] Chrome started (headless=%v)", l.opts.Headless)
	return &chromeSession{
		ctx: tabCtx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
	}, nil
}

type chromeSession struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *chromeSession) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: navigate %s: %v", domain.ErrBrowser, url, err)
	}
	return nil
}

func (s *chromeSession) ExpandDetails(selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	// clickable: rendered, visible and not disabled
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.WaitEnabled(selector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: waiting for %q: %v", domain.ErrBrowser, selector, err)
	}

	err = chromedp.Run(s.ctx,
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		hover(selector),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: clicking %q: %v", domain.ErrBrowser, selector, err)
	}
	return nil
}

func (s *chromeSession) HTML() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: reading document: %v", domain.ErrBrowser, err)
	}
	return html, nil
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		// Cancel closes the tab and kills the Chrome process
		s.cancel()
		log.Printf("[Browser] Chrome stopped")
	})
	return nil
}

// hover moves the mouse pointer to the centre of the first element matching selector
func hover(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var box *dom.BoxModel
		if err := chromedp.Dimensions(selector, &box, chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}
		x, y := center(box.Content)
		return chromedp.MouseEvent(input.MouseMoved, x, y).Do(ctx)
	})
}

// center returns the midpoint of a quad given as x1,y1,...,x4,y4
func center(q dom.Quad) (float64, float64) {
	if len(q) < 8 {
		return 0, 0
	}
	return (q[0] + q[2] + q[4] + q[6]) / 4, (q[1] + q[3] + q[5] + q[7]) / 4
}
