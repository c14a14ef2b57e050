package bear

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bear-dashboard-scraper/utils"

	"github.com/chromedp/chromedp"
)

// textScanScript finds the first leaf element whose text matches the regex.
// Leaf-only so we get the metric widget's label, not a container wrapping
// half the page.
const textScanScript = `(() => {
	const re = new RegExp(%s, 'i');
	for (const el of document.querySelectorAll('body *')) {
		if (el.children.length > 0) continue;
		const text = (el.textContent || '').trim();
		if (text && re.test(text)) return text;
	}
	return '';
})()`

// chromedpDocument adapts a chromedp tab context to the Document interface.
type chromedpDocument struct {
	tabCtx      context.Context
	settleDelay time.Duration
}

func (d *chromedpDocument) WaitReady(ctx context.Context) error {
	if err := chromedp.Run(d.tabCtx, chromedp.WaitVisible(`body`, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("dashboard did not settle: %w", err)
	}
	// Metrics render client-side after login; give them a moment.
	return utils.Sleep(ctx, d.settleDelay)
}

func (d *chromedpDocument) QueryText(ctx context.Context, pattern SelectorPattern, timeout time.Duration) (string, error) {
	attemptCtx, cancel := context.WithTimeout(d.tabCtx, timeout)
	defer cancel()

	switch pattern.Kind {
	case PatternCSS:
		var text string
		err := chromedp.Run(attemptCtx, chromedp.Text(pattern.Expr, &text, chromedp.ByQuery))
		if err != nil {
			// chromedp.Text waits for the element to appear, so an absent
			// element surfaces as the attempt deadline expiring.
			if attemptCtx.Err() != nil {
				return "", ErrNoMatch
			}
			return "", fmt.Errorf("query %q: %w", pattern.Expr, err)
		}
		return strings.TrimSpace(text), nil

	case PatternTextRegex:
		var text string
		script := fmt.Sprintf(textScanScript, strconv.Quote(pattern.Expr))
		err := chromedp.Run(attemptCtx, chromedp.Evaluate(script, &text))
		if err != nil {
			if attemptCtx.Err() != nil {
				return "", ErrNoMatch
			}
			return "", fmt.Errorf("text scan %q: %w", pattern.Expr, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNoMatch
		}
		return strings.TrimSpace(text), nil

	default:
		return "", fmt.Errorf("unknown selector pattern kind %d", pattern.Kind)
	}
}
