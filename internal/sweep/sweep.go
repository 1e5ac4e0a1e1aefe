// Package sweep applies closing predicates to the open tab list and closes
// the matches, in one linear pass with no retries.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"

	"github.com/dgnsrekt/tab_janitor/internal/devtools"
	"github.com/dgnsrekt/tab_janitor/internal/history"
	"github.com/dgnsrekt/tab_janitor/internal/rules"
)

// Mode selects which predicate subset a run evaluates.
type Mode string

const (
	ModeAll       Mode = "all"
	ModeEmptyOnly Mode = "empty-only"
	ModeCIOnly    Mode = "ci-only"
	ModeSitesOnly Mode = "sites-only"
)

// Target is one tab marked for closing, with the reason that matched.
type Target struct {
	Tab    devtools.Tab
	Reason string
}

// Summary reports what a run did.
type Summary struct {
	Total   int // tabs reported by the browser
	Matched int // tabs that met a closing criterion
	Closed  int // tabs actually closed (or would be, in dry-run)
	DryRun  bool
}

// tabAPI is the slice of the devtools client a run needs.
type tabAPI interface {
	ListTabs(ctx context.Context) ([]devtools.Tab, error)
	CloseTab(ctx context.Context, id target.ID) error
}

// Options configures a run.
type Options struct {
	Mode       Mode
	DryRun     bool
	CloseDelay time.Duration
	Rules      rules.Set
}

// Runner executes one sweep over the browser's open tabs.
type Runner struct {
	api  tabAPI
	out  io.Writer
	hist *history.Writer // nil disables history
	opts Options
}

// NewRunner creates a Runner. hist may be nil.
func NewRunner(api tabAPI, out io.Writer, hist *history.Writer, opts Options) *Runner {
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return &Runner{api: api, out: out, hist: hist, opts: opts}
}

// Run fetches the tab list, plans the closures, and executes them. A tab
// list failure is fatal and returned; individual close failures are not.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	tabs, err := r.api.ListTabs(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch tab list: %w", err)
	}

	summary := Summary{Total: len(tabs), DryRun: r.opts.DryRun}
	if len(tabs) == 0 {
		fmt.Fprintln(r.out, "No tabs found.")
		return summary, nil
	}
	fmt.Fprintf(r.out, "Found %d total tabs.\n", len(tabs))

	targets := Plan(tabs, r.opts.Mode, r.opts.Rules)
	summary.Matched = len(targets)
	if len(targets) == 0 {
		fmt.Fprintln(r.out, "No tabs found matching the cleanup criteria.")
		return summary, nil
	}

	summary.Closed = r.closeAll(ctx, targets)
	r.printSummary(summary)
	return summary, nil
}

// Plan evaluates the predicates selected by mode against each tab, in
// priority order (empty, then CI, then configured sites), short-circuiting
// at the first match. Tab order is preserved.
func Plan(tabs []devtools.Tab, mode Mode, set rules.Set) []Target {
	var targets []Target
	for _, tab := range tabs {
		if skipInternal(tab.URL) {
			slog.Debug("skipping internal page", "url", tab.URL)
			continue
		}

		var d Decision
		if mode == ModeAll || mode == ModeEmptyOnly {
			d = EmptyTab(tab)
		}
		if !d.Close && (mode == ModeAll || mode == ModeCIOnly) {
			d = CIPage(tab)
		}
		if !d.Close && (mode == ModeAll || mode == ModeSitesOnly) {
			d = ConfiguredSite(tab, set)
		}

		if d.Close {
			targets = append(targets, Target{Tab: tab, Reason: d.Reason})
		}
	}
	return targets
}

// skipInternal reports whether a URL is a browser-internal page that must
// never be touched. The new-tab page is the one exception: it stays fair
// game for the empty-tab predicate.
func skipInternal(url string) bool {
	if strings.HasPrefix(url, "chrome://newtab") {
		return false
	}
	return strings.HasPrefix(url, "chrome-extension://") || strings.HasPrefix(url, "chrome://")
}

func (r *Runner) closeAll(ctx context.Context, targets []Target) int {
	verb := "Closing"
	if r.opts.DryRun {
		verb = "Would close"
	}
	fmt.Fprintf(r.out, "\n%s %d tabs:\n", verb, len(targets))
	fmt.Fprintln(r.out, separator)

	closed := 0
	for _, t := range targets {
		if ctx.Err() != nil {
			slog.Info("sweep interrupted", "closed", closed, "remaining", len(targets)-closed)
			break
		}

		r.printTarget(t)
		r.record(t)

		if r.opts.DryRun {
			closed++
		} else if err := r.api.CloseTab(ctx, t.Tab.ID); err != nil {
			slog.Warn("failed to close tab", "id", t.Tab.ID, "url", t.Tab.URL, "error", err)
		} else {
			closed++
			if r.opts.CloseDelay > 0 {
				time.Sleep(r.opts.CloseDelay)
			}
		}

		fmt.Fprintln(r.out, separator)
	}
	return closed
}

func (r *Runner) record(t Target) {
	if r.hist == nil {
		return
	}
	rec := history.Record{
		Time:   time.Now().UTC(),
		TabID:  string(t.Tab.ID),
		URL:    t.Tab.URL,
		Title:  t.Tab.Title,
		Reason: t.Reason,
		DryRun: r.opts.DryRun,
	}
	if err := r.hist.Append(rec); err != nil {
		slog.Warn("failed to append sweep history", "error", err)
	}
}
