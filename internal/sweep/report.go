package sweep

import (
	"fmt"
	"strings"
)

var separator = strings.Repeat("-", 80)

const (
	maxTitleDisplay = 60
	maxURLDisplay   = 80
)

func (r *Runner) printTarget(t Target) {
	fmt.Fprintf(r.out, "Title: %s\n", truncate(t.Tab.Title, maxTitleDisplay))
	fmt.Fprintf(r.out, "URL:   %s\n", truncate(t.Tab.URL, maxURLDisplay))
	fmt.Fprintf(r.out, "Reason: %s\n", t.Reason)
}

func (r *Runner) printSummary(s Summary) {
	action := "closed"
	if s.DryRun {
		action = "would be closed"
	}
	fmt.Fprintf(r.out, "\nSummary: %d tabs %s.\n", s.Closed, action)
	if s.DryRun {
		fmt.Fprintln(r.out, "\nTo actually close these tabs, run again without --dry-run")
	}
}

// Line formats a one-line summary suitable for notifications.
func (s Summary) Line() string {
	action := "closed"
	if s.DryRun {
		action = "would be closed"
	}
	return fmt.Sprintf("tab janitor: %d of %d tabs %s", s.Closed, s.Total, action)
}

// truncate shortens s to max characters, never splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
