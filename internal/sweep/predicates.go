package sweep

import (
	"strings"

	"github.com/dgnsrekt/tab_janitor/internal/devtools"
	"github.com/dgnsrekt/tab_janitor/internal/rules"
)

// Decision is the outcome of evaluating one predicate against one tab.
type Decision struct {
	Close  bool
	Reason string
}

// emptyURLPrefixes are the new-tab / blank pages of Chromium-family browsers.
var emptyURLPrefixes = []string{
	"chrome://newtab/",
	"about:blank",
	"chrome://new-tab-page/",
	"edge://newtab/",
	"about:newtab",
}

// errorIndicators are title fragments the browser shows on failed loads.
var errorIndicators = []string{
	"This site can't be reached",
	"Page not found",
	"Server not found",
	"Connection timed out",
	"DNS_PROBE_FINISHED",
	"ERR_",
	"Cannot connect to",
	"Failed to load",
	"Untitled",
}

// ciDomains are host fragments identifying CI systems.
var ciDomains = []string{
	"art-jenkins.apps.",
	"jenkins.",
	"ci.jenkins.io",
	"hudson.",
	"buildbot.",
}

// ciConsolePaths mark build console / log pages on a CI host.
var ciConsolePaths = []string{
	"/console",
	"/consoleFull",
	"consoleText",
	"/log",
}

// ciCompletionWords appear in titles of finished builds.
var ciCompletionWords = []string{
	"SUCCESS",
	"FAILURE",
	"ABORTED",
	"UNSTABLE",
	"COMPLETED",
}

// EmptyTab decides whether a tab is an empty or failed page: a new-tab URL,
// a load-failure title, or no title at all.
func EmptyTab(tab devtools.Tab) Decision {
	for _, prefix := range emptyURLPrefixes {
		if strings.HasPrefix(tab.URL, prefix) {
			return Decision{Close: true, Reason: "New tab page: " + tab.URL}
		}
	}

	lowerTitle := strings.ToLower(tab.Title)
	for _, indicator := range errorIndicators {
		if strings.Contains(lowerTitle, strings.ToLower(indicator)) {
			return Decision{Close: true, Reason: "Failed load detected: " + tab.Title}
		}
	}

	if strings.TrimSpace(tab.Title) == "" {
		return Decision{Close: true, Reason: "Empty title: " + tab.URL}
	}

	return Decision{}
}

// CIPage decides whether a tab is a CI-system page. Console/log pages and
// completed builds get specific reasons. Any other page on a CI host matches
// generically: every tab on a CI domain gets closed, which is intentional
// but worth knowing before a non-dry run.
func CIPage(tab devtools.Tab) Decision {
	onCIDomain := false
	for _, domain := range ciDomains {
		if strings.Contains(tab.URL, domain) {
			onCIDomain = true
			break
		}
	}
	if !onCIDomain {
		return Decision{}
	}

	for _, path := range ciConsolePaths {
		if strings.Contains(tab.URL, path) {
			return Decision{Close: true, Reason: "CI console log: " + tab.URL}
		}
	}

	upperTitle := strings.ToUpper(tab.Title)
	for _, word := range ciCompletionWords {
		if strings.Contains(upperTitle, word) {
			return Decision{Close: true, Reason: "Completed CI build: " + tab.Title}
		}
	}

	return Decision{Close: true, Reason: "CI page: " + tab.URL}
}

// ConfiguredSite decides whether a tab matches any enabled site rule.
func ConfiguredSite(tab devtools.Tab, set rules.Set) Decision {
	if reason, ok := set.Match(tab.URL); ok {
		return Decision{Close: true, Reason: reason}
	}
	return Decision{}
}
