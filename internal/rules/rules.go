// Package rules implements user-configured site rules: pattern lists that
// mark additional tabs for closing beyond the built-in predicates.
package rules

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Match types accepted in a site rule's match_type field.
const (
	MatchDomainContains = "domain_contains"
	MatchDomainExact    = "domain_exact"
	MatchURLContains    = "url_contains"
	MatchURLRegex       = "url_regex"
	MatchURLGlob        = "url_glob"
)

// SiteRule is one user-supplied closing rule. Rules are evaluated in file
// order and never mutated after loading.
type SiteRule struct {
	Name      string   `json:"name" yaml:"name"`
	Patterns  []string `json:"patterns" yaml:"patterns"`
	MatchType string   `json:"match_type" yaml:"match_type"`
	Enabled   bool     `json:"enabled" yaml:"enabled"`
}

// Set is the full rule configuration loaded from a sites file.
type Set struct {
	Sites []SiteRule `json:"configurable_sites" yaml:"configurable_sites"`
}

// Match reports whether any enabled rule matches the tab URL. The first
// matching rule wins; the returned reason names it.
func (s Set) Match(rawURL string) (string, bool) {
	for _, rule := range s.Sites {
		if !rule.Enabled {
			continue
		}
		if pattern, ok := rule.match(rawURL); ok {
			return fmt.Sprintf("Configured site %q (%s %s)", rule.Name, rule.MatchType, pattern), true
		}
	}
	return "", false
}

// match checks the rule's patterns in order against the tab URL. Patterns
// that fail to compile (regex or glob) are silent non-matches.
func (r SiteRule) match(rawURL string) (string, bool) {
	host := hostOf(rawURL)

	for _, pattern := range r.Patterns {
		if pattern == "" {
			continue
		}
		switch r.MatchType {
		// hostOf lowercases, so domain patterns compare case-insensitively.
		case MatchDomainContains:
			if host != "" && strings.Contains(host, strings.ToLower(pattern)) {
				return pattern, true
			}
		case MatchDomainExact:
			if host != "" && host == strings.ToLower(pattern) {
				return pattern, true
			}
		case MatchURLContains:
			if strings.Contains(rawURL, pattern) {
				return pattern, true
			}
		case MatchURLRegex:
			re, err := regexp.Compile(pattern)
			if err != nil {
				slog.Debug("skipping invalid regex pattern", "rule", r.Name, "pattern", pattern, "error", err)
				continue
			}
			if re.MatchString(rawURL) {
				return pattern, true
			}
		case MatchURLGlob:
			g, err := glob.Compile(pattern)
			if err != nil {
				slog.Debug("skipping invalid glob pattern", "rule", r.Name, "pattern", pattern, "error", err)
				continue
			}
			if g.Match(rawURL) {
				return pattern, true
			}
		}
	}
	return "", false
}

// hostOf extracts the lowercase host (without port) from a URL, or "" when
// the URL does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
