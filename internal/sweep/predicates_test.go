package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgnsrekt/tab_janitor/internal/devtools"
	"github.com/dgnsrekt/tab_janitor/internal/rules"
)

func TestEmptyTab(t *testing.T) {
	tests := []struct {
		name      string
		tab       devtools.Tab
		wantClose bool
	}{
		{"chrome newtab", devtools.Tab{URL: "chrome://newtab/", Title: "New Tab"}, true},
		{"about blank", devtools.Tab{URL: "about:blank", Title: "whatever"}, true},
		{"new tab page", devtools.Tab{URL: "chrome://new-tab-page/", Title: "New Tab"}, true},
		{"edge newtab", devtools.Tab{URL: "edge://newtab/", Title: "New tab"}, true},
		{"err title uppercase", devtools.Tab{URL: "https://x.test/", Title: "ERR_CONNECTION_REFUSED"}, true},
		{"err title mixed case", devtools.Tab{URL: "https://x.test/", Title: "something err_name_not_resolved"}, true},
		{"site cant be reached", devtools.Tab{URL: "https://x.test/", Title: "This site can't be reached"}, true},
		{"dns probe", devtools.Tab{URL: "https://x.test/", Title: "dns_probe_finished_nxdomain"}, true},
		{"untitled", devtools.Tab{URL: "https://x.test/", Title: "Untitled"}, true},
		{"blank title", devtools.Tab{URL: "https://x.test/", Title: "   "}, true},
		{"no title field", devtools.Tab{URL: "https://x.test/"}, true},
		{"normal page", devtools.Tab{URL: "https://news.test/article", Title: "Daily News"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := EmptyTab(tc.tab)
			assert.Equal(t, tc.wantClose, d.Close)
			if tc.wantClose {
				assert.NotEmpty(t, d.Reason)
			} else {
				assert.Empty(t, d.Reason)
			}
		})
	}
}

func TestCIPage(t *testing.T) {
	tests := []struct {
		name       string
		tab        devtools.Tab
		wantClose  bool
		wantReason string
	}{
		{
			"console log before completed build",
			devtools.Tab{URL: "https://jenkins.example.com/job/x/123/console", Title: "x #123 [SUCCESS]"},
			true,
			"CI console log: https://jenkins.example.com/job/x/123/console",
		},
		{
			"completed build",
			devtools.Tab{URL: "https://jenkins.example.com/job/x/123/", Title: "x #123 SUCCESS"},
			true,
			"Completed CI build: x #123 SUCCESS",
		},
		{
			"lowercase completion word in title",
			devtools.Tab{URL: "https://jenkins.example.com/job/y/9/", Title: "y #9 failure"},
			true,
			"Completed CI build: y #9 failure",
		},
		{
			"generic ci page",
			devtools.Tab{URL: "https://jenkins.example.com/view/all/", Title: "Dashboard"},
			true,
			"CI page: https://jenkins.example.com/view/all/",
		},
		{
			"buildbot host",
			devtools.Tab{URL: "https://buildbot.corp.test/builders", Title: "Builders"},
			true,
			"CI page: https://buildbot.corp.test/builders",
		},
		{
			"console text path",
			devtools.Tab{URL: "https://hudson.corp.test/job/z/consoleText", Title: "z"},
			true,
			"CI console log: https://hudson.corp.test/job/z/consoleText",
		},
		{
			"not a ci host",
			devtools.Tab{URL: "https://example.com/console", Title: "SUCCESS story"},
			false,
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := CIPage(tc.tab)
			assert.Equal(t, tc.wantClose, d.Close)
			assert.Equal(t, tc.wantReason, d.Reason)
		})
	}
}

func TestConfiguredSite(t *testing.T) {
	set := rules.Set{Sites: []rules.SiteRule{
		{Name: "docs", Patterns: []string{"docs.test"}, MatchType: rules.MatchDomainExact, Enabled: true},
	}}

	d := ConfiguredSite(devtools.Tab{URL: "https://docs.test/page"}, set)
	assert.True(t, d.Close)
	assert.Contains(t, d.Reason, "docs")

	d = ConfiguredSite(devtools.Tab{URL: "https://other.test/"}, set)
	assert.False(t, d.Close)
}
