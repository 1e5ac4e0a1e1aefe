package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "sites.json", `{
		"configurable_sites": [
			{"name": "docs", "patterns": ["docs.test"], "match_type": "domain_exact", "enabled": true},
			{"name": "old", "patterns": ["old.test"], "match_type": "url_contains", "enabled": false}
		]
	}`)

	set := Load(path)
	require.Len(t, set.Sites, 2)
	assert.Equal(t, "docs", set.Sites[0].Name)
	assert.Equal(t, MatchDomainExact, set.Sites[0].MatchType)
	assert.True(t, set.Sites[0].Enabled)
	assert.False(t, set.Sites[1].Enabled)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "sites.yaml", `
configurable_sites:
  - name: dashboards
    patterns:
      - "grafana."
    match_type: domain_contains
    enabled: true
`)

	set := Load(path)
	require.Len(t, set.Sites, 1)
	assert.Equal(t, "dashboards", set.Sites[0].Name)
	assert.Equal(t, []string{"grafana."}, set.Sites[0].Patterns)
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	set := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, set.Sites)
}

func TestLoadMalformedFileYieldsEmptySet(t *testing.T) {
	path := writeFile(t, "sites.json", `{"configurable_sites": [`)
	set := Load(path)
	assert.Empty(t, set.Sites)
}
