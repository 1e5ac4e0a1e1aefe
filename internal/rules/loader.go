package rules

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a sites file and returns its rule set. A missing file is not
// an error, it just means no configured rules; an unreadable or malformed
// file is logged as a warning and likewise yields an empty set. The sweep
// must never be blocked by bad rule configuration.
func Load(path string) Set {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("sites file not present", "path", path)
			return Set{}
		}
		slog.Warn("failed to read sites file, ignoring it", "path", path, "error", err)
		return Set{}
	}

	var set Set
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &set)
	default:
		err = json.Unmarshal(data, &set)
	}
	if err != nil {
		slog.Warn("failed to parse sites file, ignoring it", "path", path, "error", err)
		return Set{}
	}

	slog.Debug("sites file loaded", "path", path, "rules", len(set.Sites))
	return set
}
