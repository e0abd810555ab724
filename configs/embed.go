package configs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads an embedded attack script by name.
func LoadScript(name string) ([]byte, error) {
	return ScriptsFS.ReadFile(cleanScriptPath(name))
}

//go:embed *.yaml
var ConfigsFS embed.FS

// Load reads a config table, preferring an on-disk copy under configs/
// (for live tuning with the watcher) over the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(diskConfigPath(clean)); err == nil {
		return data, nil
	}
	return ConfigsFS.ReadFile(clean)
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "configs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "configs/scripts/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "configs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return fmt.Sprintf("scripts/%s", s)
}

func diskConfigPath(clean string) string {
	return filepath.Join("configs", filepath.FromSlash(clean))
}
