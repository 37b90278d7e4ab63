package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/configarray/configarray"
)

// loadGlobalIgnoreEntry loads this tool's own global ignore file (distinct
// from a project's own config entries) and returns it as a global-ignore
// ConfigEntry ready to Push onto a ConfigArray. The path is resolved in
// order:
//
//  1. $CONFIGARRAY_IGNORE_FILE, if set
//  2. $XDG_CONFIG_HOME/configarray/ignore, if XDG_CONFIG_HOME is set
//  3. ~/.config/configarray/ignore
//
// A missing file is not an error: it simply contributes no entry.
func loadGlobalIgnoreEntry() (configarray.ConfigEntry, error) {
	path, err := resolveGlobalIgnorePath()
	if err != nil {
		return nil, errors.Wrap(err, "resolving global ignore path")
	}
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading global ignore file %s", path)
	}

	lines := parseIgnoreFileLines(content)
	if len(lines) == 0 {
		return nil, nil
	}
	return configarray.ConfigEntry{"ignores": lines}, nil
}

func resolveGlobalIgnorePath() (string, error) {
	if custom := os.Getenv("CONFIGARRAY_IGNORE_FILE"); custom != "" {
		return expandTilde(custom)
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "configarray", "ignore"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determining home directory")
	}
	return filepath.Join(home, ".config", "configarray", "ignore"), nil
}

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "expanding ~")
	}
	return home + strings.TrimPrefix(path, "~"), nil
}

// parseIgnoreFileLines turns raw global-ignore-file bytes into an ordered
// list of pattern strings: strips a UTF-8 BOM, normalizes CRLF/CR to LF,
// and drops blank lines and full-line comments ("#...").
func parseIgnoreFileLines(content []byte) []string {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	var out []string
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimRight(raw, " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
