package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"dario.cat/mergo"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"

	"github.com/alanmeadows/gh-pr-comments/internal/gitctx"
)

const (
	appName  = "gh-pr-comments"
	fileName = "config.jsonc"
)

// Load reads and merges configuration from user-level and repo-level JSONC files.
// Resolution order: defaults → user config (~/.config/gh-pr-comments/config.jsonc) →
// repo config (.gh-pr-comments/config.jsonc), or the file at path when path is non-empty →
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if userPath, err := UserPath(); err == nil {
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return nil, fmt.Errorf("merging user config: %w", err)
		}
	}

	if path != "" {
		if err := mergeFile(&cfg, path, true); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", path, err)
		}
	} else if repoPath := RepoPath(); repoPath != "" {
		if err := mergeFile(&cfg, repoPath, false); err != nil {
			return nil, fmt.Errorf("merging repo config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// UserPath returns the location of the user-level config file.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// RepoPath returns the location of the repo-level config file for the working directory,
// or an empty string outside a repository.
func RepoPath() string {
	root := RepoRoot()
	if root == "" {
		return ""
	}
	return filepath.Join(root, "."+appName, fileName)
}

// RepoRoot returns the repository root of the working directory, or an empty string if
// not in a repository.
func RepoRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := gitctx.RepoRoot(wd)
	if err != nil {
		return ""
	}
	return root
}

// mergeFile merges the JSONC file at path into cfg. A missing file is ignored unless
// required is set.
func mergeFile(cfg *Config, path string, required bool) error {
	m, err := loadJSONC(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	slog.Debug("loaded config file", "path", path)
	return mergeIntoConfig(cfg, m)
}

// loadJSONC reads a JSONC file and returns it as a map.
func loadJSONC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonData := jsonc.ToJSON(data)
	var m map[string]any
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// mergeIntoConfig marshals the config to a map, deep-merges the source map over it,
// then unmarshals back to the Config struct.
func mergeIntoConfig(cfg *Config, src map[string]any) error {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var dst map[string]any
	if err := json.Unmarshal(cfgBytes, &dst); err != nil {
		return err
	}

	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return err
	}

	merged, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, cfg)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if apiURL := os.Getenv("GH_PR_COMMENTS_API_URL"); apiURL != "" {
		cfg.GitHub.APIURL = apiURL
	} else if apiURL := os.Getenv("GITHUB_API_URL"); apiURL != "" && cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = apiURL
	}
	if host := os.Getenv("GH_PR_COMMENTS_HOST"); host != "" {
		cfg.GitHub.Host = host
	}
}

// ParseValue converts a command-line value to the most specific JSON type:
// bool, then integer, then float, then string.
func ParseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// ErrInvalidValue is returned by SetValue when the written file would no longer load.
var ErrInvalidValue = errors.New("invalid config value")

// SetValue writes value at the dotted key path in the JSONC file at path, creating the
// file and its directory if needed. The write is rejected with ErrInvalidValue when the
// result does not decode into Config. Comments in an existing file are not preserved.
func SetValue(path, key string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return WithLock(path, DefaultLockTimeout, func() error {
		existing := []byte("{}")
		if data, err := os.ReadFile(path); err == nil {
			// sjson requires valid JSON, so comments are stripped first.
			existing = jsonc.ToJSON(data)
		}

		updated, err := sjson.SetBytes(existing, key, value)
		if err != nil {
			return fmt.Errorf("setting key %q: %w", key, err)
		}

		if err := validate(updated); err != nil {
			return fmt.Errorf("%w: %s = %v: %v", ErrInvalidValue, key, value, err)
		}

		if err := os.WriteFile(path, updated, 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		return nil
	})
}

// SetRawValue writes a command-line value at key. The value is typed with ParseValue
// first; when that type does not fit the field, it is written as a plain string instead.
// It returns the value that was written.
func SetRawValue(path, key, raw string) (any, error) {
	value := ParseValue(raw)
	err := SetValue(path, key, value)
	if err == nil {
		return value, nil
	}
	if _, isString := value.(string); isString || !errors.Is(err, ErrInvalidValue) {
		return nil, err
	}

	if err := SetValue(path, key, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// validate reports whether data merges over the defaults the same way Load would.
func validate(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	cfg := DefaultConfig()
	return mergeIntoConfig(&cfg, m)
}
