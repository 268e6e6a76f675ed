package config

import "time"

// Config is the top-level gh-pr-comments configuration.
type Config struct {
	GitHub GitHubConfig `json:"github"`
	Output OutputConfig `json:"output"`
}

// GitHubConfig controls how pull requests are located and fetched.
type GitHubConfig struct {
	// Host is the hosting domain an origin remote must point at for bare-number lookups.
	Host string `json:"host"`
	// APIURL overrides the REST API endpoint (GitHub Enterprise). Empty means api.github.com.
	APIURL    string `json:"api_url,omitempty"`
	UserAgent string `json:"user_agent"`
	Timeout   string `json:"timeout"`
	// Remote is the git remote consulted when only a PR number is given.
	Remote string `json:"remote"`
}

// ParseTimeout returns the request timeout as a time.Duration, or 0 when the value is
// missing, malformed, or not positive. The client applies its own default for 0.
func (g GitHubConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// OutputConfig holds rendering defaults. Command-line flags take precedence.
type OutputConfig struct {
	// IncludeResolved is accepted for compatibility; resolved threads are not filtered either way.
	IncludeResolved bool `json:"include_resolved"`
	Frontmatter     bool `json:"frontmatter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitHub: GitHubConfig{
			Host:      "github.com",
			UserAgent: "gh-pr-comments",
			Timeout:   "30s",
			Remote:    "origin",
		},
	}
}
