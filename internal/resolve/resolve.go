// Package resolve turns a user-supplied pull request token into a Reference.
//
// A token is tried against three shapes in a fixed order: an absolute URL, a slash
// separated path, and a bare number. The first shape that recognizes the token decides
// the outcome; an error inside a recognized shape is final and never falls through to the
// next shape.
package resolve

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DefaultHost is the hosting domain recognized in ambient remote URLs.
const DefaultHost = "github.com"

var (
	// /{owner}/{repo}/pull/{number}, optionally followed by more segments (/files, /commits).
	urlPathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/pull/(\d+)(?:/|$)`)

	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// AmbientRemote is a snapshot of the remote URL configured in the working directory.
type AmbientRemote struct {
	URL string
}

// RemoteLookup reads the ambient remote. It is only invoked for bare-number tokens
// without a repository hint.
type RemoteLookup func() (AmbientRemote, error)

// Resolver resolves tokens against a known hosting domain and an ambient remote source.
type Resolver struct {
	// Host is the hosting domain an ambient remote must point at. Empty means DefaultHost.
	Host string
	// Lookup reads the ambient remote. Nil means no repository context is available.
	Lookup RemoteLookup
}

// New returns a Resolver for host using lookup as the ambient remote source.
func New(host string, lookup RemoteLookup) *Resolver {
	return &Resolver{Host: host, Lookup: lookup}
}

// Resolve resolves token with the default host. repoHint is "owner/repo" or empty.
func Resolve(token, repoHint string, lookup RemoteLookup) (Reference, error) {
	return New(DefaultHost, lookup).Resolve(token, repoHint)
}

// matcher tries one token shape. ok is false when the token is not of this shape;
// when ok is true the returned reference or error is final.
type matcher func(r *Resolver, token, repoHint string) (ref Reference, ok bool, err error)

var matchers = []matcher{
	(*Resolver).matchURL,
	(*Resolver).matchSlashPath,
	(*Resolver).matchNumber,
}

// Resolve resolves token into a Reference. repoHint is an optional "owner/repo" used with
// bare-number tokens; an empty string means no hint.
func (r *Resolver) Resolve(token, repoHint string) (Reference, error) {
	token = strings.TrimSpace(token)
	repoHint = strings.TrimSpace(repoHint)

	for _, match := range matchers {
		ref, ok, err := match(r, token, repoHint)
		if !ok {
			continue
		}
		if err != nil {
			return Reference{}, err
		}
		return ref, nil
	}
	return Reference{}, newError(ErrUnrecognizedFormat, token, nil)
}

func (r *Resolver) matchURL(token, _ string) (Reference, bool, error) {
	u, err := url.Parse(token)
	if err != nil || u.Scheme == "" {
		return Reference{}, false, nil
	}

	m := urlPathPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return Reference{}, true, newError(ErrInvalidPullRequestURL, token, nil)
	}
	number, err := parseNumber(m[3])
	if err != nil {
		return Reference{}, true, newError(ErrInvalidNumber, token, err)
	}
	return Reference{owner: m[1], repo: m[2], number: number}, true, nil
}

func (r *Resolver) matchSlashPath(token, _ string) (Reference, bool, error) {
	if !strings.Contains(token, "/") {
		return Reference{}, false, nil
	}

	parts := strings.Split(token, "/")
	switch {
	case len(parts) == 2:
		return Reference{}, true, newError(ErrMissingPRNumber, token, nil)
	case len(parts) == 4 && parts[2] == "pull":
		if parts[0] == "" || parts[1] == "" {
			return Reference{}, true, newError(ErrUnrecognizedFormat, token, nil)
		}
		number, err := parseNumber(parts[3])
		if err != nil {
			return Reference{}, true, newError(ErrInvalidNumber, token, err)
		}
		return Reference{owner: parts[0], repo: parts[1], number: number}, true, nil
	default:
		return Reference{}, true, newError(ErrUnrecognizedFormat, token, nil)
	}
}

func (r *Resolver) matchNumber(token, repoHint string) (Reference, bool, error) {
	if !digitsPattern.MatchString(token) {
		return Reference{}, false, nil
	}

	number, err := parseNumber(token)
	if err != nil {
		return Reference{}, true, newError(ErrInvalidNumber, token, err)
	}

	if repoHint != "" {
		owner, repo, ok := splitOwnerRepo(repoHint)
		if !ok {
			return Reference{}, true, newError(ErrInvalidRepoHint, repoHint, nil)
		}
		return Reference{owner: owner, repo: repo, number: number}, true, nil
	}

	owner, repo, err := r.ambientRepo()
	if err != nil {
		return Reference{}, true, err
	}
	return Reference{owner: owner, repo: repo, number: number}, true, nil
}

func (r *Resolver) ambientRepo() (string, string, error) {
	if r.Lookup == nil {
		return "", "", newError(ErrNoRepositoryContext, "", errors.New("no remote lookup configured"))
	}
	remote, err := r.Lookup()
	if err != nil {
		return "", "", newError(ErrNoRepositoryContext, "", err)
	}
	return MatchRemote(r.host(), remote.URL)
}

func (r *Resolver) host() string {
	if r.Host == "" {
		return DefaultHost
	}
	return r.Host
}

// MatchRemote extracts owner and repo from a remote URL pointing at host. It accepts
// scp-like (git@host:owner/repo.git), ssh:// and http(s):// remotes; a trailing .git is
// stripped from the repository name.
func MatchRemote(host, remoteURL string) (owner, repo string, err error) {
	pattern, err := regexp.Compile(regexp.QuoteMeta(host) + `[:/]([^/]+)/([^/]+?)(?:\.git)?$`)
	if err != nil {
		return "", "", newError(ErrUnsupportedRemoteHost, remoteURL, err)
	}

	trimmed := strings.TrimSuffix(strings.TrimSpace(remoteURL), "/")
	m := pattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", newError(ErrUnsupportedRemoteHost, remoteURL, nil)
	}
	return m[1], m[2], nil
}

// splitOwnerRepo splits "owner/repo" into its two non-empty parts.
func splitOwnerRepo(s string) (string, string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseNumber parses a positive pull request number that fits in 32 bits.
func parseNumber(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("pull request numbers start at 1")
	}
	return int(n), nil
}
