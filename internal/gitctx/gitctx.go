// Package gitctx reads repository metadata from the working directory.
//
// Metadata is read from the .git directory with go-git, so a git binary is not required.
// Lookups walk up from the given directory the same way git itself discovers a repository.
package gitctx

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/alanmeadows/gh-pr-comments/internal/resolve"
)

// DefaultRemote is the remote consulted when no other name is configured.
const DefaultRemote = "origin"

// ErrNoRemoteURL is returned when a remote exists but has no URL configured.
var ErrNoRemoteURL = errors.New("remote has no URL")

// open opens the repository containing dir.
func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// RemoteURL returns the first URL of the named remote of the repository containing dir.
// An empty name means DefaultRemote.
func RemoteURL(dir, name string) (string, error) {
	if name == "" {
		name = DefaultRemote
	}

	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("finding remote %q: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", fmt.Errorf("remote %q: %w", name, ErrNoRemoteURL)
	}
	return urls[0], nil
}

// RemoteLookup adapts RemoteURL into an ambient remote source for the resolver.
// The remote is re-read on every call.
func RemoteLookup(dir, name string) resolve.RemoteLookup {
	return func() (resolve.AmbientRemote, error) {
		url, err := RemoteURL(dir, name)
		if err != nil {
			return resolve.AmbientRemote{}, err
		}
		return resolve.AmbientRemote{URL: url}, nil
	}
}

// RepoRoot returns the root of the worktree containing dir.
func RepoRoot(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("reading worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}
