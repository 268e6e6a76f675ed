package resolve

import "fmt"

// Reference identifies a single pull request. The zero value is not a valid reference;
// references are only produced by Resolve, which guarantees a non-empty owner and repo
// without slashes and a positive number.
type Reference struct {
	owner  string
	repo   string
	number int
}

// Owner returns the repository owner (user or organization).
func (r Reference) Owner() string { return r.owner }

// Repo returns the repository name.
func (r Reference) Repo() string { return r.repo }

// Number returns the pull request number.
func (r Reference) Number() int { return r.number }

// String returns the short form owner/repo#number.
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s#%d", r.owner, r.repo, r.number)
}

// URL returns the web URL of the pull request on the given host.
func (r Reference) URL(host string) string {
	return fmt.Sprintf("https://%s/%s/%s/pull/%d", host, r.owner, r.repo, r.number)
}
