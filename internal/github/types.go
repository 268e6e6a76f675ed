package github

// PullRequestSummary is the pull request metadata shown in the document header.
type PullRequestSummary struct {
	// Title is the pull request title.
	Title string
	// URL is the web URL of the pull request.
	URL string
}

// ReviewComment is a single inline review comment on a pull request diff.
type ReviewComment struct {
	// Author is the login of the comment author.
	Author string
	// Body is the comment text, verbatim.
	Body string
	// CreatedAt is the creation timestamp in RFC 3339 form.
	CreatedAt string
	// URL is the permalink to the comment.
	URL string
	// DiffHunk is the diff context the comment is attached to.
	DiffHunk string
	// FilePath is the path of the commented file.
	FilePath string
	// Line is the line number in the diff, or 0 when the comment is not anchored to a line.
	Line int
}

// HasLine reports whether the comment is anchored to a line.
func (c ReviewComment) HasLine() bool {
	return c.Line > 0
}
