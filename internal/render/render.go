// Package render fetches a pull request's review comments and writes them as markdown.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"text/template"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/alanmeadows/gh-pr-comments/internal/github"
	"github.com/alanmeadows/gh-pr-comments/internal/resolve"
)

//go:generate mockgen -destination=fetcher_mock_test.go -package=render . Fetcher

//go:embed templates/*.tmpl
var templateFS embed.FS

var documentTmpl = template.Must(template.ParseFS(templateFS, "templates/comments.md.tmpl"))

// Fetcher retrieves pull request data. *github.Client satisfies it.
type Fetcher interface {
	GetPullRequest(ctx context.Context, ref resolve.Reference) (*github.PullRequestSummary, error)
	ListReviewComments(ctx context.Context, ref resolve.Reference) ([]github.ReviewComment, error)
}

// Options controls rendering.
type Options struct {
	// IncludeResolved is accepted but has no effect: comments are never filtered by thread state.
	IncludeResolved bool
	// Frontmatter prepends a YAML metadata block to the document.
	Frontmatter bool
}

// Document is everything needed to render one pull request.
type Document struct {
	Ref      resolve.Reference
	Summary  github.PullRequestSummary
	Comments []github.ReviewComment
}

// Pipeline fetches and renders the review comments of a pull request.
type Pipeline struct {
	fetcher Fetcher
	opts    Options
}

// NewPipeline creates a Pipeline that fetches through f.
func NewPipeline(f Fetcher, opts Options) *Pipeline {
	return &Pipeline{fetcher: f, opts: opts}
}

// Run fetches the pull request summary and its review comments, then writes the document
// to w. Both fetches must succeed before anything is written.
func (p *Pipeline) Run(ctx context.Context, ref resolve.Reference, w io.Writer) error {
	var (
		summary  *github.PullRequestSummary
		comments []github.ReviewComment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = p.fetcher.GetPullRequest(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = p.fetcher.ListReviewComments(gctx, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if summary == nil {
		return fmt.Errorf("fetching pull request %s: empty response", ref)
	}

	if p.opts.IncludeResolved {
		slog.Debug("include-resolved has no effect; resolved threads are never filtered")
	}

	return Render(w, Document{Ref: ref, Summary: *summary, Comments: comments}, p.opts)
}

// documentView is the template data for comments.md.tmpl.
type documentView struct {
	Number   int
	Owner    string
	Repo     string
	Title    string
	URL      string
	Comments []github.ReviewComment
}

// metadata is the YAML block written when Options.Frontmatter is set.
type metadata struct {
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	Number   int    `yaml:"number"`
	Title    string `yaml:"title"`
	URL      string `yaml:"url"`
	Comments int    `yaml:"comments"`
}

// Render writes doc to w as markdown. Comments appear in the order given. The document
// is assembled in memory first, so a failure writes nothing.
func Render(w io.Writer, doc Document, opts Options) error {
	var buf bytes.Buffer

	if opts.Frontmatter {
		fm, err := yaml.Marshal(metadata{
			Owner:    doc.Ref.Owner(),
			Repo:     doc.Ref.Repo(),
			Number:   doc.Ref.Number(),
			Title:    doc.Summary.Title,
			URL:      doc.Summary.URL,
			Comments: len(doc.Comments),
		})
		if err != nil {
			return fmt.Errorf("marshaling frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(fm)
		buf.WriteString("---\n\n")
	}

	view := documentView{
		Number:   doc.Ref.Number(),
		Owner:    doc.Ref.Owner(),
		Repo:     doc.Ref.Repo(),
		Title:    doc.Summary.Title,
		URL:      doc.Summary.URL,
		Comments: doc.Comments,
	}
	if err := documentTmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("rendering comments: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
