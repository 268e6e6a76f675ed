package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/gh-pr-comments/internal/config"
	"github.com/alanmeadows/gh-pr-comments/internal/gitctx"
	"github.com/alanmeadows/gh-pr-comments/internal/github"
	"github.com/alanmeadows/gh-pr-comments/internal/logging"
	"github.com/alanmeadows/gh-pr-comments/internal/render"
	"github.com/alanmeadows/gh-pr-comments/internal/resolve"
)

// rootOptions holds the flag values and loaded config shared by all commands.
type rootOptions struct {
	verbose         bool
	configPath      string
	repo            string
	includeResolved bool
	frontmatter     bool

	cfg *config.Config
}

// NewRootCmd builds the gh-pr-comments command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gh-pr-comments [<url> | <owner>/<repo>/pull/<number> | <number>]",
		Short: "Print the review comments of a GitHub pull request as markdown",
		Long: `Fetch a pull request and its inline review comments from GitHub and print
them as a markdown document on stdout.

The pull request can be given as a full URL, as owner/repo/pull/<number>, or as a
bare number. A bare number uses --repo when given, otherwise the repository named
by the "origin" remote of the current git checkout.`,
		Example: `  gh-pr-comments https://github.com/octocat/Hello-World/pull/42
  gh-pr-comments octocat/Hello-World/pull/42
  gh-pr-comments 42 --repo octocat/Hello-World
  gh-pr-comments 42 > review.md`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.verbose)

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) > 0 {
				token = args[0]
			} else if logging.IsTerminal(os.Stdin) && logging.IsTerminal(os.Stderr) {
				var err error
				if token, err = promptToken(); err != nil {
					return err
				}
			}
			return runComments(cmd, opts, token)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose/debug output")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (replaces the repo-level config)")

	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "Repository as owner/repo, used with a bare pull request number")
	cmd.Flags().BoolVar(&opts.includeResolved, "include-resolved", false, "Include comments from resolved threads (comments are never filtered)")
	cmd.Flags().BoolVar(&opts.frontmatter, "frontmatter", false, "Prepend a YAML frontmatter block to the output")

	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// runComments resolves token to a pull request and writes its review comments to the
// command's stdout.
func runComments(cmd *cobra.Command, opts *rootOptions, token string) error {
	cfg := opts.cfg

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	resolver := resolve.New(cfg.GitHub.Host, gitctx.RemoteLookup(wd, cfg.GitHub.Remote))
	ref, err := resolver.Resolve(token, opts.repo)
	if err != nil {
		return err
	}
	slog.Debug("resolved pull request", "ref", ref.String(), "url", ref.URL(cfg.GitHub.Host))

	client, err := github.NewClient(github.Options{
		APIURL:    cfg.GitHub.APIURL,
		UserAgent: cfg.GitHub.UserAgent,
		Timeout:   cfg.GitHub.ParseTimeout(),
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	renderOpts := render.Options{
		IncludeResolved: cfg.Output.IncludeResolved,
		Frontmatter:     cfg.Output.Frontmatter,
	}
	if cmd.Flags().Changed("include-resolved") {
		renderOpts.IncludeResolved = opts.includeResolved
	}
	if cmd.Flags().Changed("frontmatter") {
		renderOpts.Frontmatter = opts.frontmatter
	}

	return render.NewPipeline(client, renderOpts).Run(cmd.Context(), ref, cmd.OutOrStdout())
}

func promptToken() (string, error) {
	var token string
	err := huh.NewInput().
		Title("Pull request").
		Description("URL, owner/repo/pull/<number>, or number").
		Value(&token).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("pull request is required")
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return token, nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		PrintError(os.Stderr, err)
	}
	return err
}

// PrintError writes err to w as "Error: <message>", styling the label when w is a terminal.
func PrintError(w io.Writer, err error) {
	label := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fmt.Fprintf(w, "%s %v\n", label.Render("Error:"), err)
}
