package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanmeadows/gh-pr-comments/internal/config"
	"github.com/alanmeadows/gh-pr-comments/internal/logging"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gh-pr-comments configuration",
		Long:  `Show and modify gh-pr-comments configuration values.`,
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigSetCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if jsonOutput {
				data, err = json.Marshal(opts.cfg)
			} else {
				data, err = json.MarshalIndent(opts.cfg, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output raw JSON without formatting")
	return cmd
}

func newConfigSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a configuration value using a dotted key path.

The value is written to .gh-pr-comments/config.jsonc in the repository root.
The file is created if it does not exist.

Values are written as booleans when they parse as one, otherwise as strings.
A value that does not fit the key's type is rejected and the file is left unchanged.

Note: JSONC comments are not preserved on write.`,
		Example: `  gh-pr-comments config set github.host github.example.com
  gh-pr-comments config set github.api_url https://github.example.com/api/v3/
  gh-pr-comments config set output.frontmatter true`,
		Args: cobra.ExactArgs(2),
		// Skips config.Load: set must still work on a file that no longer loads.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			path := config.RepoPath()
			if path == "" {
				return fmt.Errorf("not in a git repository")
			}

			value, err := config.SetRawValue(path, key, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return nil
		},
	}
}
