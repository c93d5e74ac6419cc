package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/vegasq/datadrill/output"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string
}

// NewRootCommand creates the root command for the datadrill CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "datadrill",
		Short: "Run prefix-aware column expressions over tabular data",
		Long: `datadrill evaluates filter and select expressions against parquet, Arrow,
CSV and SQLite sources. Field names in expressions resolve under an active
prefix, so one pipeline can run against several column namespaces.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(output.Formats, strings.ToLower(opts.Format)) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, output.Formats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log each pipeline step to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", output.FormatJSONLines,
		"output format ("+strings.Join(output.Formats, "|")+")")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}
