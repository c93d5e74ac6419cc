package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/datadrill/internal/config"
	"github.com/vegasq/datadrill/output"
	"github.com/vegasq/datadrill/reader"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	Config string
	Prefix string
	Where  []string
	Select []string
	Limit  int
	Table  string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [source]",
		Short: "Filter and project a source",
		Long: `Load a source, apply --where filters in order, project to the --select
expressions and write the result.

Field names resolve under --prefix: with --prefix modified_ the field
"numbers" reads the column "modified_numbers". Inside an expression,
prefix('p', e) and noprefix(e) change the prefix for e alone.

A pipeline file given with --config supplies defaults; flags override it.`,
		Example: `  datadrill run data.parquet --where "numbers > 1" --select numbers
  datadrill run data.parquet --prefix modified_ --select "numbers - noprefix(numbers) as delta"
  datadrill run "logs/*.parquet" --select _file --limit 10
  datadrill run app.db --table events --format table
  datadrill run --config pipeline.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "pipeline YAML file")
	cmd.Flags().StringVarP(&opts.Prefix, "prefix", "p", "", "prefix field names resolve under")
	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter expression (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Select, "select", "s", nil, "output expression (repeatable)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "maximum number of rows (0 = unlimited)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table to read from a SQLite source")

	return cmd
}

// pipelineFor merges the config file, flags and positional source into one
// pipeline. Flags that were set replace config values.
func pipelineFor(rootOpts *RootOptions, opts *RunOptions, args []string, cmd *cobra.Command) (*config.Pipeline, error) {
	p := &config.Pipeline{}
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	flags := cmd.Flags()
	if len(args) == 1 {
		p.Source = args[0]
	}
	if flags.Changed("prefix") {
		p.Prefix = opts.Prefix
	}
	if flags.Changed("where") {
		p.Filter = opts.Where
	}
	if flags.Changed("select") {
		p.Select = opts.Select
	}
	if flags.Changed("limit") {
		p.Limit = opts.Limit
	}
	if flags.Changed("table") {
		p.Table = opts.Table
	}
	if flags.Changed("format") || p.Format == "" {
		p.Format = rootOpts.Format
	}

	if p.Source == "" {
		return nil, errors.New("no source: pass a path or set source in --config")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func runRun(rootOpts *RootOptions, opts *RunOptions, args []string, cmd *cobra.Command) error {
	p, err := pipelineFor(rootOpts, opts, args, cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose).
		With(zap.String("run", uuid.Must(uuid.NewV7()).String()))
	defer func() { _ = logger.Sync() }()

	formatter, err := output.New(p.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	table, err := reader.Open(cmd.Context(), p.Source, reader.Options{Table: p.Table})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", p.Source, err)
	}
	logger.Debug("loaded source",
		zap.String("source", p.Source),
		zap.Int("rows", table.Len()),
		zap.Strings("columns", table.Columns()),
	)

	result, err := p.Run(table, logger)
	if err != nil {
		return err
	}
	return formatter.Format(result)
}
