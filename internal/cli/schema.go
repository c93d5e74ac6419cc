package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/datadrill/output"
	"github.com/vegasq/datadrill/query"
	"github.com/vegasq/datadrill/reader"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	Table string
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema <source>",
		Short: "Show the columns of a source",
		Long: `Show the columns of a source and their types.

Parquet files report their declared schema, with nested fields in dot
notation. For a glob the first matching file is described. Other sources
are loaded and described from their values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table to describe in a SQLite source")

	return cmd
}

func runSchema(rootOpts *RootOptions, opts *SchemaOptions, source string, cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)
	defer func() { _ = logger.Sync() }()

	infos, err := describe(source, opts, cmd, logger)
	if err != nil {
		return err
	}

	formatter, err := output.New(rootOpts.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	table, err := schemaTable(infos)
	if err != nil {
		return err
	}
	return formatter.Format(table)
}

func describe(source string, opts *SchemaOptions, cmd *cobra.Command, logger *zap.Logger) ([]reader.SchemaInfo, error) {
	path := source
	if reader.IsGlob(source) {
		matches, err := filepath.Glob(source)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", source)
		}
		path = matches[0]
		if len(matches) > 1 {
			logger.Info("showing schema of first match",
				zap.String("file", path),
				zap.Int("matched", len(matches)),
			)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return reader.ExtractSchemaInfo(path)
	}

	table, err := reader.Open(cmd.Context(), path, reader.Options{Table: opts.Table})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return reader.SchemaFromTable(table), nil
}

// schemaTable lays out schema entries as a table, one row per column
func schemaTable(infos []reader.SchemaInfo) (*query.Table, error) {
	n := len(infos)
	var (
		names    = make([]interface{}, n)
		types    = make([]interface{}, n)
		physical = make([]interface{}, n)
		logical  = make([]interface{}, n)
		required = make([]interface{}, n)
		optional = make([]interface{}, n)
		repeated = make([]interface{}, n)
	)
	for i, info := range infos {
		names[i] = info.Name
		types[i] = info.Type
		physical[i] = info.PhysicalType
		logical[i] = info.LogicalType
		required[i] = info.Required
		optional[i] = info.Optional
		repeated[i] = info.Repeated
	}
	return query.NewTable(
		query.NewSeries("name", names),
		query.NewSeries("type", types),
		query.NewSeries("physical_type", physical),
		query.NewSeries("logical_type", logical),
		query.NewSeries("required", required),
		query.NewSeries("optional", optional),
		query.NewSeries("repeated", repeated),
	)
}
