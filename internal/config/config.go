// Package config loads pipeline definitions from YAML.
//
// A pipeline names a source, an optional column prefix and the filter,
// select and limit steps to run against it:
//
//	source: data/numbers.parquet
//	prefix: modified_
//	filter:
//	  - numbers > 10
//	select:
//	  - numbers
//	  - noprefix(numbers) as original
//	limit: 100
//	format: table
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/vegasq/datadrill/drill"
	"github.com/vegasq/datadrill/frame"
	"github.com/vegasq/datadrill/output"
	"github.com/vegasq/datadrill/parser"
	"github.com/vegasq/datadrill/query"
)

// Pipeline describes one run over a source.
type Pipeline struct {
	// Source is a file path or parquet glob understood by reader.Open.
	Source string `yaml:"source"`

	// Table names the table to read when Source is a SQLite database.
	Table string `yaml:"table,omitempty"`

	// Prefix is the active prefix field names resolve under.
	Prefix string `yaml:"prefix,omitempty"`

	// Filter expressions are applied in order; each keeps the rows where it
	// is true.
	Filter []string `yaml:"filter,omitempty"`

	// Select expressions form the output columns. Empty keeps every column.
	Select []string `yaml:"select,omitempty"`

	// Limit caps the number of output rows. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`

	// Format is an output format name; empty leaves the choice to the caller.
	Format string `yaml:"format,omitempty"`
}

// Load reads and validates a pipeline file. Unknown keys are rejected.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a pipeline document
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline: %w", err)
	}
	return &p, nil
}

// Validate checks the fields that can be checked without a source. Source
// itself may be empty here; callers that need one check it when running.
func (p *Pipeline) Validate() error {
	var errs error
	if p.Limit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("limit must be non-negative, got %d", p.Limit))
	}
	if p.Format != "" && !slices.Contains(output.Formats, strings.ToLower(p.Format)) {
		errs = multierr.Append(errs, fmt.Errorf("%w %q", output.ErrUnknownFormat, p.Format))
	}
	for i, e := range p.Filter {
		if e == "" {
			errs = multierr.Append(errs, fmt.Errorf("filter[%d]: empty expression", i))
		}
	}
	for i, e := range p.Select {
		if e == "" {
			errs = multierr.Append(errs, fmt.Errorf("select[%d]: empty expression", i))
		}
	}
	return errs
}

// Environment returns the environment the pipeline's expressions run under
// for table: the table's columns as schema, with the pipeline prefix active.
func (p *Pipeline) Environment(table *query.Table) *drill.Environment {
	return drill.NewEnvironment(drill.NewFieldResolver(table.Columns())).WithPrefix(p.Prefix)
}

// Frame compiles the pipeline's expressions and queues them on table. All
// parse errors are reported together.
func (p *Pipeline) Frame(table *query.Table, logger *zap.Logger) (frame.DataFrame, error) {
	filters, filterErr := parser.ParseList(p.Filter)
	selects, selectErr := parser.ParseList(p.Select)
	if err := multierr.Combine(filterErr, selectErr); err != nil {
		return frame.DataFrame{}, err
	}

	df := frame.New(table, frame.WithLogger(logger))
	for _, f := range filters {
		df = df.Filter(f)
	}
	if len(selects) > 0 {
		args := make([]any, len(selects))
		for i, s := range selects {
			args[i] = s
		}
		df = df.Select(args...)
	}
	if p.Limit > 0 {
		df = df.Limit(p.Limit)
	}
	return df, nil
}

// Run compiles the pipeline and executes it over table
func (p *Pipeline) Run(table *query.Table, logger *zap.Logger) (*query.Table, error) {
	df, err := p.Frame(table, logger)
	if err != nil {
		return nil, err
	}
	return df.Run(p.Environment(table))
}
