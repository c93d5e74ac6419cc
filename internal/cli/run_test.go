package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRun_Golden(t *testing.T) {
	source := numbersParquet(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "run_filter_select",
			args: []string{"run", source, "--where", "numbers > 1", "--select", "numbers", "--format", "csv"},
		},
		{
			name: "run_prefix",
			args: []string{"run", source,
				"--prefix", "modified_",
				"--select", "numbers",
				"--select", "noprefix(numbers) as original",
				"--select", "numbers - noprefix(numbers) as delta",
			},
		},
		{
			name: "run_functions",
			args: []string{"run", source,
				"--select", "numbers",
				"--select", "prefix('modified_', numbers) // 3 as third",
				"--select", "sqrt(numbers * numbers) as root",
				"--limit", "2",
				"--format", "json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	source := numbersParquet(t, dir)
	pipeline := filepath.Join(dir, "pipeline.yaml")
	doc := fmt.Sprintf("source: %s\nfilter:\n  - numbers >= 2\nselect:\n  - numbers\nformat: csv\n", source)
	require.NoError(t, os.WriteFile(pipeline, []byte(doc), 0o644))

	t.Run("config alone", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "--config", pipeline)
		require.NoError(t, err)
		assert.Equal(t, "numbers\n2\n3\n", stdout)
	})

	t.Run("flags override config", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "--config", pipeline, "--limit", "1", "--format", "jsonl")
		require.NoError(t, err)
		assert.Equal(t, "{\"numbers\":2}\n", stdout)
	})

	t.Run("where replaces config filters", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "--config", pipeline, "--where", "numbers == 1")
		require.NoError(t, err)
		assert.Equal(t, "numbers\n1\n", stdout)
	})
}

func TestRun_CSVSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(source, []byte("name,age\nalice,30\nbob,25\n"), 0o644))

	stdout, _, err := execute(t, "run", source, "--where", "age < 30", "--select", "upper(name) as name")
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"BOB\"}\n", stdout)
}

func TestRun_Verbose(t *testing.T) {
	source := numbersParquet(t, t.TempDir())

	_, stderr, err := execute(t, "run", source, "--select", "numbers")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "applied operation")

	_, stderr, err = execute(t, "run", source, "--select", "numbers", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded source")
	assert.Contains(t, stderr, "applied operation")
	assert.Regexp(t, `"run": "[0-9a-f-]{36}"`, stderr)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	source := numbersParquet(t, dir)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no source", []string{"run"}, "no source"},
		{"missing file", []string{"run", filepath.Join(dir, "missing.parquet")}, "failed to load"},
		{"syntax error", []string{"run", source, "--where", "numbers >"}, "syntax error"},
		{"unknown field", []string{"run", source, "--select", "nmubers"}, "numbers"},
		{"unknown function", []string{"run", source, "--select", "frobnicate(numbers)"}, "unknown function"},
		{"negative limit", []string{"run", source, "--limit", "-1"}, "limit must be non-negative"},
		{"too many args", []string{"run", source, source}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
