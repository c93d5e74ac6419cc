package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

type numbersRow struct {
	Numbers         int64 `parquet:"numbers"`
	ModifiedNumbers int64 `parquet:"modified_numbers"`
}

// numbersParquet writes numbers=[1,2,3], modified_numbers=[10,20,30]
func numbersParquet(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "numbers.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w := parquet.NewGenericWriter[numbersRow](f)
	_, err = w.Write([]numbersRow{{1, 10}, {2, 20}, {3, 30}})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
