package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCommand(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	cfg := filepath.Join(dir, "config.toml")
	out := filepath.Join(dir, "out.txt")

	require.NoError(t, os.WriteFile(data, []byte("ADDR,x\nCAT,1\nCAR,2\n"), 0644))
	require.NoError(t, os.WriteFile(cfg, []byte("[dict]\nkey_column = \"ADDR\"\ncoord_precision = 1\n"), 0644))

	var stdout bytes.Buffer
	rootCmd.SetIn(strings.NewReader("CAT\nDOG\n"))
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"query", data, out, "--config", cfg})
	require.NoError(t, rootCmd.Execute())

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "CAT\n--> ADDR: CAT || x: 1.0 || \nDOG\n--> ADDR: CAR || x: 2.0 || \n", string(written))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "CAT --> 1 records found - comparisons: "))
	assert.Equal(t, "DOG --> 1 records found - comparisons: b6 n1 s1", lines[1])
}
