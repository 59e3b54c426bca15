package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/addrdict/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `EZI_ADD,suburb,x,y
"12 MAIN ST, CARLTON",CARLTON,144.9671234567,-37.8001
14 MAIN ST,CARLTON,144.96,-37.80
"12 MAIN ST, CARLTON",CARLTON,144.9672,-37.8002

,NOWHERE,0,0
"3 ""THE"" LANE",FITZROY,144.98,-37.79
`

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDataset(t, "data.csv", sampleCSV)

	d, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	defer d.Close()

	stats := d.Stats()
	assert.Equal(t, 4, stats.Records)
	assert.Equal(t, 3, stats.Keys)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.MaxCount)
	assert.Equal(t, int64(len(sampleCSV)), stats.Bytes)

	res := d.Lookup("12 MAIN ST, CARLTON")
	assert.Equal(t, trie.Found, res.Outcome)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "144.9671234567", res.Matches[0].Fields[2])
	assert.Equal(t, "144.9672", res.Matches[1].Fields[2])

	res = d.Lookup(`3 "THE" LANE`)
	assert.Equal(t, trie.Found, res.Outcome)
	assert.Equal(t, "FITZROY", res.Matches[0].Fields[1])
}

func TestLookupClosestAndFormat(t *testing.T) {
	d, err := LoadReader(strings.NewReader(sampleCSV), FormatCSV, DefaultOptions())
	require.NoError(t, err)

	res := d.Lookup("14 MAIN SX")
	require.Equal(t, trie.Closest, res.Outcome)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, []string{"14 MAIN ST"}, res.Keys())

	var buf bytes.Buffer
	require.NoError(t, d.Header().Format(&buf, res.Matches[0]))
	assert.Equal(t, "--> EZI_ADD: 14 MAIN ST || suburb: CARLTON || x: 144.96000 || y: -37.80000 || \n", buf.String())
}

func TestComplete(t *testing.T) {
	d, err := LoadReader(strings.NewReader(sampleCSV), FormatCSV, DefaultOptions())
	require.NoError(t, err)

	got := d.Complete("1", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "12 MAIN ST, CARLTON", got[0].Key)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "14 MAIN ST", got[1].Key)

	d.Close()
	assert.Empty(t, d.Complete("1", 0))
	assert.Equal(t, trie.NotFound, d.Lookup("14 MAIN ST").Outcome)
}

func TestLoadReaderErrors(t *testing.T) {
	_, err := LoadReader(strings.NewReader(""), FormatCSV, DefaultOptions())
	assert.Error(t, err)

	_, err = LoadReader(strings.NewReader("a,b\n1,2\n"), FormatCSV, DefaultOptions())
	assert.ErrorContains(t, err, "EZI_ADD")

	_, err = LoadReader(strings.NewReader("EZI_ADD\nx\n"), FormatUnknown, DefaultOptions())
	assert.Error(t, err)
}

func TestLoadReaderKeyLimitAndBOM(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxKeyLength = 4
	data := "\ufeffEZI_ADD,v\nABCD,1\nABCDE,2\n"

	d, err := LoadReader(strings.NewReader(data), FormatCSV, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Stats().Records)
	assert.Equal(t, 1, d.Stats().Skipped)
	assert.Equal(t, "EZI_ADD", d.Header().Names[0])
}

func TestLoadTSV(t *testing.T) {
	path := writeDataset(t, "data.tsv", "EZI_ADD\tx\nA ST\t1.5\n")
	d, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, trie.Found, d.Lookup("A ST").Outcome)
}

func TestDetectFileFormat(t *testing.T) {
	csvPath := writeDataset(t, "a.csv", "EZI_ADD\n")
	format, err := DetectFileFormat(csvPath)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	txt := writeDataset(t, "a.txt", "EZI_ADD\n")
	_, err = DetectFileFormat(txt)
	assert.Error(t, err)

	empty := writeDataset(t, "empty.csv", "")
	_, err = DetectFileFormat(empty)
	assert.Error(t, err)

	assert.Error(t, ValidateFileFormat(csvPath, FormatTSV))
	assert.Error(t, ValidateFileFormat(t.TempDir(), FormatCSV))
}
