package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/addrdict/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `EZI_ADD,x,y
CAT,1.123456,2
CAR,3,4
COT ST,5,6
`

func newRunner(t *testing.T, opts Options) (*QueryRunner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	d, err := dictionary.LoadReader(strings.NewReader(dataset), dictionary.FormatCSV, dictionary.DefaultOptions())
	require.NoError(t, err)
	var out, stdout bytes.Buffer
	return NewQueryRunner(d, &out, &stdout, opts), &out, &stdout
}

func TestRunWritesRecordsAndSummary(t *testing.T) {
	q, out, stdout := newRunner(t, Options{ShowCounters: true})

	require.NoError(t, q.Run(strings.NewReader("CAT\r\n\nCAR\n")))

	assert.Equal(t,
		"CAT\n--> EZI_ADD: CAT || x: 1.12346 || y: 2.00000 || \n"+
			"CAR\n--> EZI_ADD: CAR || x: 3.00000 || y: 4.00000 || \n",
		out.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^CAT --> 1 records found - comparisons: b\d+ n\d+ s1$`, lines[0])
	assert.Regexp(t, `^CAR --> 1 records found - comparisons: b\d+ n\d+ s1$`, lines[1])
}

func TestRunNotFound(t *testing.T) {
	d, err := dictionary.LoadReader(strings.NewReader("EZI_ADD\n"), dictionary.FormatCSV, dictionary.DefaultOptions())
	require.NoError(t, err)
	var out, stdout bytes.Buffer
	q := NewQueryRunner(d, &out, &stdout, Options{ShowCounters: true})

	require.NoError(t, q.Run(strings.NewReader("NOPE\n")))
	assert.Equal(t, "NOPE\nNOTFOUND\n", out.String())
	assert.Equal(t, "NOPE --> 0 records found - comparisons: b0 n0 s0\n", stdout.String())
}

func TestRunClosestWithoutCounters(t *testing.T) {
	q, out, stdout := newRunner(t, Options{})

	require.NoError(t, q.Run(strings.NewReader("CAX\n")))
	assert.True(t, strings.HasPrefix(out.String(), "CAX\n--> EZI_ADD: CA"))
	assert.Equal(t, "CAX --> 1 records found\n", stdout.String())
}

func TestRunComplete(t *testing.T) {
	q, out, stdout := newRunner(t, Options{CompleteLimit: 1})

	require.NoError(t, q.Run(strings.NewReader(":complete CA\n:complete ZZ\n")))
	assert.Empty(t, out.String())
	assert.Equal(t, " 1. CAR (1)\n", stdout.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(strings.NewReader("")))
}
