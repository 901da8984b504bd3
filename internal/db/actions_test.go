package db

import (
	"bytes"
	"path/filepath"
	"testing"

	dbpkg "github.com/dtnitsch/book-fingerprint/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:   "book-fingerprint",
		Writer: out,
		Commands: []*cli.Command{
			{Name: "runs", Flags: []cli.Flag{DatabaseFlag, &cli.IntFlag{Name: "limit", Value: 20}}, Action: RunsAction},
			{Name: "show", Flags: []cli.Flag{DatabaseFlag, &cli.IntFlag{Name: "top", Value: 25}}, Action: ShowAction},
		},
	}
}

func seed(t *testing.T, path string) int64 {
	t.Helper()
	database, err := dbpkg.Open(path)
	require.NoError(t, err)
	defer database.Close()

	runID, err := database.InsertRun(dbpkg.Run{
		InputPath:      "moby.txt",
		OutputPath:     "output.png",
		Tokenizer:      "simple",
		LineCount:      1,
		DistinctTokens: 3,
		TotalTokens:    6,
		Dimension:      2,
		Step:           255.0 / 4,
	}, map[string]int{"whale": 3, "sea": 2, "ship": 1})
	require.NoError(t, err)
	return runID
}

func TestRunsAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"bf", "runs", "--database", path}))
	assert.Contains(t, out.String(), "No runs found")

	seed(t, path)
	out.Reset()
	require.NoError(t, testApp(&out).Run([]string{"bf", "runs", "--database", path}))
	assert.Contains(t, out.String(), "moby.txt")
	assert.Contains(t, out.String(), "Total: 1 runs")
}

func TestShowAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	runID := seed(t, path)

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"bf", "show", "--database", path, "--top", "2"}))
	assert.Contains(t, out.String(), "Run #1: moby.txt -> output.png")
	assert.Contains(t, out.String(), "1. whale: 3")
	assert.Contains(t, out.String(), "2. sea: 2")
	assert.NotContains(t, out.String(), "ship")
	assert.Equal(t, int64(1), runID)

	err := testApp(&out).Run([]string{"bf", "show", "--database", path, "abc"})
	assert.ErrorContains(t, err, "invalid run ID")

	err = testApp(&out).Run([]string{"bf", "show", "--database", path, "99"})
	assert.ErrorIs(t, err, dbpkg.ErrRunNotFound)
}

func TestShowActionNoRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	err := testApp(&out).Run([]string{"bf", "show", "--database", path})
	assert.ErrorContains(t, err, "no runs found")
}
