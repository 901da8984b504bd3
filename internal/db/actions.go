package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/book-fingerprint/pkg/db"
	"github.com/dtnitsch/book-fingerprint/pkg/mapreduce"
	"github.com/urfave/cli/v2"
)

// DatabaseFlag selects the history database for the runs and show commands.
var DatabaseFlag = &cli.StringFlag{
	Name:  "database",
	Usage: "SQLite file holding recorded runs (default: next to the binary)",
}

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("database"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-10s %-10s %-6s %-30s\n",
		"ID", "Created", "Distinct", "Total", "Dim", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-10d %-10d %-6d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DistinctTokens,
			r.TotalTokens,
			r.Dimension,
			r.InputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	return nil
}

func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("database"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	counts, err := database.GetRunCounts(runID)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run #%d: %s -> %s\n", run.RunID, run.InputPath, run.OutputPath)
	fmt.Fprintf(w, "Tokenizer: %s, lines: %d, distinct: %d, total: %d\n",
		run.Tokenizer, run.LineCount, run.DistinctTokens, run.TotalTokens)
	fmt.Fprintf(w, "Canvas: %dx%d, step %.4f\n\n", run.Dimension, run.Dimension, run.Step)
	mapreduce.PrintTopKeywords(w, counts, c.Int("top"))
	return nil
}
