package main

import (
	"fmt"
	"os"

	dbcmd "github.com/dtnitsch/book-fingerprint/internal/db"
	"github.com/dtnitsch/book-fingerprint/internal/histogram"
	"github.com/dtnitsch/book-fingerprint/pkg/help"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:        "book-fingerprint",
		Usage:       "turn a book into a token-frequency image",
		ArgsUsage:   "<input-file>",
		Description: help.Quickstart,
		Flags:       histogram.Flags,
		Action:      histogram.HistogramAction,
		Commands: []*cli.Command{
			{
				Name:   "runs",
				Usage:  "list recorded runs",
				Flags:  []cli.Flag{dbcmd.DatabaseFlag, &cli.IntFlag{Name: "limit", Value: 20}},
				Action: dbcmd.RunsAction,
			},
			{
				Name:      "show",
				Usage:     "show the top tokens of a recorded run (latest by default)",
				ArgsUsage: "[run-id]",
				Flags:     []cli.Flag{dbcmd.DatabaseFlag, &cli.IntFlag{Name: "top", Value: 25}},
				Action:    dbcmd.ShowAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
