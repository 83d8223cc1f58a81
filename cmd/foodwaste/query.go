package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"foodwaste/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Run an ad-hoc SQL statement against the store",
	ArgsUsage: "<statement>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "unrestricted",
			Usage: "Allow statements that modify the store and commit them",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Print rows as colored records instead of a table",
		},
	},
	Action: func(c *cli.Context) error {
		statement := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if statement == "" {
			return fmt.Errorf("a statement is required")
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		handle, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer handle.Close()

		mode := store.QueryReadOnly
		if c.Bool("unrestricted") || cfg.AllowUnrestrictedQueries {
			mode = store.QueryUnrestricted
		}

		result, err := store.NewDataRepository(handle).RunQuery(ctx, statement, mode)
		if err != nil {
			return err
		}

		if c.Bool("pretty") {
			_, err = pp.Println(records(result))
			return err
		}

		return writeTable(os.Stdout, result)
	},
}

func records(result *store.ResultSet) []map[string]any {
	out := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		record := make(map[string]any, len(result.Columns))
		for i, column := range result.Columns {
			record[column] = row[i]
		}
		out = append(out, record)
	}
	return out
}

func writeTable(w io.Writer, result *store.ResultSet) error {
	if len(result.Columns) == 0 {
		_, err := fmt.Fprintln(w, "statement executed, no columns returned")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
	for i := range result.Rows {
		fmt.Fprintln(tw, strings.Join(result.Cells(i), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
	return err
}
