package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/sampletab/sampletab/internal/resolve"
	"github.com/sampletab/sampletab/internal/store"
	"github.com/sampletab/sampletab/internal/table"
)

func runResolve(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)

	var (
		idColumn   string
		columns    string
		suffixes   string
		passes     int
		noWarn     bool
		outputFile string
		storePath  string
		storeTable string
	)

	fs.StringVar(&idColumn, "id-column", "", "Sample identity column (default: config resolve.id_column, else Sample)")
	fs.StringVar(&columns, "columns", "", "Comma-separated reconciliation columns (required unless set in config)")
	fs.StringVar(&suffixes, "suffixes", "", "Comma-separated duplicate-name suffixes (default: _2,_3,_pool7A,_pool10A)")
	fs.IntVar(&passes, "passes", resolve.DefaultPasses, "Number of alternating-order reconciliation passes")
	fs.BoolVar(&noWarn, "no-warn", false, "Suppress the dropped-row warning")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&storePath, "store", "", "Also save the resolved table to this DuckDB file")
	fs.StringVar(&storeTable, "store-table", "resolved_samples", "Table name used with --store")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Reconcile duplicate sample rows in a table.

Rows whose identity differs only by a duplicate suffix (e.g. GH and GH_2)
are grouped, missing values in the reconciliation columns are filled in
between them, and rows left without data in every reconciliation column
are removed.

Usage:
  sampletab resolve [options] <input-file>

Arguments:
  <input-file>  Input TSV or CSV table (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab resolve --columns Symbol,Exon,AB samples.tsv
  sampletab resolve --columns Symbol,Exon,AB --passes 3 -o resolved.tsv samples.tsv
  sampletab resolve --columns Symbol,Exon,AB --store report.duckdb samples.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	if idColumn == "" {
		idColumn = viper.GetString("resolve.id_column")
	}
	if idColumn == "" {
		idColumn = "Sample"
	}
	if columns == "" {
		columns = strings.Join(viper.GetStringSlice("resolve.columns"), ",")
	}
	if columns == "" {
		fmt.Fprintf(os.Stderr, "Error: --columns is required\n")
		fmt.Fprintf(os.Stderr, "Hint: Set a default with: sampletab config set resolve.columns Symbol,Exon,AB\n")
		return ExitUsage
	}

	tbl, err := table.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	r := resolve.NewResolver()
	r.SetPasses(passes)
	r.SetWarnOnDrop(!noWarn)
	if suffixes == "" {
		suffixes = strings.Join(viper.GetStringSlice("resolve.suffixes"), ",")
	}
	if suffixes != "" {
		r.SetSuffixes(splitList(suffixes))
	}

	logger := newLogger()
	defer logger.Sync()
	r.SetLogger(logger)

	resolved, err := r.Resolve(tbl, idColumn, splitList(columns))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if err := table.WriteFile(resolved, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}

	if storePath != "" {
		st, err := store.Open(storePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			return ExitError
		}
		defer st.Close()
		if err := st.Save(storeTable, resolved); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving to store: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Saved %d rows to %s table %q\n", resolved.NumRows(), storePath, storeTable)
	}

	return ExitSuccess
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
