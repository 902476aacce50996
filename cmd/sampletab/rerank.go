package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sampletab/sampletab/internal/rerank"
	"github.com/sampletab/sampletab/internal/table"
)

func runRerank(args []string) int {
	fs := flag.NewFlagSet("rerank", flag.ExitOnError)

	var (
		abThreshold float64
		gene        string
		exon        string
		outputFile  string
	)

	defaults := rerank.NewReranker()
	fs.Float64Var(&abThreshold, "ab", defaults.ABThreshold, "Minimum acceptable allele balance")
	fs.StringVar(&gene, "gene", defaults.Gene, "Gene symbol with a known false-positive call ('' to disable)")
	fs.StringVar(&exon, "exon", defaults.Exon, "Exon of the false-positive gene ('' to disable)")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Replace most-damaging variants that fail quality criteria.

Samples whose most-damaging variant fails the allele-balance threshold, or
lies in the known false-positive gene/exon, have it replaced by their next
most damaging acceptable variant. The all-variants table must be sorted by
damage score, most damaging first.

Usage:
  sampletab rerank [options] <most-damaging-file> <all-variants-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab rerank most_damaging.tsv all_variants.tsv
  sampletab rerank --ab 0.25 --gene SKI --exon 1/7 -o reranked.tsv most_damaging.tsv all_variants.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: most-damaging and all-variants file arguments required\n\n")
		fs.Usage()
		return ExitUsage
	}

	mostDamaging, err := table.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading most-damaging table: %v\n", err)
		return ExitError
	}
	allVariants, err := table.ReadFile(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading all-variants table: %v\n", err)
		return ExitError
	}

	r := rerank.NewReranker()
	r.ABThreshold = abThreshold
	r.Gene = gene
	r.Exon = exon

	reranked, err := r.Rerank(mostDamaging, allVariants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if err := table.WriteFile(reranked, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
