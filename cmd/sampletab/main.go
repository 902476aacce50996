// Package main provides the sampletab command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("sampletab version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "resolve":
		return runResolve(args[1:])
	case "rerank":
		return runRerank(args[1:])
	case "piechart":
		return runPiechart(args[1:])
	case "countplot":
		return runCountplot(args[1:])
	case "montage":
		return runMontage(args[1:])
	case "caption":
		return runCaption(args[1:])
	case "grayscale":
		return runGrayscale(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sampletab - sample table resolution and report figures

Usage:
  sampletab [options] <command> [arguments]

Commands:
  resolve     Reconcile duplicate sample rows in a table
  rerank      Replace failing most-damaging variants with alternatives
  piechart    Render a grouped pie chart with a p-value annotation
  countplot   Render a bar chart of categorical value counts
  montage     Merge rendered figures into one panel image
  caption     Add a caption box below a figure
  grayscale   Convert figures to grayscale in place
  config      Manage sampletab configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Resolve duplicate samples in a phenotype table
  sampletab resolve --columns Symbol,Exon,AB samples.tsv

  # Replace most-damaging variants failing the allele-balance check
  sampletab rerank most_damaging.tsv all_variants.tsv

  # Render a grouped pie chart
  sampletab piechart --group Cohort --qual Outcome -o outcome.png samples.tsv

For more information on a command, use:
  sampletab <command> --help
`)
}

// initConfig loads ~/.sampletab.yaml if present.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigName(".sampletab")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// newLogger builds the stderr logger handed to library components.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
