package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dashtab [source]",
	Short: "dashtab renders tabular metrics as an interactive, sortable table",
	Long: `dashtab is a terminal dashboard for small tabular datasets. It renders
rows as a sortable table with per-column formatting: click a header to sort,
click a cell to select matching rows, Ctrl+click to toggle.

The source is a CSV file, a database name (query with -c), or empty for the
built-in demo dataset.

Examples:
  dashtab
  dashtab campaigns.csv --sort spend
  dashtab adstats -c "select campaign, spend, cpm from delivery" --clickable campaign`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDashtab,
}

var (
	command    string
	host       string
	port       string
	username   string
	password   string
	sortColumn string
	sortAsc    bool
	pageSize   int
	columns    []string
	clickable  []string
	printOnly  bool
)

func init() {
	rootCmd.Flags().BoolP("help", "", false, "help for dashtab")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "SQL query supplying the rows")
	rootCmd.Flags().StringVarP(&host, "host", "H", "", "Database host")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Database port")
	rootCmd.Flags().StringVarP(&username, "username", "U", "", "Database username")
	rootCmd.Flags().StringVarP(&password, "password", "W", "", "Database password")
	rootCmd.Flags().StringVarP(&sortColumn, "sort", "s", "", "Initial sort column")
	rootCmd.Flags().BoolVar(&sortAsc, "asc", false, "Sort ascending instead of descending")
	rootCmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Maximum number of rendered rows")
	rootCmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to render, in order")
	rootCmd.Flags().StringSliceVar(&clickable, "clickable", nil, "Columns styled as clickable")
	rootCmd.Flags().BoolVar(&printOnly, "print", false, "Print the table to stdout and exit")
}

func runDashtab(cmd *cobra.Command, args []string) {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	if settings.TelemetryEnabled {
		if dsn := os.Getenv("DASHTAB_SENTRY_DSN"); dsn != "" {
			if err := InitSentry(dsn); err != nil {
				debugLog("sentry init failed: %v\n", err)
			} else {
				defer FlushSentry()
			}
		}
	}

	var dataset *Dataset
	switch {
	case len(args) == 0:
		dataset = demoDataset()
	case strings.HasSuffix(args[0], ".csv"):
		dataset, err = loadCSV(args[0])
	default:
		if command == "" {
			fmt.Fprintf(os.Stderr, "Error: database sources need a query, use -c\n")
			os.Exit(1)
		}
		dbConfig := DBConfig{
			Database: args[0],
			Host:     host,
			Port:     port,
			Username: username,
			Password: password,
		}
		dataset, err = loadQuery(dbConfig, command)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rows: %v\n", err)
		os.Exit(1)
	}
	debugLog("loaded %d rows from %s\n", len(dataset.Rows), dataset.Title)

	config := buildTableConfig(dataset, settings)

	if printOnly {
		printTable(dataset, &config)
		return
	}

	if err := newApp(dataset, config).run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
