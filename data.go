package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dashtab/internal/tableview"
)

// Dataset is a loaded row collection plus the column order its source
// defines (CSV header, SQL select list, or the demo's layout).
type Dataset struct {
	Title   string
	Columns []string
	Rows    []tableview.Row
}

// loadCSV reads a CSV file into rows. The header row fixes the column order;
// numeric-looking cells are parsed to float64 so sorting compares numbers,
// and empty cells become nil.
func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	header := records[0]
	rows := make([]tableview.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(tableview.Row, len(header))
		for i, key := range header {
			if i >= len(record) {
				break
			}
			row[key] = parseCell(record[i])
		}
		rows = append(rows, row)
	}

	return &Dataset{
		Title:   filepath.Base(path),
		Columns: header,
		Rows:    rows,
	}, nil
}

func parseCell(cell string) any {
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// loadQuery runs a SQL query and converts the result set into rows. The
// select list fixes the column order.
func loadQuery(config DBConfig, query string) (*Dataset, error) {
	db, dbType, err := config.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer result.Close()

	columns, err := result.Columns()
	if err != nil {
		return nil, err
	}

	var rows []tableview.Row
	for result.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := result.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		row := make(tableview.Row, len(columns))
		for i, key := range columns {
			// Drivers hand back []byte for text and numeric columns alike;
			// normalize so formatting and sorting see strings and floats.
			if b, ok := values[i].([]byte); ok {
				row[key] = parseCell(string(b))
			} else {
				row[key] = values[i]
			}
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	return &Dataset{
		Title:   fmt.Sprintf("%s %s", databaseIcons[dbType], config.Database),
		Columns: columns,
		Rows:    rows,
	}, nil
}

// demoDataset is a synthetic ad-delivery report exercising the built-in
// formatters and the preprocessing helpers.
func demoDataset() *Dataset {
	rows := []tableview.Row{
		{"campaign": "spring-launch", "advertiser-id": "acme-412", "spend": 15234.87, "clicks": 1840.0, "impressions": 612400.0, "pct-qps": 0.1834, "calibration": 1.034, "spend-delta": 1204.6},
		{"campaign": "brand-awareness-q3", "advertiser-id": "initech-77", "spend": 98410.02, "clicks": 9310.0, "impressions": 2250800.0, "pct-qps": 0.4421, "calibration": 0.968, "spend-delta": -310.25},
		{"campaign": "holiday-retarget", "advertiser-id": "acme-412", "spend": 4821.5, "clicks": 420.0, "impressions": 98100.0, "pct-qps": 0.0712, "calibration": 1.118, "spend-delta": 88.4},
		{"campaign": "video-preroll", "advertiser-id": "globex-9", "spend": 27310.4, "clicks": 2104.0, "impressions": 804300.0, "pct-qps": 0.2103, "calibration": 0.991, "spend-delta": 540.0},
		{"campaign": "app-install-push", "advertiser-id": "initech-77", "spend": 6642.13, "clicks": 1507.0, "impressions": 150300.0, "pct-qps": 0.0930, "calibration": 1.201, "spend-delta": nil},
	}

	tableview.AddMetrics(rows, map[string]tableview.MetricFunc{
		"ctr": func(row tableview.Row) any {
			clicks, _ := row["clicks"].(float64)
			impressions, _ := row["impressions"].(float64)
			if impressions == 0 {
				return nil
			}
			return clicks / impressions
		},
		"cpm": func(row tableview.Row) any {
			spend, _ := row["spend"].(float64)
			impressions, _ := row["impressions"].(float64)
			if impressions == 0 {
				return nil
			}
			return spend / impressions * 1000 * 1000
		},
	})
	tableview.RemoveColumns(rows, []string{"clicks"})

	return &Dataset{
		Title: "demo · ad delivery",
		Columns: []string{
			"campaign", "advertiser-id", "spend", "spend-delta",
			"cpm", "impressions", "ctr", "pct-qps", "calibration",
		},
		Rows: rows,
	}
}

// defaultFormatters picks a built-in formatter per column by key convention:
// spend-like keys render as currency, pct/percent/rate keys as percentages,
// counts as thousands. Explicit user formatters are not configurable from
// the CLI; this keeps raw CSV and SQL sources readable.
func defaultFormatters(columns []string) map[string]tableview.Formatter {
	formatters := make(map[string]tableview.Formatter)
	for _, key := range columns {
		switch {
		case key == "cpm" || strings.HasSuffix(key, "-cpm"):
			formatters[key] = tableview.CPM
		case strings.Contains(key, "spend") || strings.Contains(key, "cost") || strings.Contains(key, "budget"):
			formatters[key] = tableview.Currency
		case strings.Contains(key, "pct") || strings.Contains(key, "percent") || key == "ctr" || strings.HasSuffix(key, "-rate"):
			formatters[key] = tableview.Percent
		case strings.Contains(key, "calibration"):
			formatters[key] = tableview.Calibration
		case strings.Contains(key, "impressions") || strings.Contains(key, "requests"):
			formatters[key] = tableview.Thousands
		}
	}
	return formatters
}

// buildTableConfig assembles the table configuration from the dataset, CLI
// flags and stored settings.
func buildTableConfig(dataset *Dataset, settings *Settings) tableview.Config {
	config := tableview.Config{
		Columns:          dataset.Columns,
		Formatters:       defaultFormatters(dataset.Columns),
		ClickableColumns: clickable,
		PageSize:         settings.PageSize,
	}
	if len(columns) > 0 {
		config.Columns = columns
	}
	if pageSize > 0 {
		config.PageSize = pageSize
	}
	if sortColumn != "" {
		order := tableview.SortDesc
		if sortAsc {
			order = tableview.SortAsc
		}
		config.Sort = &tableview.SortState{Column: sortColumn, Order: order}
	}
	return config
}
