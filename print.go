package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"dashtab/internal/tableview"
)

// printTable renders the dataset once to stdout with the same column
// resolution, sorting and formatting the interactive table uses.
func printTable(dataset *Dataset, config *tableview.Config) {
	rows := dataset.Rows
	tableview.SortRows(rows, config.Sort)

	keys := config.Columns
	if len(keys) == 0 {
		keys = dataset.Columns
	}

	headers := make([]string, len(keys))
	numeric := make([]bool, len(keys))
	for i, key := range keys {
		if name, ok := config.ColumnNames[key]; ok {
			headers[i] = name
		} else {
			headers[i] = tableview.FormatColumnName(key)
		}
		if len(rows) > 0 {
			numeric[i] = tableview.IsNumericString(config.FormatValue(key, rows[0]))
		}
	}

	limit := len(rows)
	page := config.PageSize
	if page <= 0 {
		page = tableview.DefaultPageSize
	}
	if limit > page {
		limit = page
	}

	body := make([][]string, 0, limit)
	for _, row := range rows[:limit] {
		cells := make([]string, len(keys))
		for i, key := range keys {
			cells[i] = config.FormatValue(key, row)
		}
		body = append(body, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col < len(numeric) && numeric[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	fmt.Println(t)
}
