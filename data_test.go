package main

import (
	"testing"

	"dashtab/internal/tableview"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"empty becomes nil", "", nil},
		{"number parses", "12.5", 12.5},
		{"negative number parses", "-3", -3.0},
		{"text stays text", "Acme Corp", "Acme Corp"},
		{"mixed stays text", "12 users", "12 users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCell(tt.input); got != tt.expected {
				t.Errorf("parseCell(%q) = %v (%T), want %v", tt.input, got, got, tt.expected)
			}
		})
	}
}

func TestDefaultFormatters(t *testing.T) {
	formatters := defaultFormatters([]string{
		"campaign", "spend", "cpm", "pct-qps", "impressions", "calibration",
	})

	row := tableview.Row{
		"spend":       1234.5,
		"cpm":         24880.0,
		"pct-qps":     0.1834,
		"impressions": 612400.0,
		"calibration": 1.034,
	}
	tests := []struct {
		column   string
		expected string
	}{
		{"spend", "$1,234.50"},
		{"cpm", "$24.88"},
		{"pct-qps", "18.34%"},
		{"impressions", "612.4K"},
		{"calibration", "1.03x"},
	}
	for _, tt := range tests {
		fn, ok := formatters[tt.column]
		if !ok {
			t.Fatalf("no formatter assigned for %s", tt.column)
		}
		if got := fn(row[tt.column], row); got != tt.expected {
			t.Errorf("%s formatted as %q, want %q", tt.column, got, tt.expected)
		}
	}

	if _, ok := formatters["campaign"]; ok {
		t.Error("campaign should fall back to string coercion")
	}
}

func TestDemoDataset(t *testing.T) {
	dataset := demoDataset()

	if len(dataset.Rows) == 0 {
		t.Fatal("demo dataset is empty")
	}
	for i, row := range dataset.Rows {
		if _, ok := row["clicks"]; ok {
			t.Errorf("rows[%d] still carries the clicks column", i)
		}
		if _, ok := row["ctr"]; !ok {
			t.Errorf("rows[%d] is missing the computed ctr metric", i)
		}
	}

	// Every configured column except computed edge cases must resolve on
	// the first row so headers and alignment derive cleanly.
	first := dataset.Rows[0]
	for _, key := range dataset.Columns {
		if _, ok := first[key]; !ok {
			t.Errorf("first row is missing configured column %q", key)
		}
	}
}
