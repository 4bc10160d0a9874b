package tableview

import (
	"fmt"
	"testing"
)

func metricRows(n int) []Row {
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{
			"campaign": fmt.Sprintf("campaign-%02d", i),
			"spend":    float64(i * 10),
			"pct-qps":  float64(i) / float64(n),
		}
	}
	return rows
}

func (tv *TableView) columnIndex(key string) int {
	for i, col := range tv.columns {
		if col.Key == key {
			return i
		}
	}
	return -1
}

func TestRenderRowsPageSizeTruncation(t *testing.T) {
	tv := New(Config{
		Columns:  []string{"campaign", "spend"},
		Sort:     &SortState{Column: "spend", Order: SortAsc},
		PageSize: 30,
	})
	tv.RenderRows(metricRows(50), nil)

	if len(tv.body) != 30 {
		t.Fatalf("rendered %d body rows, want 30", len(tv.body))
	}
	// Body rows are the first 30 entries post-sort, tagged with their index.
	for i, rr := range tv.body {
		if rr.index != i {
			t.Errorf("body[%d].index = %d, want %d", i, rr.index, i)
		}
	}
	if tv.body[0].cells[1] != "0" {
		t.Errorf("first sorted spend cell = %q, want 0", tv.body[0].cells[1])
	}
}

func TestRenderRowsDefaultPageSize(t *testing.T) {
	tv := New(Config{Columns: []string{"campaign"}})
	tv.RenderRows(metricRows(50), nil)
	if len(tv.body) != DefaultPageSize {
		t.Errorf("rendered %d rows, want default %d", len(tv.body), DefaultPageSize)
	}
}

func TestRenderRowsEmptyClearsBodyKeepsHeaders(t *testing.T) {
	tv := New(Config{Columns: []string{"campaign", "spend"}})
	tv.RenderRows(metricRows(5), nil)
	if len(tv.columns) != 2 {
		t.Fatalf("resolved %d columns, want 2", len(tv.columns))
	}

	tv.RenderRows(nil, nil)
	if len(tv.body) != 0 {
		t.Errorf("body not cleared: %d rows", len(tv.body))
	}
	if len(tv.columns) != 2 {
		t.Errorf("headers altered by empty render: %d columns", len(tv.columns))
	}
}

func TestRenderRowsAlignmentFromFirstRow(t *testing.T) {
	tv := New(Config{
		Columns:    []string{"campaign", "spend"},
		Formatters: map[string]Formatter{"spend": Currency},
	})
	tv.RenderRows([]Row{
		{"campaign": "Acme Corp", "spend": 1234.5},
		{"campaign": "Initech", "spend": 99.0},
	}, nil)

	if got := tv.columns[tv.columnIndex("spend")].Align; got != AlignNumeric {
		t.Errorf("spend alignment = %v, want numeric", got)
	}
	if got := tv.columns[tv.columnIndex("campaign")].Align; got != AlignText {
		t.Errorf("campaign alignment = %v, want text", got)
	}
}

func TestRenderRowsSortIndicatorOnSingleColumn(t *testing.T) {
	tv := New(Config{
		Columns: []string{"campaign", "spend", "pct-qps"},
		Sort:    &SortState{Column: "spend", Order: SortDesc},
	})
	tv.RenderRows(metricRows(5), nil)

	marked := 0
	for _, col := range tv.columns {
		if col.SortOrder != "" {
			marked++
			if col.Key != "spend" {
				t.Errorf("indicator on %q, want spend", col.Key)
			}
			if col.SortOrder != SortDesc {
				t.Errorf("indicator order = %q, want desc", col.SortOrder)
			}
		}
	}
	if marked != 1 {
		t.Errorf("%d columns carry the indicator, want exactly 1", marked)
	}
}

func TestRenderRowsHiddenSortColumn(t *testing.T) {
	// Sorting may be driven by a field that is not rendered; no header gets
	// the indicator then.
	tv := New(Config{
		Columns: []string{"campaign"},
		Sort:    &SortState{Column: "spend", Order: SortAsc},
	})
	tv.RenderRows(metricRows(5), nil)

	for _, col := range tv.columns {
		if col.SortOrder != "" {
			t.Errorf("unexpected indicator on %q", col.Key)
		}
	}
	if tv.body[0].cells[0] != "campaign-00" {
		t.Errorf("rows not sorted by hidden column: %q first", tv.body[0].cells[0])
	}
}

func TestRenderRowsSelectionPredicate(t *testing.T) {
	tv := New(Config{Columns: []string{"campaign", "spend"}})
	tv.RenderRows(metricRows(4), func(row Row) bool {
		return row["spend"].(float64) >= 20
	})

	for _, rr := range tv.body {
		if !rr.hasSelection {
			t.Fatal("selection state missing despite predicate")
		}
	}
	selected := 0
	for _, rr := range tv.body {
		if rr.selected {
			selected++
		}
	}
	if selected != 2 {
		t.Errorf("%d rows selected, want 2", selected)
	}
}

func TestHeaderClickedEmitsEventAndMovesIndicator(t *testing.T) {
	tv := New(Config{Columns: []string{"campaign", "spend"}})
	var events []SortChangeEvent
	tv.SetSortChangeFunc(func(ev SortChangeEvent) {
		events = append(events, ev)
	})
	tv.RenderRows(metricRows(5), nil)

	spendCol := tv.columnIndex("spend")
	tv.headerClicked(spendCol)
	tv.headerClicked(spendCol)
	tv.headerClicked(tv.columnIndex("campaign"))

	if len(events) != 3 {
		t.Fatalf("%d events raised, want 3", len(events))
	}
	if events[0].Sort != (SortState{Column: "spend", Order: SortDesc}) {
		t.Errorf("first click = %+v, want spend desc", events[0].Sort)
	}
	if events[1].Sort != (SortState{Column: "spend", Order: SortAsc}) {
		t.Errorf("second click = %+v, want spend asc", events[1].Sort)
	}
	if events[2].Sort != (SortState{Column: "campaign", Order: SortDesc}) {
		t.Errorf("third click = %+v, want campaign desc", events[2].Sort)
	}

	marked := 0
	for _, col := range tv.columns {
		if col.SortOrder != "" {
			marked++
		}
	}
	if marked != 1 {
		t.Errorf("%d indicators after clicks, want 1", marked)
	}
}

func TestCellClickedReturnsRawValueAfterSort(t *testing.T) {
	tv := New(Config{
		Columns:    []string{"campaign", "spend"},
		Formatters: map[string]Formatter{"spend": Currency},
		Sort:       &SortState{Column: "spend", Order: SortDesc},
	})
	var got *CellClickEvent
	tv.SetCellClickFunc(func(ev CellClickEvent) {
		got = &ev
	})
	tv.RenderRows(metricRows(5), nil)

	// The visually first row is the one with the highest spend after the
	// descending sort; the click must surface its raw value.
	tv.cellClicked(0, tv.columnIndex("spend"), false)
	if got == nil {
		t.Fatal("no cell click event raised")
	}
	if got.Column != "spend" {
		t.Errorf("column = %q, want spend", got.Column)
	}
	if got.Action != ActionSelect {
		t.Errorf("action = %q, want select", got.Action)
	}
	if v, ok := got.Value.(float64); !ok || v != 40.0 {
		t.Errorf("value = %v, want raw 40.0", got.Value)
	}

	tv.cellClicked(1, tv.columnIndex("campaign"), true)
	if got.Action != ActionToggle {
		t.Errorf("modifier click action = %q, want toggle", got.Action)
	}
	if got.Value != "campaign-03" {
		t.Errorf("value = %v, want campaign-03", got.Value)
	}
}

func TestCellClickedNoObserverNoPanic(t *testing.T) {
	tv := New(Config{Columns: []string{"campaign"}})
	tv.RenderRows(metricRows(2), nil)
	tv.cellClicked(0, 0, false)
	tv.headerClicked(0)
}

func TestColumnAt(t *testing.T) {
	tv := New(Config{Columns: []string{"a", "b"}})
	tv.RenderRows([]Row{{"a": "x", "b": "y"}}, nil)

	// Layout: border(1) pad(1) cell(width) pad(1) sep(1) pad(1) cell ...
	firstWidth := tv.columns[0].Width
	if got := tv.columnAt(0); got != -1 {
		t.Errorf("columnAt(0) = %d, want -1 for border", got)
	}
	if got := tv.columnAt(1); got != 0 {
		t.Errorf("columnAt(1) = %d, want 0", got)
	}
	sepX := 1 + firstWidth + 2
	if got := tv.columnAt(sepX); got != -1 {
		t.Errorf("columnAt(%d) = %d, want -1 for separator", sepX, got)
	}
	if got := tv.columnAt(sepX + 1); got != 1 {
		t.Errorf("columnAt(%d) = %d, want 1", sepX+1, got)
	}
}

func TestAddMetricsAndRemoveColumns(t *testing.T) {
	rows := []Row{
		{"clicks": 10.0, "impressions": 100.0},
		{"clicks": 3.0, "impressions": 50.0},
	}
	original := rows[0]

	AddMetrics(rows, map[string]MetricFunc{
		"ctr": func(row Row) any {
			return row["clicks"].(float64) / row["impressions"].(float64)
		},
	})
	if rows[0]["ctr"].(float64) != 0.1 {
		t.Errorf("ctr = %v, want 0.1", rows[0]["ctr"])
	}
	// Row identity is preserved: the original reference sees the new field.
	if original["ctr"].(float64) != 0.1 {
		t.Error("AddMetrics copied rows instead of mutating in place")
	}

	RemoveColumns(rows, []string{"impressions"})
	for i, row := range rows {
		if _, ok := row["impressions"]; ok {
			t.Errorf("rows[%d] still has impressions", i)
		}
	}
}
