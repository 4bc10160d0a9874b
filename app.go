package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dashtab/internal/tableview"
)

// App is the page embedding the table: it owns the data, reacts to table
// events and renders selection feedback back into it.
type App struct {
	app       *tview.Application
	table     *tableview.TableView
	statusBar *tview.TextView
	layout    *tview.Flex

	dataset *Dataset

	// Selection is keyed by the value of the last-clicked column, so
	// clicking an advertiser cell highlights every row of that advertiser.
	selectColumn string
	selected     map[string]bool
}

func newApp(dataset *Dataset, config tableview.Config) *App {
	a := &App{
		app:      tview.NewApplication(),
		dataset:  dataset,
		selected: make(map[string]bool),
	}

	a.table = tableview.New(config)
	a.table.SetSortChangeFunc(a.onSortChange)
	a.table.SetCellClickFunc(a.onCellClick)
	a.table.SetGraphFunc(a.onGraph)

	a.statusBar = tview.NewTextView().SetDynamicColors(true)
	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			a.app.Stop()
			return nil
		}
		return event
	})

	a.render()
	a.setStatus(fmt.Sprintf("%s · %d rows · click a header to sort · q to quit",
		dataset.Title, len(dataset.Rows)))
	return a
}

func (a *App) run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(true).Run()
}

func (a *App) render() {
	a.table.RenderRows(a.dataset.Rows, a.isSelected)
}

func (a *App) isSelected(row tableview.Row) bool {
	if a.selectColumn == "" {
		return false
	}
	return a.selected[fmt.Sprint(row[a.selectColumn])]
}

func (a *App) setStatus(message string) {
	a.statusBar.SetText(" " + message)
}

func (a *App) onSortChange(ev tableview.SortChangeEvent) {
	// The table only moved its indicator; reordering happens here, on the
	// page's own render call.
	a.render()
	a.setStatus(fmt.Sprintf("sorted by %s (%s)",
		tableview.FormatColumnName(ev.Sort.Column), ev.Sort.Order))
	debugLog("sort change: %+v\n", ev.Sort)
}

func (a *App) onCellClick(ev tableview.CellClickEvent) {
	key := fmt.Sprint(ev.Value)
	if a.selectColumn != ev.Column {
		a.selectColumn = ev.Column
		a.selected = make(map[string]bool)
	}
	switch ev.Action {
	case tableview.ActionToggle:
		if a.selected[key] {
			delete(a.selected, key)
		} else {
			a.selected[key] = true
		}
	default:
		a.selected = map[string]bool{key: true}
	}

	a.render()
	a.setStatus(fmt.Sprintf("%s = %v (%s)", ev.Column, ev.Value, ev.Action))
	debugLog("cell click: %+v\n", ev)
}

func (a *App) onGraph(ev tableview.GraphEvent) {
	// Reserved affordance: no graph view is wired yet, surface the request.
	label := ""
	if len(a.dataset.Columns) > 0 {
		label = fmt.Sprint(ev.Row[a.dataset.Columns[0]])
	}
	a.setStatus(fmt.Sprintf("no graph configured for %s", label))
}
