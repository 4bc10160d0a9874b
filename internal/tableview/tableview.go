package tableview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	// DefaultPageSize is the number of body rows rendered when the
	// configuration does not set one. Rows beyond the page size are dropped,
	// not paged through.
	DefaultPageSize = 30

	minColumnWidth = 4
	maxColumnWidth = 40
)

// Config is the construction-time configuration of a TableView. None of the
// fields are validated; misconfiguration surfaces as an empty or incorrect
// render.
type Config struct {
	// Sort is the initial sort state, or nil for natural order.
	Sort *SortState
	// Formatters maps column keys to display formatters. Columns without an
	// entry fall back to plain string coercion.
	Formatters map[string]Formatter
	// Columns fixes the rendered column set and order. When empty, columns
	// are derived from the first rendered row.
	Columns []string
	// ColumnNames overrides the humanized display name per column key.
	ColumnNames map[string]string
	// ClickableColumns lists columns whose cells are styled as interactive.
	ClickableColumns []string
	// PageSize caps the number of rendered body rows (DefaultPageSize when
	// zero or negative).
	PageSize int
}

// FormatValue formats one cell through the configured formatter for the
// column, or coerces the raw value to a string when none is configured. The
// full row is passed so formatters can reference sibling fields.
func (c *Config) FormatValue(column string, row Row) string {
	if fn, ok := c.Formatters[column]; ok && fn != nil {
		return fn(row[column], row)
	}
	return coerceString(row[column])
}

// CellAction distinguishes a plain cell selection from a modifier-held
// toggle.
type CellAction string

const (
	ActionSelect CellAction = "select"
	ActionToggle CellAction = "toggle"
)

// SortChangeEvent is raised whenever a header click changes the sort state.
type SortChangeEvent struct {
	Sort SortState
}

// CellClickEvent is raised when a data cell is clicked. Value is the raw
// stored value, not the formatted string.
type CellClickEvent struct {
	Column string
	Value  any
	Action CellAction
}

// GraphEvent is a reserved hook for an auxiliary graph affordance on the
// highlighted row.
type GraphEvent struct {
	Column string
	Row    Row
}

// renderColumn is one resolved column for the current render.
type renderColumn struct {
	Key       string
	Name      string
	Width     int
	Align     Alignment
	Clickable bool
	SortOrder SortOrder // "" unless this column carries the sort indicator
}

// renderRow is one body row: formatted cells plus the row's index within the
// sorted sequence, which is what cell clicks use to look raw values back up.
type renderRow struct {
	index        int
	cells        []string
	hasSelection bool
	selected     bool
}

// TableView renders uniformly-shaped records as an interactive, sortable
// table. It owns column resolution, per-column formatting, sort state and
// the click event contract; data fetching and error presentation belong to
// the embedding page.
type TableView struct {
	*tview.Box

	config    Config
	sort      *SortState
	clickable map[string]bool

	// Current render. rows is the authoritative source for raw value
	// lookups; columns survives empty renders so headers stay in place.
	rows    []Row
	columns []renderColumn
	body    []renderRow

	// Keyboard cursor over the visible body rows.
	cursorRow int

	// Display configuration
	cellPadding   int
	borderColor   tcell.Color
	headerColor   tcell.Color
	headerBgColor tcell.Color

	// Observers
	sortChangeFunc func(SortChangeEvent)
	cellClickFunc  func(CellClickEvent)
	graphFunc      func(GraphEvent)
}

// New creates a table view with the given configuration.
func New(config Config) *TableView {
	tv := &TableView{
		Box:           tview.NewBox(),
		config:        config,
		sort:          cloneSort(config.Sort),
		clickable:     make(map[string]bool, len(config.ClickableColumns)),
		cellPadding:   1,
		borderColor:   tcell.ColorWhite,
		headerColor:   tcell.ColorWhite,
		headerBgColor: tcell.ColorDarkSlateGray,
	}
	for _, key := range config.ClickableColumns {
		tv.clickable[key] = true
	}
	tv.SetBorder(false) // borders are drawn by the widget itself
	return tv
}

func cloneSort(s *SortState) *SortState {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// SetSortChangeFunc registers the observer for sort changes.
func (tv *TableView) SetSortChangeFunc(handler func(SortChangeEvent)) *TableView {
	tv.sortChangeFunc = handler
	return tv
}

// SetCellClickFunc registers the observer for data-cell clicks.
func (tv *TableView) SetCellClickFunc(handler func(CellClickEvent)) *TableView {
	tv.cellClickFunc = handler
	return tv
}

// SetGraphFunc registers the observer for the reserved graph affordance.
func (tv *TableView) SetGraphFunc(handler func(GraphEvent)) *TableView {
	tv.graphFunc = handler
	return tv
}

// SortOptions returns the current sort state, nil when no order is imposed.
func (tv *TableView) SortOptions() *SortState {
	return cloneSort(tv.sort)
}

// SetSortOptions replaces the sort state unless next is deep-equal to the
// current state, in which case nothing changes. No event is raised either
// way; only header clicks signal observers.
func (tv *TableView) SetSortOptions(next *SortState) {
	if tv.sort.Equal(next) {
		return
	}
	tv.sort = cloneSort(next)
}

// pageSize returns the configured page size or the default.
func (tv *TableView) pageSize() int {
	if tv.config.PageSize > 0 {
		return tv.config.PageSize
	}
	return DefaultPageSize
}

// RenderRows stores rows as the authoritative sequence, sorts it in place
// according to the current sort state, resolves columns from the first row
// and rebuilds the visible body. An empty sequence clears the body without
// touching the headers. isSelected may be nil; when set it receives each raw
// row and controls the selected-row styling.
func (tv *TableView) RenderRows(rows []Row, isSelected func(Row) bool) {
	tv.rows = rows
	if len(rows) == 0 {
		tv.body = nil
		tv.cursorRow = 0
		return
	}

	SortRows(rows, tv.sort)
	tv.columns = tv.resolveColumns(rows[0])

	limit := len(rows)
	if limit > tv.pageSize() {
		limit = tv.pageSize()
	}
	tv.body = make([]renderRow, 0, limit)
	for i := 0; i < limit; i++ {
		row := rows[i]
		cells := make([]string, len(tv.columns))
		for c, col := range tv.columns {
			cells[c] = tv.config.FormatValue(col.Key, row)
		}
		rr := renderRow{index: i, cells: cells}
		if isSelected != nil {
			rr.hasSelection = true
			rr.selected = isSelected(row)
		}
		tv.body = append(tv.body, rr)
	}
	if tv.cursorRow >= len(tv.body) {
		tv.cursorRow = len(tv.body) - 1
	}
	if tv.cursorRow < 0 {
		tv.cursorRow = 0
	}
	tv.sizeColumns()
}

// resolveColumns derives the ordered render columns for the first row:
// display names, alignment classified from the first row's formatted value,
// clickable styling and at most one sort indicator.
func (tv *TableView) resolveColumns(first Row) []renderColumn {
	keys := tv.resolveKeys(first)
	columns := make([]renderColumn, len(keys))
	for i, key := range keys {
		col := renderColumn{
			Key:       key,
			Name:      tv.displayName(key),
			Align:     AlignText,
			Clickable: tv.clickable[key],
		}
		if IsNumericString(tv.config.FormatValue(key, first)) {
			col.Align = AlignNumeric
		}
		if tv.sort != nil && tv.sort.Column == key {
			col.SortOrder = tv.sort.Order
		}
		columns[i] = col
	}
	return columns
}

// sizeColumns fits each column to the wider of its header and the formatted
// values on the visible page.
func (tv *TableView) sizeColumns() {
	for c := range tv.columns {
		width := displayWidth(tv.headerText(&tv.columns[c]))
		for _, row := range tv.body {
			if w := displayWidth(row.cells[c]); w > width {
				width = w
			}
		}
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		tv.columns[c].Width = width
	}
}

// headerText is the rendered header cell content including the sort
// direction indicator.
func (tv *TableView) headerText(col *renderColumn) string {
	switch col.SortOrder {
	case SortAsc:
		return col.Name + " ▴"
	case SortDesc:
		return col.Name + " ▾"
	default:
		return col.Name
	}
}

// headerClicked flips or replaces the sort state and signals observers. The
// body keeps its current order until the embedding page renders again; only
// the indicator moves immediately.
func (tv *TableView) headerClicked(col int) {
	if col < 0 || col >= len(tv.columns) {
		return
	}
	tv.sort = tv.sort.clicked(tv.columns[col].Key)
	for i := range tv.columns {
		tv.columns[i].SortOrder = ""
		if tv.columns[i].Key == tv.sort.Column {
			tv.columns[i].SortOrder = tv.sort.Order
		}
	}
	tv.sizeColumns()
	if tv.sortChangeFunc != nil {
		tv.sortChangeFunc(SortChangeEvent{Sort: *tv.sort})
	}
}

// cellClicked reports the raw stored value for the clicked cell. Internal
// state is not mutated; selection is owned by the embedding page.
func (tv *TableView) cellClicked(bodyRow, col int, toggle bool) {
	if bodyRow < 0 || bodyRow >= len(tv.body) || col < 0 || col >= len(tv.columns) {
		return
	}
	if tv.cellClickFunc == nil {
		return
	}
	action := ActionSelect
	if toggle {
		action = ActionToggle
	}
	key := tv.columns[col].Key
	row := tv.rows[tv.body[bodyRow].index]
	tv.cellClickFunc(CellClickEvent{Column: key, Value: row[key], Action: action})
}

// Draw renders the table: top border, header, separator, body rows in sorted
// order, bottom border. The draw order is deterministic given identical
// inputs.
func (tv *TableView) Draw(screen tcell.Screen) {
	tv.Box.DrawForSubclass(screen, tv)
	x, y, width, height := tv.GetInnerRect()

	if len(tv.columns) == 0 || width <= 0 || height <= 0 {
		return
	}

	currentY := y
	tv.drawBorder(screen, x, currentY, '┌', '┬', '┐')
	currentY++

	if currentY < y+height {
		tv.drawHeaderRow(screen, x, currentY)
		currentY++
	}
	if currentY < y+height {
		tv.drawBorder(screen, x, currentY, '├', '┼', '┤')
		currentY++
	}

	for i := range tv.body {
		if currentY >= y+height-1 {
			break
		}
		tv.drawBodyRow(screen, x, currentY, i)
		currentY++
	}

	if currentY < y+height {
		tv.drawBorder(screen, x, currentY, '└', '┴', '┘')
	}
}

// drawBorder draws a horizontal border line with the given corner and
// junction runes.
func (tv *TableView) drawBorder(screen tcell.Screen, x, y int, left, junction, right rune) {
	style := tcell.StyleDefault.Foreground(tv.borderColor)
	screen.SetContent(x, y, left, nil, style)
	pos := x + 1
	for i, col := range tv.columns {
		cellWidth := col.Width + 2*tv.cellPadding
		for j := 0; j < cellWidth; j++ {
			screen.SetContent(pos+j, y, '─', nil, style)
		}
		pos += cellWidth
		if i < len(tv.columns)-1 {
			screen.SetContent(pos, y, junction, nil, style)
			pos++
		}
	}
	screen.SetContent(pos, y, right, nil, style)
}

// drawHeaderRow draws the header cells with alignment, clickable styling and
// the sort indicator.
func (tv *TableView) drawHeaderRow(screen tcell.Screen, x, y int) {
	borderStyle := tcell.StyleDefault.Foreground(tv.borderColor)
	screen.SetContent(x, y, '│', nil, borderStyle)
	pos := x + 1

	for i, col := range tv.columns {
		style := tcell.StyleDefault.Bold(true).
			Foreground(tv.headerColor).
			Background(tv.headerBgColor)
		if col.Clickable {
			style = style.Underline(true)
		}

		for j := 0; j < tv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, style)
		}
		pos += tv.cellPadding

		text := padCell(tv.headerText(&tv.columns[i]), col.Width, col.Align)
		for j, ch := range []rune(text) {
			screen.SetContent(pos+j, y, ch, nil, style)
		}
		pos += col.Width

		for j := 0; j < tv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, style)
		}
		pos += tv.cellPadding

		if i < len(tv.columns)-1 {
			screen.SetContent(pos, y, '│', nil, borderStyle)
			pos++
		}
	}
	screen.SetContent(pos, y, '│', nil, borderStyle)
}

// drawBodyRow draws one visible data row with selection and cursor styling.
func (tv *TableView) drawBodyRow(screen tcell.Screen, x, y, bodyRow int) {
	row := tv.body[bodyRow]

	baseStyle := tcell.StyleDefault
	if row.hasSelection && row.selected {
		baseStyle = baseStyle.Background(tcell.ColorDarkGreen)
	}
	if tv.HasFocus() && bodyRow == tv.cursorRow {
		baseStyle = baseStyle.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	}

	borderStyle := tcell.StyleDefault.Foreground(tv.borderColor)
	screen.SetContent(x, y, '│', nil, borderStyle)
	pos := x + 1

	for i, col := range tv.columns {
		style := baseStyle
		if col.Clickable {
			style = style.Underline(true)
		}

		for j := 0; j < tv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, baseStyle)
		}
		pos += tv.cellPadding

		text := padCell(row.cells[i], col.Width, col.Align)
		for j, ch := range []rune(text) {
			screen.SetContent(pos+j, y, ch, nil, style)
		}
		pos += col.Width

		for j := 0; j < tv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, baseStyle)
		}
		pos += tv.cellPadding

		if i < len(tv.columns)-1 {
			screen.SetContent(pos, y, '│', nil, borderStyle)
			pos++
		}
	}
	screen.SetContent(pos, y, '│', nil, borderStyle)
}

// InputHandler moves the keyboard cursor and triggers the graph hook.
func (tv *TableView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return tv.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			if tv.cursorRow > 0 {
				tv.cursorRow--
			}
		case tcell.KeyDown:
			if tv.cursorRow < len(tv.body)-1 {
				tv.cursorRow++
			}
		case tcell.KeyHome:
			tv.cursorRow = 0
		case tcell.KeyEnd:
			if len(tv.body) > 0 {
				tv.cursorRow = len(tv.body) - 1
			}
		case tcell.KeyRune:
			if event.Rune() == 'g' && tv.graphFunc != nil &&
				tv.cursorRow >= 0 && tv.cursorRow < len(tv.body) {
				tv.graphFunc(GraphEvent{Row: tv.rows[tv.body[tv.cursorRow].index]})
			}
		}
	})
}

// MouseHandler maps clicks to the header (sort) or a data cell (cell click).
// Holding Ctrl while clicking a cell reports a toggle instead of a select.
func (tv *TableView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return tv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mouseX, mouseY := event.Position()
		if !tv.InRect(mouseX, mouseY) {
			return false, nil
		}

		switch action {
		case tview.MouseLeftDown:
			setFocus(tv)
			consumed = true
		case tview.MouseLeftClick:
			x, y, _, _ := tv.GetInnerRect()
			relativeY := mouseY - y
			col := tv.columnAt(mouseX - x)

			// Row 0 is the top border, row 1 the header, row 2 the
			// separator, rows 3+ the body.
			switch {
			case relativeY == 1:
				if col >= 0 {
					tv.headerClicked(col)
				}
			case relativeY >= 3:
				bodyRow := relativeY - 3
				if col >= 0 && bodyRow < len(tv.body) {
					tv.cursorRow = bodyRow
					toggle := event.Modifiers()&tcell.ModCtrl != 0
					tv.cellClicked(bodyRow, col, toggle)
				}
			}
			consumed = true
		}
		return consumed, nil
	})
}

// columnAt returns the column index at a table-relative x position, or -1
// for borders and separators.
func (tv *TableView) columnAt(relativeX int) int {
	if relativeX < 1 {
		return -1
	}
	currentX := 1
	for i, col := range tv.columns {
		cellWidth := col.Width + 2*tv.cellPadding
		if relativeX >= currentX && relativeX < currentX+cellWidth {
			return i
		}
		currentX += cellWidth
		if i < len(tv.columns)-1 {
			if relativeX == currentX {
				return -1
			}
			currentX++
		}
	}
	return -1
}

// padCell pads text to width, right-aligning numeric columns and truncating
// overlong values with an ellipsis.
func padCell(text string, width int, align Alignment) string {
	text = Truncate(text, width)
	pad := width - displayWidth(text)
	if pad <= 0 {
		return text
	}
	spaces := make([]byte, pad)
	for i := range spaces {
		spaces[i] = ' '
	}
	if align == AlignNumeric {
		return string(spaces) + text
	}
	return text + string(spaces)
}

func displayWidth(s string) int {
	return len([]rune(s))
}
