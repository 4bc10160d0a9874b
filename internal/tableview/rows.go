package tableview

// Row is one record of tabular data: a mapping from column key to raw value.
// Values are typically float64, string or nil. The table never copies rows;
// it keeps references to the caller's slice so that raw values can be looked
// up later by row index.
type Row map[string]any

// MetricFunc computes a derived field from an existing row.
type MetricFunc func(row Row) any

// AddMetrics adds computed fields to every row in place. Row identity is
// preserved: the table may already hold references to these rows.
func AddMetrics(rows []Row, metrics map[string]MetricFunc) {
	for _, row := range rows {
		for name, fn := range metrics {
			row[name] = fn(row)
		}
	}
}

// RemoveColumns deletes the given fields from every row in place.
func RemoveColumns(rows []Row, keys []string) {
	for _, row := range rows {
		for _, key := range keys {
			delete(row, key)
		}
	}
}
