package tableview

import (
	"sort"
	"strings"
)

// SortOrder is the direction of a column sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortState is the active sort column and direction. A nil *SortState means
// no imposed order: rows keep the order the caller supplied them in.
type SortState struct {
	Column string
	Order  SortOrder
}

// Equal reports whether two sort states are deep-equal. Two nil states are
// equal.
func (s *SortState) Equal(other *SortState) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Column == other.Column && s.Order == other.Order
}

// clicked returns the sort state after a click on the given column's header:
// clicking the sorted column flips its direction, clicking any other column
// sorts it descending (the top of a distribution is usually the interesting
// end).
func (s *SortState) clicked(column string) *SortState {
	if s != nil && s.Column == column {
		order := SortDesc
		if s.Order == SortDesc {
			order = SortAsc
		}
		return &SortState{Column: column, Order: order}
	}
	return &SortState{Column: column, Order: SortDesc}
}

// compareValues is a three-way comparison on raw cell values. Values that
// both convert to numbers compare numerically; everything else compares as
// strings. Nil sorts before any non-nil value.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(coerceString(a), coerceString(b))
}

// SortRows reorders rows in place according to state. A nil state leaves the
// slice untouched. The sort is stable, so equal values keep their relative
// order, though callers should not build on tie ordering.
func SortRows(rows []Row, state *SortState) {
	if state == nil {
		return
	}
	column := state.Column
	sort.SliceStable(rows, func(i, j int) bool {
		if state.Order == SortDesc {
			return compareValues(rows[j][column], rows[i][column]) < 0
		}
		return compareValues(rows[i][column], rows[j][column]) < 0
	})
}
