package render

import "fmt"

// DefaultColumns is the number of result columns on the catalog page.
const DefaultColumns = 3

// ColumnID returns the element id of column i.
func ColumnID(i int) string {
	return fmt.Sprintf("col-%d", i)
}

// ColumnFor returns the column that the result at position i goes to.
func ColumnFor(i, columns int) int {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return i % columns
}

// Distribute splits items round-robin into columns, preserving rank order
// within each column. It always returns exactly columns slices.
func Distribute[T any](items []T, columns int) [][]T {
	if columns <= 0 {
		columns = DefaultColumns
	}
	out := make([][]T, columns)
	for i, it := range items {
		c := ColumnFor(i, columns)
		out[c] = append(out[c], it)
	}
	return out
}
