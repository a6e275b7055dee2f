package core

import "sort"

// Frame is one captured screen: rows of glyph ids, indexed [y][x].
type Frame [][]int

// Height returns the number of rows in the frame.
func (f Frame) Height() int {
	return len(f)
}

// Width returns the length of the widest row.
func (f Frame) Width() int {
	w := 0
	for _, row := range f {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Values holds the named debug variables recorded alongside a frame.
type Values map[string]any

// Keys returns the variable names in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
