// Package render turns ranked catalog items into card markup.
//
// Results are laid out round-robin over a fixed set of columns: the result
// at position i goes to column i mod n. The site uses three columns whose
// containers carry the ids col-0, col-1 and col-2.
//
//	r, _ := render.New(render.Options{})
//	err := r.Columns(w, items)
package render
