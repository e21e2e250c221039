package growth

// Mask records which grid cells have already been handed to the queue.
// Cells are stored row-major, index y*width + x.
type Mask struct {
	width  int
	height int
	cells  []bool
}

// NewMask allocates an all-false mask for a width x height grid.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, cells: make([]bool, width*height)}
}

// Visited reports whether (x, y) has been marked.
func (m *Mask) Visited(x, y int) bool {
	return m.cells[y*m.width+x]
}

// Mark flags (x, y) as visited. It returns false if the cell was already
// marked, in which case nothing changes.
func (m *Mask) Mark(x, y int) bool {
	i := y*m.width + x
	if m.cells[i] {
		return false
	}
	m.cells[i] = true
	return true
}

// Count returns the number of marked cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}
	return n
}
