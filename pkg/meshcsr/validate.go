package meshcsr

import "fmt"

// Problem describes a single invariant violation found by Validate.
type Problem struct {
	Row     int // row index the problem was found at, -1 if not row-specific
	Message string
}

func (p Problem) Error() string {
	if p.Row < 0 {
		return p.Message
	}
	return fmt.Sprintf("row %d: %s", p.Row, p.Message)
}

// Validate checks a mesh's structural invariants against m and returns
// every violation found; an empty slice means m is well-formed. This is
// a debug-time helper, not part of the engine's own hot path. The engine
// is allowed to trust its inputs and relies on internal/fail for the
// checks it does make inline.
func Validate(m *Mesh) []Problem {
	var problems []Problem

	if len(m.RowPtr) != m.NumRows()+1 {
		problems = append(problems, Problem{Row: -1, Message: fmt.Sprintf(
			"row_ptr has length %d, want num_rows+1 = %d", len(m.RowPtr), m.NumRows()+1)})
		return problems // further checks would index out of range
	}

	if m.RowPtr[0] != 0 {
		problems = append(problems, Problem{Row: -1, Message: fmt.Sprintf(
			"row_ptr[0] = %d, want 0", m.RowPtr[0])})
	}
	if last := m.RowPtr[m.NumRows()]; int(last) != m.NumIntervals() {
		problems = append(problems, Problem{Row: -1, Message: fmt.Sprintf(
			"row_ptr[num_rows] = %d, want num_intervals = %d", last, m.NumIntervals())})
	}

	// row_keys must be strictly increasing.
	for r := 1; r < m.NumRows(); r++ {
		if !m.RowKeys[r-1].Less(m.RowKeys[r]) {
			problems = append(problems, Problem{Row: r, Message: fmt.Sprintf(
				"row_keys not strictly increasing: %s then %s", m.RowKeys[r-1], m.RowKeys[r])})
		}
	}

	// row_ptr must be monotonically non-decreasing.
	for r := 1; r < len(m.RowPtr); r++ {
		if m.RowPtr[r] < m.RowPtr[r-1] {
			problems = append(problems, Problem{Row: r, Message: fmt.Sprintf(
				"row_ptr[%d] = %d < row_ptr[%d] = %d", r, m.RowPtr[r], r-1, m.RowPtr[r-1])})
		}
	}

	// No row may be empty.
	for r := 0; r < m.NumRows(); r++ {
		if r+1 < len(m.RowPtr) && m.RowPtr[r] == m.RowPtr[r+1] {
			problems = append(problems, Problem{Row: r, Message: "row has zero intervals"})
		}
	}

	// Per-row intervals must be sorted, non-overlapping, and non-empty.
	for r := 0; r < m.NumRows(); r++ {
		if r+1 >= len(m.RowPtr) {
			break
		}
		lo, hi := m.RowPtr[r], m.RowPtr[r+1]
		if int(hi) > m.NumIntervals() || int(lo) > m.NumIntervals() {
			problems = append(problems, Problem{Row: r, Message: fmt.Sprintf(
				"row_ptr range [%d,%d) exceeds intervals length %d", lo, hi, m.NumIntervals())})
			continue
		}
		row := m.Intervals[lo:hi]
		for i, iv := range row {
			if iv.Empty() {
				problems = append(problems, Problem{Row: r, Message: fmt.Sprintf(
					"interval %d is empty or inverted: %s", i, iv)})
			}
			if i > 0 && row[i-1].End > iv.Begin {
				problems = append(problems, Problem{Row: r, Message: fmt.Sprintf(
					"interval %d overlaps or is out of order with previous interval: %s then %s",
					i, row[i-1], iv)})
			}
		}
	}

	return problems
}
