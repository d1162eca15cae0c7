// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package diff

// Cell is one side of a projected row. Number is the 1-based line number in
// that side's document, or 0 for the empty padding cell opposite an added or
// removed line.
type Cell struct {
	Type   OpType `json:"type"`
	Text   string `json:"text"`
	Number int    `json:"number,omitempty"`
}

// Row pairs the left and right cells rendered on the same visual line.
type Row struct {
	Left  Cell `json:"left"`
	Right Cell `json:"right"`
}

// Project re-expresses a linear op sequence as two parallel columns with
// independent line numbering. Both columns always have the same length: an
// added line gets an empty left cell, a removed line an empty right cell.
func Project(ops []Op) []Row {
	rows := make([]Row, 0, len(ops))
	leftNo, rightNo := 0, 0

	for _, op := range ops {
		switch op.Type {
		case OpEqual:
			leftNo++
			rightNo++
			rows = append(rows, Row{
				Left:  Cell{Type: OpEqual, Text: op.Text, Number: leftNo},
				Right: Cell{Type: OpEqual, Text: op.Text, Number: rightNo},
			})
		case OpRemoved:
			leftNo++
			rows = append(rows, Row{
				Left:  Cell{Type: OpRemoved, Text: op.Text, Number: leftNo},
				Right: Cell{Type: OpNone},
			})
		case OpAdded:
			rightNo++
			rows = append(rows, Row{
				Left:  Cell{Type: OpNone},
				Right: Cell{Type: OpAdded, Text: op.Text, Number: rightNo},
			})
		}
	}
	return rows
}

// Changed reports whether either side of the row is something other than an
// unchanged line.
func (r Row) Changed() bool {
	return r.Left.Type != OpEqual || r.Right.Type != OpEqual
}
