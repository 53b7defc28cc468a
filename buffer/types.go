package buffer

// Pos points into the document by block index and grapheme offset.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open selection in document coordinates: [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampPos clamps p into document bounds described by rowCount and blockLen.
//
// The returned Pos always satisfies:
// - 0 <= Row < rowCount (with rowCount treated as at least 1)
// - 0 <= Col <= blockLen(Row)
func ClampPos(p Pos, rowCount int, blockLen func(row int) int) Pos {
	if rowCount <= 0 {
		rowCount = 1
	}

	row := clampInt(p.Row, 0, rowCount-1)

	maxCol := 0
	if blockLen != nil {
		maxCol = blockLen(row)
		if maxCol < 0 {
			maxCol = 0
		}
	}
	return Pos{Row: row, Col: clampInt(p.Col, 0, maxCol)}
}

func ClampRange(r Range, rowCount int, blockLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, blockLen),
		End:   ClampPos(r.End, rowCount, blockLen),
	}
}
