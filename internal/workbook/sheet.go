package workbook

// Row is a populated worksheet row. Cells are positional by column, so
// Cells[1] is column B.
type Row struct {
	Index int
	Cells []Cell
}

// Cell returns the cell at the 0-based column, or an empty cell when the row
// is shorter.
func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[col]
}

// Sheet is the first worksheet of an uploaded file. Rows[0] is the header.
type Sheet struct {
	Name    string
	Rows    []Row
	Strings StringTable
}

// Text resolves the cell at col in row through the sheet's string table.
func (s *Sheet) Text(row Row, col int) string {
	return row.Cell(col).Text(s.Strings)
}

// DataRows returns every row after the header.
func (s *Sheet) DataRows() []Row {
	if s == nil || len(s.Rows) <= 1 {
		return nil
	}
	return s.Rows[1:]
}
