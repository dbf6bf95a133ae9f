package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedStringsIntern(t *testing.T) {
	table := NewSharedStrings("Alice", "Bob")

	assert.Equal(t, 0, table.Intern("Alice"))
	assert.Equal(t, 2, table.Intern("Carol"))
	assert.Equal(t, 3, table.Len())

	s, ok := table.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "Bob", s)

	_, ok = table.Lookup(3)
	assert.False(t, ok)
	_, ok = table.Lookup(-1)
	assert.False(t, ok)
}

func TestCellText(t *testing.T) {
	table := NewSharedStrings("Alice")

	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"inline", Inline("Alice"), "Alice"},
		{"shared", Shared(0), "Alice"},
		{"shared out of range", Shared(7), ""},
		{"number", Number("10.5"), "10.5"},
		{"empty", Cell{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Text(table))
		})
	}
}

func TestCellTextWithoutTable(t *testing.T) {
	assert.Equal(t, "", Shared(0).Text(nil))
	assert.Equal(t, "x", Inline("x").Text(nil))
}

func TestSharedAndInlineResolveIdentically(t *testing.T) {
	table := NewSharedStrings()
	shared := Shared(table.Intern("Thandi Nkosi"))
	inline := Inline("Thandi Nkosi")

	assert.Equal(t, inline.Text(table), shared.Text(table))
}

func TestRowCellOutOfRange(t *testing.T) {
	row := Row{Index: 2, Cells: []Cell{Inline("1"), Inline("Alice")}}

	assert.Equal(t, KindInline, row.Cell(1).Kind)
	assert.Equal(t, KindEmpty, row.Cell(3).Kind)
	assert.Equal(t, KindEmpty, row.Cell(-1).Kind)
}

func TestSheetDataRows(t *testing.T) {
	var nilSheet *Sheet
	assert.Nil(t, nilSheet.DataRows())

	header := &Sheet{Rows: []Row{{Index: 1}}}
	assert.Empty(t, header.DataRows())

	s := &Sheet{Rows: []Row{{Index: 1}, {Index: 2}, {Index: 4}}}
	rows := s.DataRows()
	if assert.Len(t, rows, 2) {
		assert.Equal(t, 2, rows[0].Index)
		assert.Equal(t, 4, rows[1].Index)
	}
}
