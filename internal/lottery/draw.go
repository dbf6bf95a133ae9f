package lottery

import (
	"fmt"

	"lotteryweb/internal/workbook"
)

type Drawer struct {
	source  Source
	columns Columns
}

type Option func(*Drawer)

func WithSource(s Source) Option {
	return func(d *Drawer) { d.source = s }
}

func WithColumns(c Columns) Option {
	return func(d *Drawer) { d.columns = c }
}

func NewDrawer(opts ...Option) *Drawer {
	d := &Drawer{source: CryptoSource{}, columns: DefaultColumns}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Draw picks one data row uniformly at random. The offset is drawn from
// [0, rowCount) and indexes the data rows directly, so every row can win.
// The total is computed over all data rows regardless of the pick.
func (d *Drawer) Draw(sheet *workbook.Sheet) (Winner, error) {
	total := Total(sheet, d.columns)
	rows := sheet.DataRows()
	if len(rows) == 0 {
		return Winner{Name: NoParticipants, TotalAmount: FormatAmount(total)}, nil
	}

	offset, err := d.source.IntN(len(rows))
	if err != nil {
		return Winner{}, fmt.Errorf("random generation failed: %w", err)
	}
	if offset < 0 || offset >= len(rows) {
		return Winner{}, fmt.Errorf("random generation failed: offset %d out of range %d", offset, len(rows))
	}
	row := rows[offset]

	winner := Winner{
		Name:        sheet.Text(row, d.columns.Name),
		Number:      sheet.Text(row, d.columns.Number),
		TotalAmount: FormatAmount(total),
	}
	if amount, ok := ParseAmount(sheet.Text(row, d.columns.Amount)); ok {
		winner.Amount = FormatAmount(amount)
	}
	return winner, nil
}
