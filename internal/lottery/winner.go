// Package lottery picks a random participant from an uploaded sheet and
// totals the amount column.
package lottery

// NoParticipants is the name reported when a sheet has no data rows.
const NoParticipants = "No participants found in the Excel file."

// Winner is the result of one draw. All fields are display strings.
type Winner struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Amount      string `json:"amount"`
	TotalAmount string `json:"totalAmount"`
}

// Columns holds the 0-based column positions read from each row.
type Columns struct {
	Name   int
	Number int
	Amount int
}

// DefaultColumns reads name, number and amount from columns B, C and D.
var DefaultColumns = Columns{Name: 1, Number: 2, Amount: 3}
