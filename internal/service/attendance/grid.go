package attendance

import (
	"time"
)

// Cell addresses one (employee row, date column) position in the
// attendance grid.
type Cell struct {
	EmployeeID string
	Date       time.Time
}

// Grid is the month view the editor operates on: office roster rows in
// stable table order, one column per calendar day.
type Grid struct {
	OfficeID string
	Year     int
	Month    time.Month

	EmployeeIDs []string
	Dates       []time.Time

	rowIndex map[string]int
}

func NewGrid(officeID string, year int, month time.Month, employeeIDs []string) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	dates := make([]time.Time, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		dates = append(dates, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}

	rowIndex := make(map[string]int, len(employeeIDs))
	for i, id := range employeeIDs {
		rowIndex[id] = i
	}

	return Grid{
		OfficeID:    officeID,
		Year:        year,
		Month:       month,
		EmployeeIDs: employeeIDs,
		Dates:       dates,
		rowIndex:    rowIndex,
	}
}

// RowOf returns the row index of an employee in the grid.
func (g Grid) RowOf(employeeID string) (int, bool) {
	i, ok := g.rowIndex[employeeID]
	return i, ok
}

// Contains reports whether the cell addresses a valid grid position.
func (g Grid) Contains(c Cell) bool {
	if _, ok := g.rowIndex[c.EmployeeID]; !ok {
		return false
	}
	return c.Date.Year() == g.Year && c.Date.Month() == g.Month
}

// Rectangle returns every cell spanned by the anchor and current
// corners: employee rows within [min,max] of the two row indices and
// dates within [min,max] of the two column dates, irrespective of drag
// direction. Rows are contiguous in table order, days contiguous in
// calendar order.
func (g Grid) Rectangle(anchor, current Cell) []Cell {
	rowA, okA := g.RowOf(anchor.EmployeeID)
	rowB, okB := g.RowOf(current.EmployeeID)
	if !okA || !okB {
		return nil
	}

	rowLo, rowHi := rowA, rowB
	if rowLo > rowHi {
		rowLo, rowHi = rowHi, rowLo
	}

	dateLo, dateHi := anchor.Date, current.Date
	if dateHi.Before(dateLo) {
		dateLo, dateHi = dateHi, dateLo
	}

	var cells []Cell
	for row := rowLo; row <= rowHi; row++ {
		for _, d := range g.Dates {
			if d.Before(dateLo) || d.After(dateHi) {
				continue
			}
			cells = append(cells, Cell{EmployeeID: g.EmployeeIDs[row], Date: d})
		}
	}
	return cells
}
