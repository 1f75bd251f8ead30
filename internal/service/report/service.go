package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
	"github.com/xuri/excelize/v2"
)

// ServiceImpl renders the monthly attendance grid to a spreadsheet:
// one row per employee, one column per day, cells carrying the
// attendance-type code. Vacation and holiday cells come from the
// calendar, not stored records.
type ServiceImpl struct {
	employee.EmployeeRepository
	attendance.RecordRepository
	attendance.TypeRepository
	resolver *calendar.Resolver
}

func NewService(employeeRepository employee.EmployeeRepository, recordRepository attendance.RecordRepository, typeRepository attendance.TypeRepository, resolver *calendar.Resolver) *ServiceImpl {
	return &ServiceImpl{
		EmployeeRepository: employeeRepository,
		RecordRepository:   recordRepository,
		TypeRepository:     typeRepository,
		resolver:           resolver,
	}
}

// ExportMonth builds the XLSX workbook for one office month and
// returns the encoded file bytes plus a suggested filename.
func (s *ServiceImpl) ExportMonth(ctx context.Context, officeID string, year int, month time.Month) ([]byte, string, error) {
	roster, err := s.EmployeeRepository.ListByOffice(ctx, officeID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load roster for office %s: %w", officeID, err)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	ids := make([]string, 0, len(roster))
	for _, emp := range roster {
		ids = append(ids, emp.ID)
	}
	records, err := s.RecordRepository.ListByEmployeesRange(ctx, ids, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load attendance records for office %s: %w", officeID, err)
	}
	snapshot := attendance.BuildSnapshot(records)

	view, err := s.resolver.View(ctx, officeID, from, to)
	if err != nil {
		return nil, "", err
	}

	types, err := s.TypeRepository.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list attendance types: %w", err)
	}
	codeByID := make(map[string]string, len(types))
	for _, t := range types {
		codeByID[t.ID] = t.Code
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", year, int(month))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", "Employee"); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}
	for day := 1; day <= to.Day(); day++ {
		cell, err := excelize.CoordinatesToCellName(day+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, strconv.Itoa(day)); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, emp := range roster {
		nameCell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, "", fmt.Errorf("failed to address name cell: %w", err)
		}
		if err := f.SetCellValue(sheet, nameCell, emp.FullName); err != nil {
			return nil, "", fmt.Errorf("failed to write employee name: %w", err)
		}

		for day := 1; day <= to.Day(); day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			code := s.cellCode(snapshot, view, codeByID, emp.ID, date)
			if code == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(day+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, code); err != nil {
				return nil, "", fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to encode workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", officeID, sheet)
	slog.Info("attendance report exported",
		"office_id", officeID,
		"year", year,
		"month", int(month),
		"employees", len(roster),
	)
	return buf.Bytes(), filename, nil
}

// cellCode resolves what one exported cell shows. Stored marks win;
// otherwise approved vacation and holidays are derived from the
// calendar so the sheet reads complete without synthetic records.
func (s *ServiceImpl) cellCode(snapshot attendance.Snapshot, view *calendar.View, codeByID map[string]string, employeeID string, date time.Time) string {
	if rec, ok := snapshot.Get(employeeID, date); ok {
		if code, ok := codeByID[rec.Mark.TypeID]; ok {
			return code
		}
		return rec.Mark.TypeID
	}

	switch view.Classify(employeeID, date) {
	case calendar.CategoryHoliday:
		return attendance.TypeCodeHoliday
	case calendar.CategoryOwnApproved:
		return attendance.TypeCodeVacation
	}
	return ""
}
