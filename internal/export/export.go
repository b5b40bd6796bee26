package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the Excel OOXML MIME type used for downloads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sortedForExport(shifts []domain.Shift) []domain.Shift {
	out := make([]domain.Shift, len(shifts))
	copy(out, shifts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShiftDate != out[j].ShiftDate {
			return out[i].ShiftDate < out[j].ShiftDate
		}
		if out[i].StaffID != out[j].StaffID {
			return out[i].StaffID < out[j].StaffID
		}
		return out[i].ShiftStart < out[j].ShiftStart
	})
	return out
}

func draftLabel(s *domain.Shift) string {
	switch {
	case s.IsCopiedDraft:
		return "copied draft"
	case s.IsDraft:
		return "draft"
	default:
		return "published"
	}
}

// RosterCSV renders the merged roster of a period as CSV.
func RosterCSV(period *domain.RosterPeriod, shifts []domain.Shift) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Date", "Staff ID", "Department", "Start", "End", "Location", "State", "Notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, s := range sortedForExport(shifts) {
		location := ""
		if s.LocationID != nil {
			location = strconv.FormatInt(*s.LocationID, 10)
		}
		record := []string{
			s.ShiftDate,
			strconv.FormatInt(s.StaffID, 10),
			s.Department,
			s.ShiftStart,
			s.ShiftEnd,
			location,
			draftLabel(&s),
			s.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RosterXLSX renders the merged roster of a period as a styled worksheet.
func RosterXLSX(hotel string, period *domain.RosterPeriod, shifts []domain.Shift) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - %s (%s to %s)", hotel, period.Title, period.StartDate, period.EndDate))
	if err := f.MergeCell(sheet, "A1", "H1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Date", "Staff ID", "Department", "Start", "End", "Location", "State", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
	}
	if err := f.SetCellStyle(sheet, "A2", "H2", headerStyle); err != nil {
		return nil, err
	}

	row := 3
	for _, s := range sortedForExport(shifts) {
		location := ""
		if s.LocationID != nil {
			location = strconv.FormatInt(*s.LocationID, 10)
		}
		values := []any{s.ShiftDate, s.StaffID, s.Department, s.ShiftStart, s.ShiftEnd, location, draftLabel(&s), s.Notes}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
