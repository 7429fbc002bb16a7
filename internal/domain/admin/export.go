// Package admin holds the staff-facing review and export surface.
package admin

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/carelink/carelink/internal/domain/referral"
	"github.com/carelink/carelink/internal/domain/screening"
)

// ScreeningLister pages through stored screenings. Satisfied by
// screening.Service.
type ScreeningLister interface {
	List(ctx context.Context, kind string, limit, offset int) ([]*screening.Screening, int, error)
}

// ReferralLister pages through consented referrals. Satisfied by
// referral.Service.
type ReferralLister interface {
	ListConsented(ctx context.Context, limit, offset int) ([]*referral.Referral, int, error)
}

// Exporter renders screenings and referrals as XLSX workbooks for offline
// review and reporting.
type Exporter struct {
	screenings ScreeningLister
	referrals  ReferralLister
}

func NewExporter(screenings ScreeningLister, referrals ReferralLister) *Exporter {
	return &Exporter{screenings: screenings, referrals: referrals}
}

const exportPageSize = 500

var screeningHeaders = []string{"ID", "Name", "Age", "Phone Number", "Email", "User ID", "Answers", "Created At"}

var referralHeaders = []string{
	"ID", "Patient Name", "Type", "Status", "Consent", "Region", "Constituency",
	"Facility", "Contact Method", "Appointment", "Referral Date",
}

// ExportScreenings writes every stored screening of one kind into a workbook.
func (e *Exporter) ExportScreenings(ctx context.Context, kind string) ([]byte, error) {
	var rows [][]interface{}
	for offset := 0; ; offset += exportPageSize {
		items, total, err := e.screenings.List(ctx, kind, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, s := range items {
			rows = append(rows, []interface{}{
				s.ID.String(), s.Name, intVal(s.Age), strVal(s.PhoneNumber), strVal(s.Email),
				s.UserID, string(s.Answers), s.CreatedAt.Format(time.RFC3339),
			})
		}
		if offset+exportPageSize >= total {
			break
		}
	}
	return buildWorkbook("Screenings", screeningHeaders, rows)
}

// ExportReferrals writes every consented referral into a workbook. Pending
// referrals stay out of exports the same way they stay out of staff lists.
func (e *Exporter) ExportReferrals(ctx context.Context) ([]byte, error) {
	var rows [][]interface{}
	for offset := 0; ; offset += exportPageSize {
		items, total, err := e.referrals.ListConsented(ctx, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, r := range items {
			appointment := ""
			if r.AppointmentAt != nil {
				appointment = r.AppointmentAt.Format(time.RFC3339)
			}
			rows = append(rows, []interface{}{
				r.ID.String(), r.PatientName, r.Type, r.Status, r.ConsentStatus,
				strVal(r.Region), strVal(r.Constituency), strVal(r.Facility),
				strVal(r.ContactMethod), appointment, r.ReferralDate.Format(time.RFC3339),
			})
		}
		if offset+exportPageSize >= total {
			break
		}
	}
	return buildWorkbook("Referrals", referralHeaders, rows)
}

func buildWorkbook(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, 22); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
