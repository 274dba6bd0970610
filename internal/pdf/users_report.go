// Package pdf renders the user directory report.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/user-service/internal/domain"
)

var reportColumns = []struct {
	title string
	width float64
}{
	{"ID", 52},
	{"Email", 48},
	{"Full name", 38},
	{"Username", 30},
	{"Registered", 24},
	{"Status", 20},
	{"Auth ID", 52},
}

// UsersReport renders a landscape table of every user account and returns
// the document bytes.
func UsersReport(users []domain.User) ([]byte, error) {
	total := len(users)
	inactive := 0
	for _, u := range users {
		if !u.IsActive {
			inactive++
		}
	}

	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 12)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Current Users Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, fmt.Sprintf("Total users: %d", total), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Suspended users: %d", inactive), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 9)
	for _, col := range reportColumns {
		doc.CellFormat(col.width, 7, col.title, "B", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	for _, u := range users {
		status := "Active"
		if !u.IsActive {
			status = "Suspended"
		}
		cells := []string{
			u.ID,
			u.Email,
			u.FullName,
			u.Username,
			u.CreatedAt.Format("2006-01-02"),
			status,
			u.AuthID,
		}
		for i, cell := range cells {
			doc.CellFormat(reportColumns[i].width, 6, cell, "B", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render users report: %w", err)
	}
	return buf.Bytes(), nil
}
